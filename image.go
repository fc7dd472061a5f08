package casefolio

import "strings"

// FallbackImage is shown when a case image fails to load: a 1x1 transparent png.
const FallbackImage = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAACklEQVR4nGMAAQAABQABDQottAAAAABJRU5ErkJggg=="

// ImageDir is where the backend serves case images.
const ImageDir = "/static/images/"

// ImageFile returns the asset file name of a case image,
// "Dreams & Nightmares Case" gives "dreams_&_nightmares_case.webp".
func ImageFile(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_") + ".webp"
}

// ImagePath returns the served path of a case image.
func ImagePath(name string) string { return ImageDir + ImageFile(name) }
