package casefolio

// DropStatus is the availability tier of a case in the weekly drop pool.
type DropStatus string

const (
	ActiveDrop   DropStatus = "Active Drop"
	RareDrop     DropStatus = "Rare Drop"
	Armory       DropStatus = "Armory"
	Discontinued DropStatus = "Discontinued"
	Unknown      DropStatus = "Unknown"
)

// dropTiers is static configuration; the sets are disjoint.
var dropTiers = map[DropStatus][]string{
	ActiveDrop: {
		"Kilowatt Case", "Revolution Case", "Recoil Case", "Dreams & Nightmares Case", "Fracture Case",
	},
	RareDrop: {
		"Snakebite Case", "Prisma 2 Case", "CS20 Case", "Prisma Case", "Danger Zone Case",
		"Horizon Case", "Clutch Case", "Spectrum 2 Case", "Operation Hydra Case", "Spectrum Case",
		"Glove Case", "Gamma 2 Case", "Gamma Case", "Chroma 3 Case", "Operation Wildfire Case",
		"Revolver Case", "Shadow Case", "Falchion Case", "Chroma 2 Case", "Chroma Case",
		"Operation Vanguard Case", "Operation Breakout Case", "Huntsman Case", "Operation Phoenix Case",
		"CSGO Weapon Case 3", "Winter Offensive Case", "Operation Bravo Case", "CSGO Weapon Case 2", "CSGO Weapon Case",
	},
	Armory: {
		"Fever Case", "Gallery Case",
	},
	Discontinued: {
		"Operation Riptide Case", "Operation Broken Fang Case", "Shattered Web Case",
	},
}

var dropStatusByName = func() map[string]DropStatus {
	m := make(map[string]DropStatus)
	for status, names := range dropTiers {
		for _, n := range names {
			m[n] = status
		}
	}
	return m
}()

// DropStatusOf returns the tier of a case, Unknown when it is in none of them.
func DropStatusOf(name string) DropStatus {
	if s, ok := dropStatusByName[name]; ok {
		return s
	}
	return Unknown
}
