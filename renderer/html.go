package renderer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/casefolio"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// BootScriptID is the id of the script element holding the boot payload.
const BootScriptID = "initial-data"

const pageHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Case Portfolio</title>
</head>
<body>
`

const pageFooter = `<script>
document.querySelectorAll("img").forEach(function (img) {
  img.onerror = function () { this.onerror = null; this.src = %q; };
});
</script>
</body>
</html>
`

// Markdown is the converter used for html exports: CommonMark plus tables.
var Markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// RenderHTML writes a standalone html page with both faces of every card.
// The state is embedded as the boot payload, the page is itself a valid boot
// source.
func RenderHTML(w io.Writer, s *casefolio.State, currency string) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("cannot encode boot payload: %w", err)
	}

	var body bytes.Buffer
	md := RenderBoard(NewBoard(s, currency), BoardRenderOptions{Details: true})
	if err := Markdown.Convert([]byte(md), &body); err != nil {
		return fmt.Errorf("cannot convert board to html: %w", err)
	}

	var page bytes.Buffer
	page.WriteString(pageHeader)
	page.Write(body.Bytes())
	// json.Marshal escapes <, > and &, the payload cannot close the script.
	fmt.Fprintf(&page, "<script id=%q type=\"application/json\">%s</script>\n", BootScriptID, payload)
	fmt.Fprintf(&page, pageFooter, casefolio.FallbackImage)
	_, err = w.Write(page.Bytes())
	return err
}
