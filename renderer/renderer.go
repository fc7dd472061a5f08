package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templateFS embed.FS

// templates holds the markdown templates, rooted at the templates directory.
var templates = func() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}()

// BoardRenderOptions holds configuration for rendering the board.
type BoardRenderOptions struct {
	Details bool // Render both faces of every card after the summary table.
}

// RenderBoard renders the Board struct to a markdown string.
func RenderBoard(b *Board, opts BoardRenderOptions) string {
	partials := map[string]string{
		"board_title":  "board_title.md",
		"board_totals": "board_totals.md",
		"board_cards":  "board_cards.md",
		"card_summary": "card_summary.md",
		"card_ledger":  "card_ledger.md",
	}
	// An empty file name results in an empty template.
	if opts.Details {
		partials["board_details"] = "board_details.md"
	} else {
		partials["board_details"] = ""
	}
	return renderTemplate("board", "board.md", partials, b)
}

// RenderCard renders both faces of a card.
func RenderCard(c *Card) string {
	partials := map[string]string{
		"card_summary": "card_summary.md",
		"card_ledger":  "card_ledger.md",
	}
	return renderTemplate("card", "card.md", partials, c)
}

// RenderCatalog renders the list of trackable cases.
func RenderCatalog(c *Catalog) string {
	return renderTemplate("catalog", "catalog.md", nil, c)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
