package document

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/Simplici0/vitrea/internal/quote"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("quote.html").Funcs(template.FuncMap{
	"money": money,
	"yesNo": yesNo,
	"mm":    func(v float64) string { return fmt.Sprintf("%.1f", v) },
}).ParseFS(templateFS, "templates/quote.html"))

type pageData struct {
	Meta    Meta
	Quote   quote.Quote
	Summary []summaryLine
}

// HTML writes q as a standalone page. The page embeds its styles so it can be
// printed without network access.
func HTML(w io.Writer, q quote.Quote, meta Meta) error {
	if err := pageTemplate.Execute(w, pageData{Meta: meta, Quote: q, Summary: summaryLines(q)}); err != nil {
		return fmt.Errorf("render quote page: %w", err)
	}
	return nil
}
