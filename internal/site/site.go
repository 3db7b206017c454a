// Package site serves the map page and the markdown about page.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Options configures the pages.
type Options struct {
	Title     string
	Locale    string
	AboutFile string // markdown; the built-in text is used when empty
}

// Site renders the pages once at startup.
type Site struct {
	title string
	index []byte
	about []byte
}

type pageData struct {
	Title   string
	Locale  string
	Content template.HTML
}

// DefaultTitle names the site when no title is configured.
const DefaultTitle = "Mapa cmentarza"

const defaultAbout = `# O projekcie

Interaktywna mapa cmentarza pozwala odnaleźć miejsce pochówku po imieniu
i nazwisku, obejrzeć zdjęcia nagrobka oraz sprawdzić zbliżające się
rocznice śmierci.

Dane pochodzą z arkusza prowadzonego przez parafię. Jeśli zauważysz błąd,
skontaktuj się z administratorem.
`

// New renders the index and about pages.
func New(opts Options) (*Site, error) {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Locale == "" {
		opts.Locale = "pl"
	}

	source := []byte(defaultAbout)
	if opts.AboutFile != "" {
		data, err := os.ReadFile(opts.AboutFile)
		if err != nil {
			return nil, fmt.Errorf("reading about file: %w", err)
		}
		source = data
	}
	aboutHTML, err := RenderMarkdown(source)
	if err != nil {
		return nil, err
	}

	s := &Site{title: opts.Title}
	if s.index, err = render(indexTemplate, pageData{Title: opts.Title, Locale: opts.Locale}); err != nil {
		return nil, fmt.Errorf("rendering index page: %w", err)
	}
	if s.about, err = render(aboutTemplate, pageData{Title: opts.Title, Locale: opts.Locale, Content: aboutHTML}); err != nil {
		return nil, fmt.Errorf("rendering about page: %w", err)
	}
	return s, nil
}

// RenderMarkdown converts GitHub-flavoured markdown to HTML.
func RenderMarkdown(source []byte) (template.HTML, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func render(tmplText string, data pageData) ([]byte, error) {
	tmpl, err := template.New("page").Parse(tmplText)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RegisterRoutes mounts / and /about.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/", s.servePage(s.index))
	r.Get("/about", s.servePage(s.about))
}

func (s *Site) servePage(body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write(body); err != nil {
			log.Printf("site: writing page: %v", err)
		}
	}
}
