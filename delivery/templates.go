package delivery

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// pageTemplates holds one template set per page, each sharing the layout and
// partials.
var pageTemplates = parseAllTemplates()

// parseAllTemplates pre-parses all HTML templates at startup for efficiency.
func parseAllTemplates() map[string]*template.Template {
	funcs := template.FuncMap{"pageLink": newPageLink}
	base := template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/partials.html"))

	pages := map[string]*template.Template{}
	for _, name := range []string{"home", "login", "list", "detail", "error"} {
		t := template.Must(base.Clone())
		pages[name] = template.Must(t.ParseFS(templateFS, "templates/"+name+".html"))
	}
	return pages
}

func staticFiles() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("delivery: static assets missing: " + err.Error())
	}
	return sub
}

// pageLink is the data for one pagination control.
type pageLink struct {
	Page    int
	Label   string
	Current bool
}

func newPageLink(page int, label string, current bool) pageLink {
	return pageLink{Page: page, Label: label, Current: current}
}
