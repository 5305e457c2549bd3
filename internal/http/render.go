package http

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin/render"

	"simrig-shop/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// page names accepted by c.HTML
const (
	pageIndex   = "index"
	pageReg     = "reg"
	pageLogin   = "login"
	pageCatalog = "catalog"
	pageStatic  = "page"
)

// pageData is the view model shared by every page.
type pageData struct {
	Msg      *Messages
	Username string
	Title    string
	Error    string
	Message  string
	Form     map[string]string

	Category string
	Products []domain.Product
	Body     string
}

// pageRenderer keeps one template set per page, each built from the shared
// layout and partials plus the page's own "content" block.
type pageRenderer struct {
	pages map[string]*template.Template
}

var _ render.HTMLRender = (*pageRenderer)(nil)

func newPageRenderer() (*pageRenderer, error) {
	r := &pageRenderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{pageIndex, pageReg, pageLogin, pageCatalog, pageStatic} {
		t, err := template.New(name).ParseFS(templateFS,
			"templates/layout.html",
			"templates/_*.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *pageRenderer) Instance(name string, data any) render.Render {
	return render.HTML{
		Template: r.pages[name],
		Name:     "layout",
		Data:     data,
	}
}
