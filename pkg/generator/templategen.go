package generator

import (
	"fmt"

	"github.com/goliatone/go-fluidui/pkg/generator/template"
	"github.com/goliatone/go-fluidui/pkg/widget"
)

// TemplateName is the registry name of the template generator.
const TemplateName = "template"

// Template renders a page template with pongo2. The template receives title,
// body (the markup generator output for the graph), styles, scripts, widgets
// (the visible widgets in walk order), theme and theme_css.
type Template struct {
	settings settings
	engine   template.Renderer
	body     *Markup
}

var _ Generator = (*Template)(nil)

// NewTemplate builds a template generator. Without WithEngine a pongo2
// engine is created from the template dir, fs, extension, filters and
// globals options, falling back to the embedded page template.
func NewTemplate(options ...Option) (*Template, error) {
	s := newSettings(options)
	engine := s.engine
	if engine == nil {
		engineOptions := []template.Option{
			template.WithBaseDir(s.templateDir),
			template.WithExtension(s.templateExt),
			template.WithGlobals(s.globals),
		}
		if s.templateFS != nil {
			engineOptions = append(engineOptions, template.WithFS(s.templateFS))
		}
		for name, fn := range s.filters {
			engineOptions = append(engineOptions, template.WithFilter(name, fn))
		}
		e, err := template.New(engineOptions...)
		if err != nil {
			return nil, fmt.Errorf("generator: template engine: %w", err)
		}
		engine = e
	}
	return &Template{
		settings: s,
		engine:   engine,
		body:     NewMarkup(options...),
	}, nil
}

func (t *Template) Name() string { return TemplateName }

// GenerateHTML renders the configured page template. A nil graph renders the
// page with an empty body.
func (t *Template) GenerateHTML(g *widget.Graph) (string, error) {
	var body string
	if g != nil {
		rendered, err := t.body.RenderBody(g)
		if err != nil {
			t.settings.logger.Error("generator: template body", "error", err)
			return fail(t.settings.title, err)
		}
		body = rendered
	}

	page, err := t.engine.RenderTemplate(t.settings.templateName, map[string]any{
		"title":     t.settings.title,
		"body":      body,
		"styles":    append(append([]string(nil), t.settings.styles...), graphStyles(g)...),
		"scripts":   t.settings.scripts,
		"widgets":   widgetRows(g),
		"theme":     themeContext(t.settings.theme),
		"theme_css": themeCSS(t.settings.theme),
	})
	if err != nil {
		t.settings.logger.Error("generator: template render", "template", t.settings.templateName, "error", err)
		return fail(t.settings.title, err)
	}
	return page, nil
}

func widgetRows(g *widget.Graph) []map[string]any {
	if g == nil {
		return nil
	}
	var rows []map[string]any
	g.Walk(func(id, depth int, w widget.Widget) bool {
		rows = append(rows, map[string]any{
			"id":         w.ID,
			"node":       id,
			"type":       w.Type.String(),
			"text":       w.Text,
			"depth":      depth,
			"attributes": w.Attributes,
		})
		return true
	})
	return rows
}

func graphStyles(g *widget.Graph) []string {
	if g == nil {
		return nil
	}
	return g.Styles()
}
