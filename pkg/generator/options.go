package generator

import (
	"io/fs"
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-fluidui/pkg/generator/template"
)

// DefaultTitle is used when no title option is given.
const DefaultTitle = "fluidui"

// Option configures a generator. Template-only options are ignored by the
// markup generator.
type Option func(*settings)

type settings struct {
	title   string
	styles  []string
	scripts []string
	theme   *theme.RendererConfig
	trusted bool
	logger  *slog.Logger

	engine       template.Renderer
	templateName string
	templateDir  string
	templateFS   fs.FS
	templateExt  string
	filters      map[string]template.FilterFunc
	globals      map[string]any
}

func newSettings(options []Option) settings {
	s := settings{
		title:        DefaultTitle,
		logger:       slog.Default(),
		templateName: template.DefaultPage,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(s *settings) {
		if title != "" {
			s.title = title
		}
	}
}

// WithStyles appends style sheets emitted inline in the head.
func WithStyles(styles ...string) Option {
	return func(s *settings) {
		for _, style := range styles {
			if style != "" {
				s.styles = append(s.styles, style)
			}
		}
	}
}

// WithScripts appends external script sources loaded at the end of body.
func WithScripts(srcs ...string) Option {
	return func(s *settings) {
		for _, src := range srcs {
			if src != "" {
				s.scripts = append(s.scripts, src)
			}
		}
	}
}

// WithTheme applies a go-theme renderer configuration. Its CSS variables
// become a :root rule and its name and variant data attributes on <html>.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *settings) {
		s.theme = cfg
	}
}

// WithTrustedHTML renders Html widgets without sanitizing them.
func WithTrustedHTML() Option {
	return func(s *settings) {
		s.trusted = true
	}
}

// WithLogger sets the logger used for skipped widgets and failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEngine supplies the template renderer used by the template generator.
func WithEngine(engine template.Renderer) Option {
	return func(s *settings) {
		s.engine = engine
	}
}

// WithTemplateName selects the page template. The default is the embedded
// page template.
func WithTemplateName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.templateName = name
		}
	}
}

// WithTemplateDir loads page templates from a directory.
func WithTemplateDir(dir string) Option {
	return func(s *settings) {
		s.templateDir = dir
	}
}

// WithTemplateFS loads page templates from an fs.FS.
func WithTemplateFS(files fs.FS) Option {
	return func(s *settings) {
		s.templateFS = files
	}
}

// WithTemplateExtension sets the extension added to template names that
// carry none. The default is ".html".
func WithTemplateExtension(ext string) Option {
	return func(s *settings) {
		s.templateExt = ext
	}
}

// WithTemplateFilter registers a filter for page templates.
func WithTemplateFilter(name string, fn template.FilterFunc) Option {
	return func(s *settings) {
		if s.filters == nil {
			s.filters = make(map[string]template.FilterFunc)
		}
		s.filters[name] = fn
	}
}

// WithTemplateGlobals adds values every page template sees.
func WithTemplateGlobals(globals map[string]any) Option {
	return func(s *settings) {
		if s.globals == nil {
			s.globals = make(map[string]any, len(globals))
		}
		for key, value := range globals {
			s.globals[key] = value
		}
	}
}
