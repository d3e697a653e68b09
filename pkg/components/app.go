package components

import (
	"fmt"

	"github.com/goliatone/go-fluidui/pkg/component"
	"github.com/goliatone/go-fluidui/pkg/dom"
)

// DefaultPreparedPath is where Prepare writes when no path is given.
const DefaultPreparedPath = "./index-tmp.html"

// App is the top-level component. It owns the host page: Prepare retitles
// the page, ensures the mount element and writes the result out.
type App struct {
	component.Base

	source   string
	fromFile bool
	title    string
}

// NewApp loads the app page from path. The descriptor fragments are
// extracted as for any component; the whole file is kept as the host page.
func NewApp(path string, options ...component.Option) (*App, error) {
	a := &App{source: path, fromFile: true}
	a.Init(options...)
	if err := a.LoadFile(path); err != nil {
		return nil, err
	}
	a.registerFunctions()
	return a, nil
}

// NewAppFromString builds the app from page text.
func NewAppFromString(content, name string, options ...component.Option) *App {
	a := &App{source: content}
	a.Init(options...)
	a.LoadString(content, name)
	a.registerFunctions()
	return a
}

func (a *App) registerFunctions() {
	logger := a.Logger()
	a.AddFunction("lambda_func", func() {
		logger.Info("called lambda_func with no arguments")
	})
	a.AddFunction("example_function", func() {
		a.exampleFunction(42, 3.14)
	})
	a.AddFunction("another_function", func() {
		a.anotherFunction("Hello from map!")
	})
}

func (a *App) exampleFunction(x int, y float64) {
	a.Logger().Info("called example_function", "x", x, "y", y)
}

func (a *App) anotherFunction(message string) {
	a.Logger().Info("called another_function", "message", message)
}

// SetTitle sets the page title Prepare applies. It defaults to the
// component name.
func (a *App) SetTitle(title string) {
	a.title = title
}

// Title is the page title Prepare applies.
func (a *App) Title() string {
	if a.title == "" {
		return a.Name()
	}
	return a.title
}

// Compose keeps the loaded fragments.
func (a *App) Compose() error { return nil }

// Render is a no-op.
func (a *App) Render() error { return nil }

// Mounted does not forward to children.
func (a *App) Mounted() {}

// Updated does not forward to children.
func (a *App) Updated() {}

// Document parses the host page.
func (a *App) Document() (*dom.Utility, error) {
	options := []dom.Option{dom.WithLogger(a.Logger()), dom.WithFileSystem(a.FileSystem())}
	if a.fromFile {
		return dom.ParseFile(a.source, options...)
	}
	return dom.Parse(a.source, options...)
}

// Prepare reads the page title, replaces it, ensures the #app mount element
// exists and writes the page to outPath.
func (a *App) Prepare(outPath string) error {
	if outPath == "" {
		outPath = DefaultPreparedPath
	}
	doc, err := a.Document()
	if err != nil {
		return fmt.Errorf("components: prepare app %q: %w", a.Name(), err)
	}
	defer doc.Close()

	logger := a.Logger()
	logger.Info("app page", "title", doc.Title())
	if err := doc.SetTitle(a.Title()); err != nil {
		return fmt.Errorf("components: prepare app %q: %w", a.Name(), err)
	}
	logger.Info("app page", "title", doc.Title())
	if _, err := doc.InitRootAppElement(); err != nil {
		return fmt.Errorf("components: prepare app %q: %w", a.Name(), err)
	}
	if err := doc.WriteToFile(outPath); err != nil {
		return fmt.Errorf("components: prepare app %q: %w", a.Name(), err)
	}
	return nil
}
