// Package generator turns a widget graph into an HTML document.
package generator

import (
	"errors"
	"fmt"
	"html"

	"github.com/goliatone/go-fluidui/pkg/widget"
)

var (
	// ErrGenerate wraps failures producing a page. The returned page is the
	// error page in that case.
	ErrGenerate = errors.New("generator: generate failed")
	// ErrNilGraph is reported when no graph is supplied.
	ErrNilGraph = errors.New("generator: graph is nil")
)

// Generator renders a widget graph. GenerateHTML is total: the returned
// string is always a complete document, an error page naming the failure
// when err is non-nil.
type Generator interface {
	Name() string
	GenerateHTML(g *widget.Graph) (string, error)
}

// ErrorPage renders a minimal document describing err.
func ErrorPage(title string, err error) string {
	if title == "" {
		title = "fluidui"
	}
	message := "unknown error"
	if err != nil {
		message = err.Error()
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s - error</title>
</head>
<body>
<main class="fluid-error">
<h1>Could not generate page</h1>
<pre>%s</pre>
</main>
</body>
</html>
`, html.EscapeString(title), html.EscapeString(message))
}

// fail wraps err in ErrGenerate and pairs it with the error page.
func fail(title string, err error) (string, error) {
	err = fmt.Errorf("%w: %w", ErrGenerate, err)
	return ErrorPage(title, err), err
}
