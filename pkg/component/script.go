package component

import (
	"errors"
	"fmt"
)

// ErrNoScriptHost is returned when a script host is required but missing.
var ErrNoScriptHost = errors.New("component: script host is nil")

// ScriptHost is the embedded scripting engine a component's behavior runs
// in. Values cross the boundary JSON encoded.
type ScriptHost interface {
	Eval(code string) (string, error)
	Bind(name string, fn func(args []string) (string, error)) error
}

// BindFunctions exposes every registered function to host under its scoped
// name.
func BindFunctions(c Component, host ScriptHost) error {
	if host == nil {
		return ErrNoScriptHost
	}
	b := c.ComponentBase()
	for _, name := range b.FunctionNames() {
		fnName := name
		err := host.Bind(ScopedName(c, fnName), func([]string) (string, error) {
			if err := b.CallFunction(fnName); err != nil {
				return "", err
			}
			return "null", nil
		})
		if err != nil {
			return fmt.Errorf("component: bind %q: %w", fnName, err)
		}
	}
	return nil
}

// EvalBehavior evaluates the behavior fragment as an object literal.
func EvalBehavior(c Component, host ScriptHost) (string, error) {
	if host == nil {
		return "", ErrNoScriptHost
	}
	behavior := c.ComponentBase().Behavior()
	if behavior == "" {
		return "", nil
	}
	out, err := host.Eval("({" + behavior + "})")
	if err != nil {
		return "", fmt.Errorf("component: eval behavior of %q: %w", c.ComponentBase().Name(), err)
	}
	return out, nil
}
