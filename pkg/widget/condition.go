package widget

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrCondition wraps directive expressions that cannot be parsed.
var ErrCondition = errors.New("widget: invalid condition")

// EvalCondition evaluates a v-if / v-show expression against values.
//
// Supported forms:
//   - truthiness: `open`, `!open`, `this.open`, literals such as `false`
//   - comparisons: `count > 0`, `mode === "edit"`, `size != 'h1'`
//   - composition: `a && (b || !c)`
//
// Identifiers read values with dot-path traversal. A missing identifier is
// undefined: it is falsy, equals only null and fails every ordering.
func EvalCondition(expr string, values map[string]any) (bool, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return true, nil
	}
	tokens, err := tokenize(trimmed)
	if err != nil {
		return false, err
	}
	p := &condParser{tokens: tokens}
	node, err := p.or()
	if err != nil {
		return false, err
	}
	if p.pos < len(p.tokens) {
		return false, fmt.Errorf("%w: unexpected %q in %q", ErrCondition, p.tokens[p.pos].raw, expr)
	}
	return node.eval(values), nil
}

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokNumber
	tokBool
	tokNull
	tokCompare
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
)

type condToken struct {
	kind tokenKind
	raw  string
}

func tokenize(input string) ([]condToken, error) {
	var out []condToken
	for i := 0; i < len(input); {
		ch := input[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '(':
			out = append(out, condToken{tokLParen, "("})
			i++
		case ch == ')':
			out = append(out, condToken{tokRParen, ")"})
			i++
		case ch == '&' || ch == '|':
			if i+1 >= len(input) || input[i+1] != ch {
				return nil, fmt.Errorf("%w: single %q, use %q", ErrCondition, string(ch), string([]byte{ch, ch}))
			}
			kind := tokAnd
			if ch == '|' {
				kind = tokOr
			}
			out = append(out, condToken{kind, input[i : i+2]})
			i += 2
		case ch == '=' || ch == '!' || ch == '<' || ch == '>':
			op := operatorAt(input[i:])
			if op == "" {
				return nil, fmt.Errorf("%w: unexpected %q", ErrCondition, string(ch))
			}
			if op == "!" {
				out = append(out, condToken{tokNot, op})
			} else {
				out = append(out, condToken{tokCompare, normalizeOp(op)})
			}
			i += len(op)
		case ch == '"' || ch == '\'':
			end := i + 1
			for end < len(input) && input[end] != ch {
				if input[end] == '\\' {
					end++
				}
				end++
			}
			if end >= len(input) {
				return nil, fmt.Errorf("%w: unterminated string", ErrCondition)
			}
			text := input[i+1 : end]
			if ch == '\'' {
				text = strings.ReplaceAll(text, `"`, `\"`)
				text = strings.ReplaceAll(text, `\'`, "'")
			}
			value, err := strconv.Unquote(`"` + text + `"`)
			if err != nil {
				return nil, fmt.Errorf("%w: string literal: %w", ErrCondition, err)
			}
			out = append(out, condToken{tokString, value})
			i = end + 1
		default:
			start := i
			for i < len(input) && !strings.ContainsRune(" \t\n\r()&|=!<>\"'", rune(input[i])) {
				i++
			}
			raw := input[start:i]
			switch {
			case raw == "true" || raw == "false":
				out = append(out, condToken{tokBool, raw})
			case raw == "null" || raw == "undefined":
				out = append(out, condToken{tokNull, raw})
			case raw[0] >= '0' && raw[0] <= '9' || raw[0] == '-' || raw[0] == '.':
				if _, err := strconv.ParseFloat(raw, 64); err != nil {
					return nil, fmt.Errorf("%w: number %q", ErrCondition, raw)
				}
				out = append(out, condToken{tokNumber, raw})
			default:
				out = append(out, condToken{tokIdent, strings.TrimPrefix(raw, "this.")})
			}
		}
	}
	return out, nil
}

// operatorAt returns the longest operator at the start of s.
func operatorAt(s string) string {
	for _, op := range []string{"===", "!==", "==", "!=", "<=", ">=", "<", ">", "!"} {
		if strings.HasPrefix(s, op) {
			return op
		}
	}
	return ""
}

func normalizeOp(op string) string {
	switch op {
	case "===":
		return "=="
	case "!==":
		return "!="
	}
	return op
}

type condNode interface {
	eval(values map[string]any) bool
}

type orNode struct{ left, right condNode }

func (n orNode) eval(v map[string]any) bool { return n.left.eval(v) || n.right.eval(v) }

type andNode struct{ left, right condNode }

func (n andNode) eval(v map[string]any) bool { return n.left.eval(v) && n.right.eval(v) }

type notNode struct{ inner condNode }

func (n notNode) eval(v map[string]any) bool { return !n.inner.eval(v) }

// operand is an identifier or a literal.
type operand struct {
	tok condToken
}

func (o operand) value(values map[string]any) any {
	switch o.tok.kind {
	case tokIdent:
		v, _ := lookup(values, o.tok.raw)
		return v
	case tokString:
		return o.tok.raw
	case tokNumber:
		f, _ := strconv.ParseFloat(o.tok.raw, 64)
		return f
	case tokBool:
		return o.tok.raw == "true"
	}
	return nil
}

func (o operand) eval(values map[string]any) bool { return truthy(o.value(values)) }

type compareNode struct {
	left, right operand
	op          string
}

func (n compareNode) eval(values map[string]any) bool {
	left, right := n.left.value(values), n.right.value(values)
	if left == nil || right == nil {
		same := left == nil && right == nil
		switch n.op {
		case "==":
			return same
		case "!=":
			return !same
		}
		return false
	}

	lf, lok := number(left)
	rf, rok := number(right)
	if lok && rok {
		switch n.op {
		case "==":
			return lf == rf
		case "!=":
			return lf != rf
		case "<":
			return lf < rf
		case "<=":
			return lf <= rf
		case ">":
			return lf > rf
		case ">=":
			return lf >= rf
		}
	}

	ls, rs := text(left), text(right)
	switch n.op {
	case "==":
		return ls == rs
	case "!=":
		return ls != rs
	case "<":
		return ls < rs
	case "<=":
		return ls <= rs
	case ">":
		return ls > rs
	case ">=":
		return ls >= rs
	}
	return false
}

type condParser struct {
	tokens []condToken
	pos    int
}

func (p *condParser) peek() (condToken, bool) {
	if p.pos >= len(p.tokens) {
		return condToken{}, false
	}
	return p.tokens[p.pos], true
}

func (p *condParser) match(kind tokenKind) bool {
	if tok, ok := p.peek(); ok && tok.kind == kind {
		p.pos++
		return true
	}
	return false
}

func (p *condParser) or() (condNode, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(tokOr) {
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = orNode{left, right}
	}
	return left, nil
}

func (p *condParser) and() (condNode, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(tokAnd) {
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = andNode{left, right}
	}
	return left, nil
}

func (p *condParser) unary() (condNode, error) {
	if p.match(tokNot) {
		inner, err := p.unary()
		if err != nil {
			return nil, err
		}
		return notNode{inner}, nil
	}
	return p.primary()
}

func (p *condParser) primary() (condNode, error) {
	if p.match(tokLParen) {
		inner, err := p.or()
		if err != nil {
			return nil, err
		}
		if !p.match(tokRParen) {
			return nil, fmt.Errorf("%w: missing ')'", ErrCondition)
		}
		return inner, nil
	}
	left, err := p.operand()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok && tok.kind == tokCompare {
		p.pos++
		right, err := p.operand()
		if err != nil {
			return nil, err
		}
		return compareNode{left: left, right: right, op: tok.raw}, nil
	}
	return left, nil
}

func (p *condParser) operand() (operand, error) {
	tok, ok := p.peek()
	if !ok {
		return operand{}, fmt.Errorf("%w: unexpected end", ErrCondition)
	}
	switch tok.kind {
	case tokIdent, tokString, tokNumber, tokBool, tokNull:
		p.pos++
		return operand{tok}, nil
	}
	return operand{}, fmt.Errorf("%w: unexpected %q", ErrCondition, tok.raw)
}

func lookup(values map[string]any, path string) (any, bool) {
	if len(values) == 0 || path == "" {
		return nil, false
	}
	if v, ok := values[path]; ok {
		return v, true
	}
	var current any = values
	for _, part := range strings.Split(path, ".") {
		switch typed := current.(type) {
		case map[string]any:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		case map[string]string:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		default:
			return nil, false
		}
	}
	return current, true
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	}
	if f, ok := number(value); ok {
		return f != 0
	}
	return true
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

func text(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	}
	return fmt.Sprint(value)
}
