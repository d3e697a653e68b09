package inputs

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Kind enumerates the primitive kinds an input declaration can carry. The set
// is closed; callers cannot add kinds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt8
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt
	KindUint
	KindInt64
	KindUint64
	KindBool
	KindFloat32
	KindFloat64
	KindString
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindInt8:    "int8",
	KindUint8:   "uint8",
	KindInt16:   "int16",
	KindUint16:  "uint16",
	KindInt32:   "int32",
	KindUint32:  "uint32",
	KindInt:     "int",
	KindUint:    "uint",
	KindInt64:   "int64",
	KindUint64:  "uint64",
	KindBool:    "bool",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindString:  "string",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// IsSigned reports whether the kind stores a signed integer.
func (k Kind) IsSigned() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt, KindInt64:
		return true
	}
	return false
}

// IsUnsigned reports whether the kind stores an unsigned integer.
func (k Kind) IsUnsigned() bool {
	switch k {
	case KindUint8, KindUint16, KindUint32, KindUint, KindUint64:
		return true
	}
	return false
}

// IsFloat reports whether the kind stores a floating point number.
func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

// IsNumeric reports whether the kind is any integer or float kind.
func (k Kind) IsNumeric() bool {
	return k.IsSigned() || k.IsUnsigned() || k.IsFloat()
}

// PropType is the UI framework prop type tag for values of this kind.
func (k Kind) PropType() string {
	switch {
	case k == KindString:
		return "String"
	case k == KindBool:
		return "Boolean"
	case k.IsNumeric():
		return "Number"
	}
	return ""
}

// scalar holds a value in the storage slot matching its kind family.
type scalar struct {
	i int64
	u uint64
	f float64
	b bool
	s string
}

// Value is a named, typed, defaulted input declaration. The zero Value is
// invalid; build values with the kind constructors.
type Value struct {
	name string
	kind Kind
	val  scalar
	def  scalar
}

func String(name, value string, def ...string) Value {
	v := Value{name: name, kind: KindString, val: scalar{s: value}}
	if len(def) > 0 {
		v.def.s = def[0]
	}
	return v
}

func Bool(name string, value bool, def ...bool) Value {
	v := Value{name: name, kind: KindBool, val: scalar{b: value}}
	if len(def) > 0 {
		v.def.b = def[0]
	}
	return v
}

func Int8(name string, value int8, def ...int8) Value {
	return signed(name, KindInt8, int64(value), firstOr(def, 0))
}

func Int16(name string, value int16, def ...int16) Value {
	return signed(name, KindInt16, int64(value), firstOr(def, 0))
}

func Int32(name string, value int32, def ...int32) Value {
	return signed(name, KindInt32, int64(value), firstOr(def, 0))
}

func Int(name string, value int, def ...int) Value {
	return signed(name, KindInt, int64(value), firstOr(def, 0))
}

func Int64(name string, value int64, def ...int64) Value {
	return signed(name, KindInt64, value, firstOr(def, 0))
}

func Uint8(name string, value uint8, def ...uint8) Value {
	return unsigned(name, KindUint8, uint64(value), firstOr(def, 0))
}

func Uint16(name string, value uint16, def ...uint16) Value {
	return unsigned(name, KindUint16, uint64(value), firstOr(def, 0))
}

func Uint32(name string, value uint32, def ...uint32) Value {
	return unsigned(name, KindUint32, uint64(value), firstOr(def, 0))
}

func Uint(name string, value uint, def ...uint) Value {
	return unsigned(name, KindUint, uint64(value), firstOr(def, 0))
}

func Uint64(name string, value uint64, def ...uint64) Value {
	return unsigned(name, KindUint64, value, firstOr(def, 0))
}

func Float32(name string, value float32, def ...float32) Value {
	return float(name, KindFloat32, float64(value), float64(firstOr(def, 0)))
}

func Float64(name string, value float64, def ...float64) Value {
	return float(name, KindFloat64, value, firstOr(def, 0))
}

func signed[T int8 | int16 | int32 | int | int64](name string, kind Kind, value int64, def T) Value {
	return Value{name: name, kind: kind, val: scalar{i: value}, def: scalar{i: int64(def)}}
}

func unsigned[T uint8 | uint16 | uint32 | uint | uint64](name string, kind Kind, value uint64, def T) Value {
	return Value{name: name, kind: kind, val: scalar{u: value}, def: scalar{u: uint64(def)}}
}

func float(name string, kind Kind, value, def float64) Value {
	return Value{name: name, kind: kind, val: scalar{f: value}, def: scalar{f: def}}
}

func firstOr[T any](values []T, fallback T) T {
	if len(values) > 0 {
		return values[0]
	}
	return fallback
}

func (v Value) Name() string { return v.name }

func (v Value) Kind() Kind { return v.kind }

// Valid reports whether the value was built through a kind constructor.
func (v Value) Valid() bool { return v.kind != KindInvalid }

// WithName returns a copy of v carrying the new name.
func (v Value) WithName(name string) Value {
	v.name = name
	return v
}

// WithDefault returns a copy of v whose default is taken from other. The two
// values must share a kind; otherwise v is returned unchanged.
func (v Value) WithDefault(other Value) Value {
	if other.kind != v.kind {
		return v
	}
	v.def = other.val
	return v
}

// Text returns the string payload. Non-string kinds are formatted.
func (v Value) Text() string {
	return format(v.kind, v.val)
}

// DefaultText returns the default formatted as text.
func (v Value) DefaultText() string {
	return format(v.kind, v.def)
}

func (v Value) Int64() int64 {
	switch {
	case v.kind.IsSigned():
		return v.val.i
	case v.kind.IsUnsigned():
		return int64(v.val.u)
	case v.kind.IsFloat():
		return int64(v.val.f)
	}
	return 0
}

func (v Value) Uint64() uint64 {
	switch {
	case v.kind.IsUnsigned():
		return v.val.u
	case v.kind.IsSigned():
		return uint64(v.val.i)
	case v.kind.IsFloat():
		return uint64(v.val.f)
	}
	return 0
}

func (v Value) Float64() float64 {
	switch {
	case v.kind.IsFloat():
		return v.val.f
	case v.kind.IsSigned():
		return float64(v.val.i)
	case v.kind.IsUnsigned():
		return float64(v.val.u)
	}
	return 0
}

func (v Value) Bool() bool {
	return v.kind == KindBool && v.val.b
}

// Interface returns the value boxed in its natural Go type.
func (v Value) Interface() any {
	return boxed(v.kind, v.val)
}

// DefaultInterface returns the default boxed in its natural Go type.
func (v Value) DefaultInterface() any {
	return boxed(v.kind, v.def)
}

// PropType is the prop type tag (String, Number or Boolean).
func (v Value) PropType() string {
	return v.kind.PropType()
}

// DefaultLiteral renders the default as a script literal. Text defaults are
// single quoted, so an empty default renders as ''.
func (v Value) DefaultLiteral() string {
	if v.kind == KindString {
		return quoteSingle(v.def.s)
	}
	return format(v.kind, v.def)
}

func (v Value) String() string {
	return fmt.Sprintf("%s(%s=%s)", v.kind, v.name, v.Text())
}

// Compare orders values by name, then kind, then value. Defaults are not
// considered. A float NaN sorts before every number and equals only NaN.
func Compare(a, b Value) int {
	if c := strings.Compare(a.name, b.name); c != 0 {
		return c
	}
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	return compareScalar(a.kind, a.val, b.val)
}

// Equal reports whether a and b share name, kind and value.
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

func compareScalar(kind Kind, a, b scalar) int {
	switch {
	case kind.IsSigned():
		return cmp.Compare(a.i, b.i)
	case kind.IsUnsigned():
		return cmp.Compare(a.u, b.u)
	case kind.IsFloat():
		return cmp.Compare(a.f, b.f)
	case kind == KindBool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	case kind == KindString:
		return strings.Compare(a.s, b.s)
	}
	return 0
}

func format(kind Kind, s scalar) string {
	switch {
	case kind.IsSigned():
		return strconv.FormatInt(s.i, 10)
	case kind.IsUnsigned():
		return strconv.FormatUint(s.u, 10)
	case kind == KindFloat32:
		return strconv.FormatFloat(s.f, 'g', -1, 32)
	case kind == KindFloat64:
		return strconv.FormatFloat(s.f, 'g', -1, 64)
	case kind == KindBool:
		return strconv.FormatBool(s.b)
	case kind == KindString:
		return s.s
	}
	return ""
}

func boxed(kind Kind, s scalar) any {
	switch kind {
	case KindInt8:
		return int8(s.i)
	case KindInt16:
		return int16(s.i)
	case KindInt32:
		return int32(s.i)
	case KindInt:
		return int(s.i)
	case KindInt64:
		return s.i
	case KindUint8:
		return uint8(s.u)
	case KindUint16:
		return uint16(s.u)
	case KindUint32:
		return uint32(s.u)
	case KindUint:
		return uint(s.u)
	case KindUint64:
		return s.u
	case KindFloat32:
		return float32(s.f)
	case KindFloat64:
		return s.f
	case KindBool:
		return s.b
	case KindString:
		return s.s
	}
	return nil
}

func quoteSingle(s string) string {
	if s == "" {
		return "''"
	}
	replacer := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)
	return "'" + replacer.Replace(s) + "'"
}
