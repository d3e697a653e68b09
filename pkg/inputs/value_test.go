package inputs_test

import (
	"testing"

	"github.com/goliatone/go-fluidui/pkg/inputs"
)

func TestValue_PropTypeAndDefaultLiteral(t *testing.T) {
	tests := []struct {
		name     string
		value    inputs.Value
		propType string
		literal  string
	}{
		{name: "empty text", value: inputs.String("title", "x"), propType: "String", literal: "''"},
		{name: "text", value: inputs.String("title", "x", "it's"), propType: "String", literal: `'it\'s'`},
		{name: "int", value: inputs.Int("count", 1, 5), propType: "Number", literal: "5"},
		{name: "short", value: inputs.Int16("count", 1), propType: "Number", literal: "0"},
		{name: "unsigned", value: inputs.Uint64("size", 1, 42), propType: "Number", literal: "42"},
		{name: "float", value: inputs.Float64("ratio", 1, 0.5), propType: "Number", literal: "0.5"},
		{name: "float32", value: inputs.Float32("ratio", 1, 1.25), propType: "Number", literal: "1.25"},
		{name: "bool", value: inputs.Bool("enabled", false, true), propType: "Boolean", literal: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.PropType(); got != tt.propType {
				t.Fatalf("prop type = %q, want %q", got, tt.propType)
			}
			if got := tt.value.DefaultLiteral(); got != tt.literal {
				t.Fatalf("default literal = %q, want %q", got, tt.literal)
			}
		})
	}
}

func TestValue_TypedAccessors(t *testing.T) {
	v := inputs.Uint8("level", 200)
	if got := v.Interface(); got != uint8(200) {
		t.Fatalf("interface = %#v", got)
	}
	if got := v.Int64(); got != 200 {
		t.Fatalf("int64 = %d", got)
	}
	if got := inputs.Bool("on", true).Bool(); !got {
		t.Fatalf("bool accessor returned false")
	}
	if got := inputs.String("on", "true").Bool(); got {
		t.Fatalf("bool accessor on text should be false")
	}
}

func TestCompare_KindBreaksTies(t *testing.T) {
	a := inputs.Int("n", 1)
	b := inputs.Int64("n", 1)
	if inputs.Equal(a, b) {
		t.Fatalf("values of different kinds must not be equal")
	}
	if inputs.Compare(a, b) >= 0 {
		t.Fatalf("int should order before int64")
	}
}
