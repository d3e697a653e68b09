package widget_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-fluidui/pkg/component"
	"github.com/goliatone/go-fluidui/pkg/inputs"
	"github.com/goliatone/go-fluidui/pkg/widget"
)

func TestEvalCondition(t *testing.T) {
	values := map[string]any{
		"count":   3,
		"ratio":   0.5,
		"mode":    "edit",
		"open":    true,
		"closed":  false,
		"empty":   "",
		"numText": "10",
		"user":    map[string]any{"role": "admin"},
		"a.b":     "dotted",
	}
	tests := []struct {
		expr string
		want bool
	}{
		{"", true},
		{"true", true},
		{"false", false},
		{"open", true},
		{"!open", false},
		{"this.open", true},
		{"empty", false},
		{"missing", false},
		{"!missing", true},
		{"count > 0", true},
		{"count >= 3", true},
		{"count < 3", false},
		{"count == 3", true},
		{"count === 3", true},
		{"count !== 3", false},
		{"ratio <= 0.5", true},
		{"numText > 9", true},
		{`mode === "edit"`, true},
		{`mode != 'edit'`, false},
		{`mode == 'it\'s'`, false},
		{"user.role == 'admin'", true},
		{"a.b == 'dotted'", true},
		{"missing == null", true},
		{"missing != undefined", false},
		{"missing > 0", false},
		{"missing < 1", false},
		{"open && closed", false},
		{"open || closed", true},
		{"!(open && closed)", true},
		{"open && (closed || count > 2)", true},
		{"closed == false", true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := widget.EvalCondition(tt.expr, values)
			if err != nil {
				t.Fatalf("eval: %v", err)
			}
			if got != tt.want {
				t.Fatalf("EvalCondition(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvalCondition_Errors(t *testing.T) {
	for _, expr := range []string{"a & b", "a | b", "a = 1", "(a", "a b", `"open`, "count >", "-x"} {
		if _, err := widget.EvalCondition(expr, nil); !errors.Is(err, widget.ErrCondition) {
			t.Fatalf("EvalCondition(%q) error = %v, want ErrCondition", expr, err)
		}
	}
}

func TestSession_ImportMarkupConditions(t *testing.T) {
	s := widget.NewSession(sequentialIDs())
	markup := `<p v-if="count > 0">some</p><p v-show="!open">closed</p><p v-if="bad(">kept</p>`
	if err := s.ImportMarkupWith(s.Root(), markup, map[string]any{"count": 2, "open": true}); err != nil {
		t.Fatalf("import: %v", err)
	}
	want := []string{"0:layout:", "1:paragraph:", "2:text:some", "1:paragraph:", "2:text:kept"}
	got := outline(s.Graph())
	if len(got) != len(want) {
		t.Fatalf("outline = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("outline = %v, want %v", got, want)
		}
	}
}

func TestSession_AddComponentEvaluatesState(t *testing.T) {
	c := component.NewFromString(`<template><div><span v-if="count > 0">{{ count }}</span><p v-if="label == 'go'">label</p></div></template>`, "Gate")
	c.AddInputValue(inputs.Int("count", 0))
	c.SetState("label", "go")

	s := widget.NewSession(sequentialIDs())
	if _, err := s.AddComponent(s.Root(), c); err != nil {
		t.Fatalf("add component: %v", err)
	}
	for _, row := range outline(s.Graph()) {
		if row == "2:span:" || row == "3:span:" {
			t.Fatalf("span should be hidden: %v", outline(s.Graph()))
		}
	}
	found := false
	for _, row := range outline(s.Graph()) {
		if row == "4:text:label" {
			found = true
		}
	}
	if !found {
		t.Fatalf("state-gated paragraph missing: %v", outline(s.Graph()))
	}
}
