package config

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fluidui/pkg/fileio"
)

func TestLoadFrom_MergesOverDefaults(t *testing.T) {
	files := fileio.NewMemory(map[string]string{
		"fluidui.yaml": `
title: Demo
width: 640
generator: Template
template: page
preview:
  open_browser: true
styles:
  - "p { margin: 0; }"
`,
	})
	got, err := LoadFrom(files, "fluidui.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default()
	want.Title = "Demo"
	want.Width = 640
	want.Generator = GeneratorTemplate
	want.Template = "page"
	want.Preview.OpenBrowser = true
	want.Styles = []string{"p { margin: 0; }"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFrom_EmptyFileKeepsDefaults(t *testing.T) {
	got, err := LoadFrom(fileio.NewMemory(map[string]string{"c.yaml": "\n"}), "c.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFrom_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{name: "bad yaml", content: "width: [", invalid: false},
		{name: "negative size", content: "height: -1", invalid: true},
		{name: "unknown generator", content: "generator: w2ui", invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(fileio.NewMemory(map[string]string{"c.yaml": tt.content}), "c.yaml")
			if err == nil {
				t.Fatalf("expected error")
			}
			if errors.Is(err, ErrInvalid) != tt.invalid {
				t.Fatalf("ErrInvalid = %v for %v", !tt.invalid, err)
			}
		})
	}

	if _, err := LoadFrom(fileio.NewMemory(nil), "missing.yaml"); !errors.Is(err, fileio.ErrRead) {
		t.Fatalf("expected read error, got %v", err)
	}
}
