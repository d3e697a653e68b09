package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const counterDescriptor = `<script>
export default { name: "Counter" }
</script>
<template>
  <div class="counter"><p>Count</p></div>
</template>
<style>
.counter { display: flex; }
</style>
`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestRender_ToStdout(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Counter.vue", counterDescriptor)

	got, err := runCLI(t, "render", "--component", path, "-o", "-")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, fragment := range []string{
		"<!DOCTYPE html>",
		"<title>fluidui</title>",
		".counter { display: flex; }",
		`data-component="Counter"`,
		"<p>Count</p>",
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in:\n%s", fragment, got)
		}
	}
}

func TestRender_UsesConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "App.vue", counterDescriptor)
	out := filepath.Join(dir, "out", "page.html")
	cfg := writeFile(t, dir, "fluidui.yaml", "title: Configured\ndescriptor_dir: "+dir+"\noutput: "+out+"\n")

	msg, err := runCLI(t, "--config", cfg, "render")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(msg, out) {
		t.Fatalf("unexpected message %q", msg)
	}
	page, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	if !strings.Contains(string(page), "<title>Configured</title>") {
		t.Fatalf("config title missing:\n%s", page)
	}
}

func TestRender_MissingDescriptor(t *testing.T) {
	if _, err := runCLI(t, "render", "--component", filepath.Join(t.TempDir(), "nope.vue"), "-o", "-"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "page.html", `<html><head><title>Inspect</title></head><body>
<div class="row-a">a</div><div class="row-b">b</div><div class="col">c</div></body></html>`)

	got, err := runCLI(t, "inspect", path, "--title", "--tag", "div")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.HasPrefix(got, "title: Inspect\n3 element(s)\n") {
		t.Fatalf("unexpected output:\n%s", got)
	}

	got, err = runCLI(t, "inspect", path, "--attr", "class=ROW", "--match", "starts-with")
	if err != nil {
		t.Fatalf("inspect attr: %v", err)
	}
	if !strings.HasPrefix(got, "2 element(s)\n") {
		t.Fatalf("unexpected output:\n%s", got)
	}

	got, err = runCLI(t, "inspect", path, "--attr", "class=ROW", "--match", "starts-with", "--case-sensitive")
	if err != nil {
		t.Fatalf("inspect attr: %v", err)
	}
	if !strings.HasPrefix(got, "0 element(s)\n") {
		t.Fatalf("unexpected output:\n%s", got)
	}

	if _, err := runCLI(t, "inspect", path, "--attr", "class=x", "--match", "fuzzy"); err == nil {
		t.Fatalf("expected bad match error")
	}
}

func TestPrepare(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "index.html", "<html><head><title>Old</title></head><body></body></html>")
	out := filepath.Join(dir, "prepared.html")

	if _, err := runCLI(t, "prepare", path, "--title", "New", "-o", out); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	page, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(page), "New") || !strings.Contains(string(page), `id="app"`) {
		t.Fatalf("unexpected page:\n%s", page)
	}
}

func TestRender_TemplateKeepsConfiguredExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "App.vue", counterDescriptor)
	tpl := writeFile(t, dir, "page.tpl", "custom:{{ title }}:{% for style in styles %}{{ style|safe }}{% endfor %}:{{ body|safe }}")
	cfg := writeFile(t, dir, "fluidui.yaml", "title: Tpl\ngenerator: template\ndescriptor_dir: "+dir+"\ntemplate: "+tpl+"\n")

	got, err := runCLI(t, "--config", cfg, "render", "-o", "-")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(got, "custom:Tpl:") {
		t.Fatalf("configured template not used:\n%s", got)
	}
	for _, fragment := range []string{".counter { display: flex; }", "<p>Count</p>"} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in:\n%s", fragment, got)
		}
	}
}
