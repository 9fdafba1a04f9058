package main

import (
	"archive/zip"
	"bytes"
	"io"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"figmark/state"
)

const scene = `{"name": "Hero", "id": "1", "type": "FRAME", "width": 10, "height": 20,
  "children": [{"id": "2", "name": "p.lead", "type": "TEXT", "characters": "Hello"}]}`

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app := (&runner{}).app()
	app.Writer = &buf
	err := app.Run(state.ContextWithEnv(context.Background()), append([]string{"figmark"}, args...))
	return buf.String(), err
}

func TestDumpDefaultConfiguration(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "config.yaml")
	if _, err := runApp(t, "dumpconfig", "--default", dst); err != nil {
		t.Fatalf("dumpconfig error = %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "version: 1") || !strings.Contains(string(data), "generator:") {
		t.Errorf("unexpected configuration:\n%s", data)
	}
}

func TestGenerateToStdout(t *testing.T) {
	src := filepath.Join(t.TempDir(), "hero.json")
	if err := os.WriteFile(src, []byte(scene), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runApp(t, "generate", "--stdout", src, t.TempDir())
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	if !strings.Contains(out, `<p class="lead">Hello</p>`) {
		t.Errorf("markup missing from output:\n%s", out)
	}
	if !strings.Contains(out, ".lead {") {
		t.Errorf("stylesheet missing from output:\n%s", out)
	}
}

func TestGenerateFiles(t *testing.T) {
	src := filepath.Join(t.TempDir(), "hero.json")
	if err := os.WriteFile(src, []byte(scene), 0644); err != nil {
		t.Fatal(err)
	}
	dst := t.TempDir()

	if _, err := runApp(t, "generate", "--format", "xhtml", src, dst); err != nil {
		t.Fatalf("generate error = %v", err)
	}
	for _, name := range []string{"hero.xhtml", "hero.css"} {
		if _, err := os.Stat(filepath.Join(dst, name)); err != nil {
			t.Errorf("expected output %s: %v", name, err)
		}
	}
}

func TestDebugReportRecordsScenes(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "hero.json")
	if err := os.WriteFile(src, []byte(scene), 0644); err != nil {
		t.Fatal(err)
	}
	report := filepath.Join(tmp, "report.zip")
	cfgFile := filepath.Join(tmp, "figmark.yaml")
	cfg := "logging:\n  file:\n    destination: " + filepath.Join(tmp, "figmark.log") +
		"\nreporting:\n  destination: " + report + "\n"
	if err := os.WriteFile(cfgFile, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runApp(t, "--debug", "--config", cfgFile, "generate", src, filepath.Join(tmp, "out")); err != nil {
		t.Fatalf("generate error = %v", err)
	}

	zr, err := zip.OpenReader(report)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	var scenes string
	for _, f := range zr.File {
		if f.Name != "scenes.yaml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		scenes = string(data)
	}
	if !strings.Contains(scenes, "source: hero.json") || !strings.Contains(scenes, "hero.html") {
		t.Errorf("scenes.yaml =\n%s", scenes)
	}
	if _, err := os.Stat(filepath.Join(tmp, "figmark-panic.log")); !os.IsNotExist(err) {
		t.Errorf("empty panic log must be removed, stat error = %v", err)
	}
}
