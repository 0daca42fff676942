package template

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"tokens.css.tmpl":  {Data: []byte(":root {}\n")},
		"tokens.json.tmpl": {Data: []byte("{}\n")},
		"README.md":        {Data: []byte("not a template")},
	}
}

func TestLoader_Load(t *testing.T) {
	tmpDir := t.TempDir()
	loader := New("css", testFS()).WithCustomBase(tmpDir)

	t.Run("loads embedded template when no custom exists", func(t *testing.T) {
		content, fromCustom, err := loader.Load("tokens.css.tmpl")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fromCustom {
			t.Error("expected embedded template, got custom")
		}
		if string(content) != ":root {}\n" {
			t.Errorf("unexpected content %q", content)
		}
	})

	t.Run("loads custom template when it exists", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "css", "tokens.css.tmpl")
		if err := os.MkdirAll(filepath.Dir(customPath), 0o755); err != nil {
			t.Fatalf("failed to create custom dir: %v", err)
		}
		if err := os.WriteFile(customPath, []byte("/* custom */\n"), 0o644); err != nil {
			t.Fatalf("failed to write custom template: %v", err)
		}

		content, fromCustom, err := loader.Load("tokens.css.tmpl")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !fromCustom {
			t.Error("expected custom template, got embedded")
		}
		if string(content) != "/* custom */\n" {
			t.Errorf("unexpected content %q", content)
		}
	})

	t.Run("missing template", func(t *testing.T) {
		if _, _, err := loader.Load("nope.tmpl"); err == nil {
			t.Error("expected error for missing template")
		}
	})
}

func TestLoader_Embedded(t *testing.T) {
	names, err := New("json", testFS()).Embedded()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"tokens.css.tmpl", "tokens.json.tmpl"}
	if len(names) != len(want) {
		t.Fatalf("Embedded() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Embedded()[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestLoader_Dump(t *testing.T) {
	tmpDir := t.TempDir()
	loader := New("json", testFS()).WithCustomBase(tmpDir)

	out, err := loader.Dump("tokens.json.tmpl", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != loader.CustomPath("tokens.json.tmpl") {
		t.Errorf("Dump() path = %s, want %s", out, loader.CustomPath("tokens.json.tmpl"))
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("dumped template missing: %v", err)
	}

	if _, err := loader.Dump("tokens.json.tmpl", false); !errors.Is(err, ErrTemplateExists) {
		t.Errorf("second Dump() error = %v, want ErrTemplateExists", err)
	}
	if _, err := loader.Dump("tokens.json.tmpl", true); err != nil {
		t.Errorf("forced Dump() error = %v", err)
	}
}

func TestLoader_DumpAll(t *testing.T) {
	tmpDir := t.TempDir()
	loader := New("css", testFS()).WithCustomBase(tmpDir)

	if _, err := loader.Dump("tokens.css.tmpl", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dumped, err := loader.DumpAll(false)
	if !errors.Is(err, ErrTemplateExists) {
		t.Errorf("DumpAll() error = %v, want skipped template", err)
	}
	if len(dumped) != 1 || dumped[0] != loader.CustomPath("tokens.json.tmpl") {
		t.Errorf("DumpAll() = %v, want only tokens.json.tmpl", dumped)
	}

	dumped, err = loader.DumpAll(true)
	if err != nil {
		t.Fatalf("forced DumpAll() error = %v", err)
	}
	if len(dumped) != 2 {
		t.Errorf("forced DumpAll() dumped %d templates, want 2", len(dumped))
	}
}
