package profile

import (
	"path/filepath"
	"slices"
	"testing"
)

func TestSaveLoadListDelete(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	names, err := List()
	if err != nil {
		t.Fatalf("List on empty dir failed: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no profiles, got %v", names)
	}

	root := "/src/javet"
	strict := true
	if err := Save("ci", &Profile{Root: &root, Strict: &strict}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	p, err := Load("ci")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Root == nil || *p.Root != root {
		t.Fatalf("Root=%v want=%q", p.Root, root)
	}
	if p.Strict == nil || !*p.Strict {
		t.Fatalf("Strict=%v want=true", p.Strict)
	}
	if p.V8Path != nil || p.Verbose != nil {
		t.Fatalf("unset fields should stay nil: %+v", p)
	}

	names, err = List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !slices.Equal(names, []string{"ci"}) {
		t.Fatalf("names=%v want=[ci]", names)
	}

	if err := Delete("ci"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := Load("ci"); err == nil {
		t.Fatalf("expected error loading deleted profile")
	}
}

func TestDirUsesXDGConfigHome(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	want := filepath.Join(base, "javet-buildkit", "profiles")
	if got := Dir(); got != want {
		t.Fatalf("Dir=%q want=%q", got, want)
	}
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"", " ", "..", "a/b", `a\b`} {
		if err := ValidateName(name); err == nil {
			t.Fatalf("ValidateName(%q) should fail", name)
		}
	}
	if err := ValidateName("release-5.0"); err != nil {
		t.Fatalf("ValidateName failed: %v", err)
	}
}
