package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingState(t *testing.T) {
	t.Parallel()

	state, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if state.Versions == nil || len(state.Versions) != 0 {
		t.Fatalf("expected empty initialized state, got %+v", state)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := &LocalState{}
	s.Record("javet", AppliedVersion{Version: "5.0.3", AppliedAt: at, Updated: 42})

	if err := s.Save(tmp); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(tmp)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got := loaded.Versions["javet"]
	if got.Version != "5.0.3" || got.Updated != 42 || !got.AppliedAt.Equal(at) {
		t.Fatalf("unexpected loaded state: %+v", loaded)
	}
}

func TestLoadCorruptState(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, StateFile), []byte("{"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(tmp); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestResolveRoot(t *testing.T) {
	t.Parallel()

	mkRoot := func(t *testing.T) string {
		t.Helper()
		tmp := t.TempDir()
		for _, dir := range []string{"cpp/jni", "android/javet-android"} {
			if err := os.MkdirAll(filepath.Join(tmp, dir), 0o755); err != nil {
				t.Fatalf("MkdirAll failed: %v", err)
			}
		}
		for _, file := range []string{RootMarker, "android/javet-android/" + RootMarker} {
			if err := os.WriteFile(filepath.Join(tmp, file), nil, 0o644); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}
		}
		return tmp
	}

	t.Run("finds root from nested dir", func(t *testing.T) {
		root := mkRoot(t)
		if got := ResolveRoot(filepath.Join(root, "cpp", "jni")); got != root {
			t.Fatalf("ResolveRoot=%q want=%q", got, root)
		}
	})

	t.Run("skips subproject build scripts", func(t *testing.T) {
		root := mkRoot(t)
		if got := ResolveRoot(filepath.Join(root, "android", "javet-android")); got != root {
			t.Fatalf("ResolveRoot=%q want=%q", got, root)
		}
	})

	t.Run("falls back to start dir", func(t *testing.T) {
		tmp := t.TempDir()
		if got := ResolveRoot(tmp); got != tmp {
			t.Fatalf("ResolveRoot=%q want=%q", got, tmp)
		}
	})
}
