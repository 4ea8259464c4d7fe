package textdiff

import (
	"fmt"
	"strings"
	"testing"
)

func TestUnified(t *testing.T) {
	t.Run("returns empty for unchanged", func(t *testing.T) {
		diff := Unified([]byte("a\nb\n"), []byte("a\nb\n"), "old", "new")
		if diff != "" {
			t.Fatalf("expected empty diff, got %q", diff)
		}
	})

	t.Run("renders text modifications", func(t *testing.T) {
		diff := Unified(
			[]byte("a\nb\nc\n"),
			[]byte("a\nx\nc\n"),
			"a/build.gradle.kts",
			"b/build.gradle.kts",
		)

		for _, needle := range []string{
			"--- a/build.gradle.kts",
			"+++ b/build.gradle.kts",
			"@@ -1,3 +1,3 @@",
			"-b",
			"+x",
		} {
			if !strings.Contains(diff, needle) {
				t.Fatalf("diff missing %q:\n%s", needle, diff)
			}
		}
	})

	t.Run("splits distant changes into hunks", func(t *testing.T) {
		var oldLines, newLines []string
		for i := 1; i <= 20; i++ {
			line := fmt.Sprintf("l%d", i)
			oldLines = append(oldLines, line)
			switch i {
			case 2:
				line = "X"
			case 19:
				line = "Y"
			}
			newLines = append(newLines, line)
		}
		diff := Unified(
			[]byte(strings.Join(oldLines, "\n")),
			[]byte(strings.Join(newLines, "\n")),
			"old", "new",
		)

		if got := strings.Count(diff, "@@ -"); got != 2 {
			t.Fatalf("hunks=%d want=2:\n%s", got, diff)
		}
		for _, needle := range []string{"@@ -1,5 +1,5 @@", "@@ -16,5 +16,5 @@"} {
			if !strings.Contains(diff, needle) {
				t.Fatalf("diff missing %q:\n%s", needle, diff)
			}
		}
		if strings.Contains(diff, " l10\n") {
			t.Fatalf("diff should not include distant context:\n%s", diff)
		}
	})

	t.Run("ignores carriage returns in content", func(t *testing.T) {
		diff := Unified([]byte("a\r\nb\r\n"), []byte("a\r\nc\r\n"), "old", "new")
		if strings.Contains(diff, "\r") {
			t.Fatalf("diff should not contain carriage returns: %q", diff)
		}
		if !strings.Contains(diff, "+c\n") {
			t.Fatalf("expected inserted line in diff:\n%s", diff)
		}
	})

	t.Run("reports binary differences", func(t *testing.T) {
		diff := Unified([]byte{0x00, 0x01, 0x02}, []byte{0x00, 0x01, 0x03}, "old", "new")
		if !strings.Contains(diff, "Binary files differ:") {
			t.Fatalf("expected binary diff notice, got %q", diff)
		}
	})
}
