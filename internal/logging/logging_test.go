package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogFileReceivesPlainText(t *testing.T) {
	var buf bytes.Buffer
	SetConsole(&buf)
	SetColor(true)
	t.Cleanup(func() {
		_ = Close()
		SetColor(false)
		SetConsole(nil)
	})

	path := filepath.Join(t.TempDir(), "logs", "run.log")
	if err := SetOutputFile(path); err != nil {
		t.Fatalf("SetOutputFile failed: %v", err)
	}

	Warnf("%s\n", "Skipped.")
	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("console output missing color codes: %q", buf.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if got, want := string(data), "warning: Skipped.\n"; got != want {
		t.Fatalf("log file=%q want=%q", got, want)
	}
}

func TestDebugfRespectsVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetConsole(&buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetConsole(nil)
	})

	SetVerbose(false)
	Debugf("hidden\n")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	SetVerbose(true)
	Debugf("shown\n")
	if got := buf.String(); got != "shown\n" {
		t.Fatalf("got=%q want=%q", got, "shown\n")
	}
}

func TestPaintDisabled(t *testing.T) {
	SetColor(false)
	if got := Paint("green", "Updated."); got != "Updated." {
		t.Fatalf("got=%q want=%q", got, "Updated.")
	}
}
