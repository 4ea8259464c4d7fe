package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mitchellh/colorstring"
	"golang.org/x/term"
)

var (
	verbose atomic.Bool
	color   atomic.Bool

	mu         sync.Mutex
	console    io.Writer = os.Stdout
	output     io.Writer = os.Stdout
	outputFile *os.File
	outputPath string
)

var ansiEscape = regexp.MustCompile("\x1b\\[[0-9;]*m")

// SetVerbose enables or disables debug logging for the current process.
func SetVerbose(enabled bool) {
	verbose.Store(enabled)
}

// Verbose reports whether debug logging is enabled.
func Verbose() bool {
	return verbose.Load()
}

// SetColor enables or disables colored level tags and outcome words.
func SetColor(enabled bool) {
	color.Store(enabled)
}

// Color reports whether colored output is enabled.
func Color() bool {
	return color.Load()
}

// StdoutIsTerminal reports whether stdout is attached to a terminal.
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// StderrIsTerminal reports whether stderr is attached to a terminal.
func StderrIsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// Paint wraps s in the named colorstring color when color output is enabled.
func Paint(name, s string) string {
	if !Color() {
		return s
	}
	return colorstring.Color("[" + name + "]" + s + "[reset]")
}

// SetConsole replaces the console writer. Tests use it to capture output.
func SetConsole(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	console = w
	if outputFile != nil {
		output = io.MultiWriter(console, plainWriter{outputFile})
	} else {
		output = console
	}
}

// SetOutputFile configures optional file logging while preserving console output.
// Passing an empty path disables file logging. The file never receives color codes.
func SetOutputFile(path string) error {
	path = strings.TrimSpace(path)

	mu.Lock()
	defer mu.Unlock()

	if path == outputPath {
		return nil
	}

	if outputFile != nil {
		if err := outputFile.Close(); err != nil {
			outputFile = nil
			outputPath = ""
			output = console
			return err
		}
		outputFile = nil
		outputPath = ""
	}

	output = console
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	outputFile = f
	outputPath = path
	output = io.MultiWriter(console, plainWriter{f})
	return nil
}

// Close flushes and closes the log file if one is configured.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if outputFile == nil {
		return nil
	}
	err := outputFile.Close()
	outputFile = nil
	outputPath = ""
	output = console
	return err
}

// Infof prints formatted output regardless of verbosity level.
func Infof(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(output, format, args...)
}

// Infoln prints output regardless of verbosity level.
func Infoln(args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(output, args...)
}

// Debugf prints formatted output only when verbose mode is enabled.
func Debugf(format string, args ...any) {
	if !Verbose() {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(output, format, args...)
}

// Warnf prints a formatted line prefixed with a yellow "warning:" tag.
func Warnf(format string, args ...any) {
	tag := Paint("yellow", "warning:")
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(output, tag+" "+format, args...)
}

// Errorf prints a formatted line prefixed with a red "error:" tag.
// It does not return an error; callers still propagate their own.
func Errorf(format string, args ...any) {
	tag := Paint("red", "error:")
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(output, tag+" "+format, args...)
}

type plainWriter struct {
	w io.Writer
}

func (p plainWriter) Write(b []byte) (int, error) {
	if _, err := p.w.Write(ansiEscape.ReplaceAll(b, nil)); err != nil {
		return 0, err
	}
	return len(b), nil
}
