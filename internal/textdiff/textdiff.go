// Package textdiff renders unified line diffs for dry-run previews.
package textdiff

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Context is the number of unchanged lines shown around each change.
const Context = 3

type opKind int

const (
	opEqual opKind = iota
	opDelete
	opInsert
)

type lineOp struct {
	kind opKind
	line string
}

// Unified renders a unified diff between old and new content.
// It returns "" when the contents are identical.
func Unified(oldContent, newContent []byte, oldLabel, newLabel string) string {
	if bytes.Equal(oldContent, newContent) {
		return ""
	}

	if !isLikelyText(oldContent) || !isLikelyText(newContent) {
		return fmt.Sprintf("Binary files differ: %s -> %s\n", oldLabel, newLabel)
	}

	ops := diffLineOps(splitLines(string(oldContent)), splitLines(string(newContent)))
	hunks := groupHunks(ops)
	if len(hunks) == 0 {
		// Only line terminators differ.
		return fmt.Sprintf("Line endings differ: %s -> %s\n", oldLabel, newLabel)
	}

	// Positions of the next old/new line before each op.
	oldPos := make([]int, len(ops)+1)
	newPos := make([]int, len(ops)+1)
	for i, op := range ops {
		oldPos[i+1] = oldPos[i]
		newPos[i+1] = newPos[i]
		if op.kind != opInsert {
			oldPos[i+1]++
		}
		if op.kind != opDelete {
			newPos[i+1]++
		}
	}

	var b strings.Builder
	b.WriteString("--- " + oldLabel + "\n")
	b.WriteString("+++ " + newLabel + "\n")
	for _, h := range hunks {
		oldCount := oldPos[h.end] - oldPos[h.start]
		newCount := newPos[h.end] - newPos[h.start]
		fmt.Fprintf(&b, "@@ -%s +%s @@\n",
			hunkRange(oldPos[h.start], oldCount),
			hunkRange(newPos[h.start], newCount))
		for _, op := range ops[h.start:h.end] {
			switch op.kind {
			case opEqual:
				b.WriteString(" ")
			case opDelete:
				b.WriteString("-")
			case opInsert:
				b.WriteString("+")
			}
			b.WriteString(op.line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func hunkRange(before, count int) string {
	start := before + 1
	if count == 0 {
		start = before
	}
	if count == 1 {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}

type hunk struct {
	start, end int
}

func groupHunks(ops []lineOp) []hunk {
	var hunks []hunk
	i := 0
	for i < len(ops) {
		if ops[i].kind == opEqual {
			i++
			continue
		}
		start := max(0, i-Context)
		end := i
		for end < len(ops) {
			if ops[end].kind != opEqual {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].kind == opEqual {
				run++
			}
			if run == len(ops) || run-end > 2*Context {
				end = min(len(ops), end+Context)
				break
			}
			end = run
		}
		hunks = append(hunks, hunk{start: start, end: end})
		i = end
	}
	return hunks
}

// splitLines splits on LF and drops a trailing CR so CRLF files diff by content.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func isLikelyText(data []byte) bool {
	if len(data) == 0 {
		return true
	}
	if bytes.Contains(data, []byte{0}) {
		return false
	}
	return utf8.Valid(data)
}

func diffLineOps(oldLines, newLines []string) []lineOp {
	m := len(oldLines)
	n := len(newLines)

	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}

	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if oldLines[i] == newLines[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}

	ops := make([]lineOp, 0, m+n)
	i, j := 0, 0
	for i < m && j < n {
		switch {
		case oldLines[i] == newLines[j]:
			ops = append(ops, lineOp{kind: opEqual, line: oldLines[i]})
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			ops = append(ops, lineOp{kind: opDelete, line: oldLines[i]})
			i++
		default:
			ops = append(ops, lineOp{kind: opInsert, line: newLines[j]})
			j++
		}
	}

	for i < m {
		ops = append(ops, lineOp{kind: opDelete, line: oldLines[i]})
		i++
	}
	for j < n {
		ops = append(ops, lineOp{kind: opInsert, line: newLines[j]})
		j++
	}

	return ops
}
