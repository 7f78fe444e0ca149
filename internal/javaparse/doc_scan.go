package javaparse

import "strings"

// docScanWindow bounds the upward scan for an existing javadoc block.
const docScanWindow = 10

// hasDocBefore reports whether a javadoc block immediately precedes the
// declaration at declLine (1-based). The scan walks upward at most
// docScanWindow lines and stops at the first line that is neither blank,
// part of a comment, nor an annotation.
func hasDocBefore(lines []string, declLine int) bool {
	if declLine <= 1 || declLine > len(lines)+1 {
		return false
	}
	steps := 0
	for i := declLine - 2; i >= 0 && steps < docScanWindow; i, steps = i-1, steps+1 {
		line := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(line, "/**"):
			return true
		case line == "",
			strings.HasPrefix(line, "*"),
			strings.HasPrefix(line, "//"),
			strings.HasPrefix(line, "@"):
			continue
		default:
			return false
		}
	}
	return false
}
