package javaparse

import (
	"regexp"
	"strings"
)

var (
	classLinePattern  = regexp.MustCompile(`^\s*(?:public\s+|private\s+|protected\s+)?(?:abstract\s+|final\s+|static\s+)*(class|interface|enum)\s+(\w+)`)
	methodLinePattern = regexp.MustCompile(`^\s*(?:public\s+|private\s+|protected\s+)?(?:static\s+|final\s+|abstract\s+|synchronized\s+)*(?:\w+(?:<[^>]+>)?(?:\[\])*)\s+(\w+)\s*\([^)]*\)`)
)

// RegexExtractor is the line-oriented fallback used when the structural
// parser cannot handle the source. It recognizes declaration-like lines
// only and may both under- and over-report.
type RegexExtractor struct{}

// NewRegexExtractor creates the fallback extractor.
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

// Extract scans line by line for type and member declarations.
func (e *RegexExtractor) Extract(path string, content []byte) (ExtractionResult, error) {
	result := ExtractionResult{Outcome: OutcomeFallback}
	lines := strings.Split(string(content), "\n")

	for i, raw := range lines {
		lineNo := i + 1

		if m := classLinePattern.FindStringSubmatch(raw); m != nil {
			result.Types = append(result.Types, Element{
				Kind:      KindType,
				Name:      m[2],
				Signature: m[1] + " " + m[2],
				Line:      lineNo,
				HasDoc:    hasDocBefore(lines, lineNo),
			})
			continue
		}

		// Member heuristic: a declaration-like line that opens its block on
		// the same line. Keyword-led statements are not declarations.
		if m := methodLinePattern.FindStringSubmatch(raw); m != nil && strings.Contains(raw, "{") {
			if isReservedWord(m[1]) {
				continue
			}
			result.Members = append(result.Members, Element{
				Kind:      KindMember,
				Name:      m[1],
				Signature: strings.TrimSpace(raw),
				Line:      lineNo,
				HasDoc:    hasDocBefore(lines, lineNo),
			})
		}
	}

	return result, nil
}

func isReservedWord(name string) bool {
	switch name {
	case "if", "for", "while", "switch", "catch", "return", "new", "throw":
		return true
	}
	return false
}
