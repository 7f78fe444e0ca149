// Package javadoc inserts generated comment blocks into Java source
// without disturbing the line numbers of other pending insertions.
package javadoc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cyberbobjr/javadoc-ai/internal/javaparse"
)

// Insertion pairs an element with the finished comment body to place
// directly above it. Body may be raw generator output; it is normalized
// into a delimited /** ... */ block before splicing.
type Insertion struct {
	Element javaparse.Element
	Body    string
}

// Normalize ensures the comment body is a delimited javadoc block.
func Normalize(body string) string {
	body = strings.TrimRight(body, "\n")
	if !strings.HasPrefix(strings.TrimSpace(body), "/**") {
		body = "/**\n" + body
	}
	if !strings.HasSuffix(strings.TrimSpace(body), "*/") {
		body = body + "\n */"
	}
	return body
}

// Insert splices one normalized comment block immediately before the
// element's declaration, above any annotation lines, re-indented to the
// declaration's own leading whitespace.
func Insert(content string, el javaparse.Element, body string) (string, error) {
	lines := strings.Split(content, "\n")
	if el.Line < 1 || el.Line > len(lines) {
		return "", fmt.Errorf("element %s: line %d outside file of %d lines", el.Name, el.Line, len(lines))
	}

	block := Normalize(body)

	// Walk upward over annotations so the comment lands above them, not
	// between them and the declaration.
	insertAt := el.Line - 1
	for insertAt > 0 && strings.HasPrefix(strings.TrimSpace(lines[insertAt-1]), "@") {
		insertAt--
	}

	indent := leadingWhitespace(lines[el.Line-1])
	blockLines := strings.Split(block, "\n")
	indented := make([]string, len(blockLines))
	for i, line := range blockLines {
		indented[i] = indent + line
	}

	out := make([]string, 0, len(lines)+len(indented))
	out = append(out, lines[:insertAt]...)
	out = append(out, indented...)
	out = append(out, lines[insertAt:]...)
	return strings.Join(out, "\n"), nil
}

// Apply performs every insertion against the original content. Insertions
// are applied in descending order of original line number: each splice
// shifts only the lines below it, so every still-pending element's recorded
// line stays valid in the in-progress text. Failed insertions are skipped;
// the applied subset is returned alongside the new content.
func Apply(content string, insertions []Insertion) (string, []Insertion, []error) {
	ordered := append([]Insertion(nil), insertions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Element.Line > ordered[j].Element.Line
	})

	applied := make([]Insertion, 0, len(ordered))
	var errs []error
	for _, ins := range ordered {
		next, err := Insert(content, ins.Element, ins.Body)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		content = next
		applied = append(applied, ins)
	}
	return content, applied, errs
}

func leadingWhitespace(line string) string {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return line[:i]
		}
	}
	return line
}
