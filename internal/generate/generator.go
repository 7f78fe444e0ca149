// Package generate produces javadoc comment bodies for extracted elements.
package generate

import (
	"context"
	"strings"

	"github.com/cyberbobjr/javadoc-ai/internal/javaparse"
)

// Generator is the external comment-text contract. An empty body with a nil
// error means "skip this element"; it must not abort the file.
type Generator interface {
	Generate(ctx context.Context, el javaparse.Element, filePath, codeContext string) (string, error)
}

// FormatBody turns raw model output into javadoc body lines (" * ..."),
// stripping markdown fences and any block delimiters the model emitted.
// The insertion engine adds the /** and */ delimiters.
func FormatBody(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```java")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "/**" || line == "*/":
			continue
		case strings.HasPrefix(line, "* "):
			line = strings.TrimPrefix(line, "* ")
		case line == "*":
			line = ""
		}
		if line == "" {
			out = append(out, " *")
			continue
		}
		out = append(out, " * "+line)
	}
	return strings.Join(out, "\n")
}
