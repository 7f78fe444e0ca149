// Package report renders and delivers the end-of-run summary.
package report

import (
	"context"
	"fmt"
	"strings"
)

// FileDetail describes one processed file for the per-file report section.
type FileDetail struct {
	Path     string   `json:"path"`
	Types    int      `json:"types"`
	Members  int      `json:"members"`
	Elements []string `json:"elements,omitempty"`
	Fallback bool     `json:"fallback,omitempty"`
}

// Summary is the final record of one run. The core only produces it; sinks
// decide how it is delivered.
type Summary struct {
	Date               string       `json:"date"`
	Revision           string       `json:"revision"`
	Branch             string       `json:"branch,omitempty"`
	FilesConsidered    int          `json:"files_considered"`
	FilesProcessed     int          `json:"files_processed"`
	TypesDocumented    int          `json:"types_documented"`
	MembersDocumented  int          `json:"members_documented"`
	ElementsDocumented int          `json:"elements_documented"`
	FailedFiles        []string     `json:"failed_files,omitempty"`
	PerFile            []FileDetail `json:"per_file,omitempty"`
}

// Sink consumes a finished summary. Delivery failures are reported but a
// failing sink never fails the run.
type Sink interface {
	Name() string
	Send(ctx context.Context, s Summary) error
}

// RenderText renders the plain-text report used by the email sink and the
// terminal.
func RenderText(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Javadoc Generation Report - %s\n", s.Date)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "  Files considered: %d\n", s.FilesConsidered)
	fmt.Fprintf(&b, "  Files documented: %d\n", s.FilesProcessed)
	fmt.Fprintf(&b, "  Types documented: %d\n", s.TypesDocumented)
	fmt.Fprintf(&b, "  Members documented: %d\n", s.MembersDocumented)
	fmt.Fprintf(&b, "  Elements documented: %d\n", s.ElementsDocumented)
	if s.Branch != "" {
		fmt.Fprintf(&b, "  Branch: %s\n", s.Branch)
	}
	fmt.Fprintf(&b, "  Revision: %s\n", s.Revision)

	if len(s.FailedFiles) > 0 {
		b.WriteString("\nFailed files:\n")
		for _, f := range s.FailedFiles {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}

	if len(s.PerFile) > 0 {
		b.WriteString("\nFiles processed:\n\n")
		for _, d := range s.PerFile {
			fmt.Fprintf(&b, "  %s\n", d.Path)
			fmt.Fprintf(&b, "    Types: %d, Members: %d\n", d.Types, d.Members)
			for _, el := range d.Elements {
				fmt.Fprintf(&b, "      - %s\n", el)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
