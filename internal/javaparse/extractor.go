// Package javaparse extracts documentable declarations from Java source.
//
// Extraction runs in two stages: a structural tree-sitter parse, and a
// line-oriented pattern matcher used when the structural parse fails. Both
// stages implement the same Extractor capability, so callers never see
// which one produced a result beyond the tagged Outcome.
package javaparse

import (
	"log/slog"
	"strings"
)

// Extractor turns source text into an ordered list of documentable elements.
type Extractor interface {
	Extract(path string, content []byte) (ExtractionResult, error)
}

// TwoStageExtractor tries the primary structural parse and recovers locally
// with the fallback. A total failure (both stages error) yields an empty
// result and is logged, never propagated.
type TwoStageExtractor struct {
	primary  Extractor
	fallback Extractor
	logger   *slog.Logger
}

// NewExtractor builds the default two-stage Java extractor.
func NewExtractor(logger *slog.Logger) *TwoStageExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &TwoStageExtractor{
		primary:  NewTreeSitterExtractor(),
		fallback: NewRegexExtractor(),
		logger:   logger,
	}
}

// Extract never returns an error; extraction failures degrade per stage.
func (e *TwoStageExtractor) Extract(path string, content []byte) (ExtractionResult, error) {
	result, err := e.primary.Extract(path, content)
	if err == nil {
		return result, nil
	}

	e.logger.Warn("structural parse failed, using fallback", "file", path, "error", err)
	result, err = e.fallback.Extract(path, content)
	if err != nil {
		e.logger.Error("fallback extraction failed", "file", path, "error", err)
		return ExtractionResult{Outcome: OutcomeFailed}, nil
	}
	return result, nil
}

// CodeContext returns the source lines surrounding an element, used as
// context for comment generation.
func CodeContext(content string, el Element, contextLines int) string {
	lines := strings.Split(content, "\n")
	start := el.Line - contextLines - 1
	if start < 0 {
		start = 0
	}
	end := el.Line + contextLines
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}
