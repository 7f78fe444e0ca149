// Package gaps reduces extracted elements to those lacking documentation.
package gaps

import (
	"github.com/cyberbobjr/javadoc-ai/internal/exclude"
	"github.com/cyberbobjr/javadoc-ai/internal/javaparse"
)

// Filter selects the undocumented elements of a file, honoring path
// exclusions and an optional per-file cap.
type Filter struct {
	extractor javaparse.Extractor
	matcher   *exclude.Matcher
	cap       int
}

// NewFilter builds a gap filter. A cap <= 0 means unlimited.
func NewFilter(extractor javaparse.Extractor, matcher *exclude.Matcher, elementCap int) *Filter {
	return &Filter{extractor: extractor, matcher: matcher, cap: elementCap}
}

// Gaps returns the elements of path that need a javadoc block, types before
// members, capped to the configured maximum, along with the extraction
// outcome. An excluded path short-circuits before extraction so excluded
// files are never parsed or modified.
func (f *Filter) Gaps(path string, content []byte) ([]javaparse.Element, javaparse.Outcome) {
	if f.matcher != nil && f.matcher.Match(path) {
		return nil, javaparse.OutcomeParsed
	}

	result, err := f.extractor.Extract(path, content)
	if err != nil {
		return nil, javaparse.OutcomeFailed
	}

	missing := make([]javaparse.Element, 0)
	for _, el := range result.All() {
		if !el.HasDoc {
			missing = append(missing, el)
		}
	}
	if f.cap > 0 && len(missing) > f.cap {
		missing = missing[:f.cap]
	}
	return missing, result.Outcome
}
