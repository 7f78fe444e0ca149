package gaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyberbobjr/javadoc-ai/internal/exclude"
	"github.com/cyberbobjr/javadoc-ai/internal/javaparse"
)

type stubExtractor struct {
	result javaparse.ExtractionResult
	calls  int
}

func (s *stubExtractor) Extract(path string, content []byte) (javaparse.ExtractionResult, error) {
	s.calls++
	return s.result, nil
}

func TestGaps_KeepsOnlyUndocumented(t *testing.T) {
	ext := &stubExtractor{result: javaparse.ExtractionResult{
		Types: []javaparse.Element{
			{Kind: javaparse.KindType, Name: "Documented", Line: 3, HasDoc: true},
			{Kind: javaparse.KindType, Name: "Bare", Line: 8},
		},
		Members: []javaparse.Element{
			{Kind: javaparse.KindMember, Name: "m", Line: 10},
		},
		Outcome: javaparse.OutcomeParsed,
	}}
	f := NewFilter(ext, nil, 0)

	gaps, outcome := f.Gaps("src/Main.java", nil)
	assert.Equal(t, javaparse.OutcomeParsed, outcome)
	require.Len(t, gaps, 2)
	assert.Equal(t, "Bare", gaps[0].Name, "types come before members")
	assert.Equal(t, "m", gaps[1].Name)
}

func TestGaps_ExcludedPathSkipsExtraction(t *testing.T) {
	ext := &stubExtractor{}
	f := NewFilter(ext, exclude.NewMatcher([]string{"src/test/**"}), 0)

	gaps, _ := f.Gaps("src/test/java/FooTest.java", []byte("public class FooTest {}"))
	assert.Empty(t, gaps)
	assert.Zero(t, ext.calls, "excluded files must never be parsed")
}

func TestGaps_CapTruncates(t *testing.T) {
	ext := &stubExtractor{result: javaparse.ExtractionResult{
		Members: []javaparse.Element{
			{Kind: javaparse.KindMember, Name: "a", Line: 1},
			{Kind: javaparse.KindMember, Name: "b", Line: 2},
			{Kind: javaparse.KindMember, Name: "c", Line: 3},
		},
	}}
	f := NewFilter(ext, nil, 2)

	gaps, _ := f.Gaps("src/Main.java", nil)
	require.Len(t, gaps, 2)
	assert.Equal(t, "a", gaps[0].Name)
	assert.Equal(t, "b", gaps[1].Name)
}

func TestGaps_ReportsFallbackOutcome(t *testing.T) {
	ext := &stubExtractor{result: javaparse.ExtractionResult{
		Types:   []javaparse.Element{{Kind: javaparse.KindType, Name: "X", Line: 1}},
		Outcome: javaparse.OutcomeFallback,
	}}
	f := NewFilter(ext, nil, 0)

	_, outcome := f.Gaps("src/X.java", nil)
	assert.Equal(t, javaparse.OutcomeFallback, outcome)
}
