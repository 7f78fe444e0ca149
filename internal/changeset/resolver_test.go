package changeset

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyberbobjr/javadoc-ai/internal/exclude"
)

type fakeProvider struct {
	tracked    []string
	changed    []string
	changedErr error
	listErr    error
}

func (f *fakeProvider) ListTrackedFiles(ext string) ([]string, error) {
	return f.tracked, f.listErr
}

func (f *fakeProvider) ChangedFilesSince(revision string) ([]string, error) {
	return f.changed, f.changedErr
}

func TestResolve_FirstRunEnumeratesEverything(t *testing.T) {
	p := &fakeProvider{tracked: []string{"b/B.java", "a/A.java"}}
	r := NewResolver(p, nil, ".java", nil)

	files, err := r.Resolve(true, "abc")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/A.java", "b/B.java"}, files, "output is sorted")
}

func TestResolve_EmptyRevisionForcesFullRun(t *testing.T) {
	p := &fakeProvider{tracked: []string{"a/A.java"}, changed: []string{"never/used.java"}}
	r := NewResolver(p, nil, ".java", nil)

	files, err := r.Resolve(false, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/A.java"}, files)
}

func TestResolve_IncrementalFiltersExtension(t *testing.T) {
	p := &fakeProvider{changed: []string{"src/A.java", "README.md", "pom.xml"}}
	r := NewResolver(p, nil, ".java", nil)

	files, err := r.Resolve(false, "abc")
	require.NoError(t, err)
	assert.Equal(t, []string{"src/A.java"}, files)
}

func TestResolve_UnavailableRevisionDegradesToFullRun(t *testing.T) {
	p := &fakeProvider{
		tracked:    []string{"a/A.java", "b/B.java"},
		changedErr: fmt.Errorf("lookup gone: %w", ErrRevisionUnavailable),
	}
	r := NewResolver(p, nil, ".java", nil)

	files, err := r.Resolve(false, "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/A.java", "b/B.java"}, files)
}

func TestResolve_ExclusionsApplyOnEveryPath(t *testing.T) {
	matcher := exclude.NewMatcher([]string{"src/test/**"})
	p := &fakeProvider{changed: []string{"src/test/FooTest.java", "src/main/Foo.java"}}
	r := NewResolver(p, matcher, ".java", nil)

	files, err := r.Resolve(false, "abc")
	require.NoError(t, err)
	assert.Equal(t, []string{"src/main/Foo.java"}, files)
}

func TestResolve_EmptyChangeSetIsNotAnError(t *testing.T) {
	p := &fakeProvider{changed: []string{}}
	r := NewResolver(p, nil, ".java", nil)

	files, err := r.Resolve(false, "abc")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestResolve_EnumerationFailureIsFatal(t *testing.T) {
	p := &fakeProvider{listErr: errors.New("repository unreadable")}
	r := NewResolver(p, nil, ".java", nil)

	_, err := r.Resolve(true, "")
	require.Error(t, err)
}
