package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyberbobjr/javadoc-ai/internal/changeset"
	"github.com/cyberbobjr/javadoc-ai/internal/gaps"
	"github.com/cyberbobjr/javadoc-ai/internal/javaparse"
	"github.com/cyberbobjr/javadoc-ai/internal/ledger"
)

type fakeRepo struct {
	revision string
	files    map[string]string
	readErr  map[string]error
	writes   map[string]string
}

func newFakeRepo(files map[string]string) *fakeRepo {
	return &fakeRepo{
		revision: "rev-head",
		files:    files,
		readErr:  map[string]error{},
		writes:   map[string]string{},
	}
}

func (f *fakeRepo) ListTrackedFiles(ext string) ([]string, error) {
	var out []string
	for path := range f.files {
		if strings.HasSuffix(path, ext) {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeRepo) ChangedFilesSince(revision string) ([]string, error) {
	return nil, fmt.Errorf("no history: %w", changeset.ErrRevisionUnavailable)
}

func (f *fakeRepo) CurrentRevision() (string, error) { return f.revision, nil }

func (f *fakeRepo) ReadFile(rel string) (string, error) {
	if err := f.readErr[rel]; err != nil {
		return "", err
	}
	content, ok := f.files[rel]
	if !ok {
		return "", fmt.Errorf("no such file: %s", rel)
	}
	return content, nil
}

func (f *fakeRepo) WriteFile(rel, content string) error {
	f.writes[rel] = content
	f.files[rel] = content
	return nil
}

type fakeGenerator struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (g *fakeGenerator) Generate(_ context.Context, el javaparse.Element, filePath, _ string) (string, error) {
	g.mu.Lock()
	g.calls = append(g.calls, filePath+":"+el.Name)
	g.mu.Unlock()
	if g.fail[el.Name] {
		return "", errors.New("model unavailable")
	}
	return " * Describes " + el.Name + ".", nil
}

const undocumentedClass = `public class Alpha {
    public void run() {
    }
}
`

func newTestRunner(t *testing.T, repo *fakeRepo, gen *fakeGenerator, opts Options) (*Runner, *ledger.Ledger, *ledger.ProgressSet) {
	t.Helper()
	dir := t.TempDir()
	ldg, err := ledger.Load(filepath.Join(dir, "state.json"))
	require.NoError(t, err)
	progress := ledger.LoadProgress(filepath.Join(dir, "progress.json"))

	resolver := changeset.NewResolver(repo, nil, ".java", nil)
	filter := gaps.NewFilter(javaparse.NewExtractor(nil), nil, 0)
	return New(repo, resolver, filter, gen, ldg, progress, nil, opts), ldg, progress
}

func TestRun_DocumentsAndAdvancesCheckpoint(t *testing.T) {
	repo := newFakeRepo(map[string]string{"src/Alpha.java": undocumentedClass})
	gen := &fakeGenerator{}
	r, ldg, progress := newTestRunner(t, repo, gen, Options{Workers: 2})

	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "rev-head", summary.Revision)
	assert.Equal(t, 1, summary.FilesConsidered)
	assert.Equal(t, 1, summary.FilesProcessed)
	assert.Equal(t, 1, summary.TypesDocumented)
	assert.Equal(t, 1, summary.MembersDocumented)
	assert.Equal(t, 2, summary.ElementsDocumented)
	assert.Empty(t, summary.FailedFiles)

	written := repo.writes["src/Alpha.java"]
	require.NotEmpty(t, written)
	assert.Equal(t, 2, strings.Count(written, "/**"))
	assert.Contains(t, written, "Describes Alpha.")
	assert.Contains(t, written, "Describes run.")

	assert.False(t, ldg.IsFirstRun())
	assert.Equal(t, "rev-head", ldg.LastRevision())
	assert.Zero(t, progress.Len(), "progress set cleared after a completed run")
}

func TestRun_SecondPassFindsNothing(t *testing.T) {
	repo := newFakeRepo(map[string]string{"src/Alpha.java": undocumentedClass})
	gen := &fakeGenerator{}
	r, _, _ := newTestRunner(t, repo, gen, Options{Workers: 1})

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	firstCalls := len(gen.calls)

	summary, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.ElementsDocumented, "inserted comments satisfy the next scan")
	assert.Equal(t, firstCalls, len(gen.calls), "no further generation requests")
}

func TestRun_ResumeSkipsCompletedFiles(t *testing.T) {
	repo := newFakeRepo(map[string]string{
		"src/Alpha.java": undocumentedClass,
		"src/Beta.java":  strings.ReplaceAll(undocumentedClass, "Alpha", "Beta"),
	})
	gen := &fakeGenerator{}
	r, _, progress := newTestRunner(t, repo, gen, Options{Workers: 1})
	require.NoError(t, progress.MarkDone("src/Alpha.java"))

	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.FilesConsidered)
	assert.Equal(t, 1, summary.FilesProcessed)
	assert.NotContains(t, repo.writes, "src/Alpha.java")
	assert.Contains(t, repo.writes, "src/Beta.java")
	for _, call := range gen.calls {
		assert.True(t, strings.HasPrefix(call, "src/Beta.java:"), call)
	}
}

func TestRun_FailedReadIsAggregatedNotFatal(t *testing.T) {
	repo := newFakeRepo(map[string]string{
		"src/Alpha.java": undocumentedClass,
		"src/Beta.java":  strings.ReplaceAll(undocumentedClass, "Alpha", "Beta"),
	})
	repo.readErr["src/Alpha.java"] = errors.New("permission denied")
	gen := &fakeGenerator{}
	r, ldg, _ := newTestRunner(t, repo, gen, Options{Workers: 1})

	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"src/Alpha.java"}, summary.FailedFiles)
	assert.Equal(t, 1, summary.FilesProcessed)
	assert.False(t, ldg.IsFirstRun(), "checkpoint still advances, the failed file is reported")
}

func TestRun_FailedGenerationSkipsElementOnly(t *testing.T) {
	repo := newFakeRepo(map[string]string{"src/Alpha.java": undocumentedClass})
	gen := &fakeGenerator{fail: map[string]bool{"run": true}}
	r, _, _ := newTestRunner(t, repo, gen, Options{Workers: 1})

	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TypesDocumented)
	assert.Zero(t, summary.MembersDocumented)
	written := repo.writes["src/Alpha.java"]
	assert.Contains(t, written, "Describes Alpha.")
	assert.NotContains(t, written, "Describes run.")
}

func TestRun_DryRunLeavesEverythingUntouched(t *testing.T) {
	repo := newFakeRepo(map[string]string{"src/Alpha.java": undocumentedClass})
	gen := &fakeGenerator{}
	r, ldg, progress := newTestRunner(t, repo, gen, Options{Workers: 1, DryRun: true})

	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ElementsDocumented, "dry run still reports what it would insert")
	assert.Empty(t, repo.writes)
	assert.True(t, ldg.IsFirstRun())
	assert.Zero(t, progress.Len())
}

func TestRun_MaxFilesCapsTheRun(t *testing.T) {
	repo := newFakeRepo(map[string]string{
		"src/Alpha.java": undocumentedClass,
		"src/Beta.java":  strings.ReplaceAll(undocumentedClass, "Alpha", "Beta"),
	})
	gen := &fakeGenerator{}
	r, _, _ := newTestRunner(t, repo, gen, Options{Workers: 1, MaxFiles: 1})

	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.FilesConsidered)
	assert.Len(t, repo.writes, 1)
}

func TestRun_EmptyChangeSetStillAdvancesCheckpoint(t *testing.T) {
	repo := newFakeRepo(map[string]string{})
	gen := &fakeGenerator{}
	r, ldg, _ := newTestRunner(t, repo, gen, Options{Workers: 1})

	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, summary.FilesConsidered)
	assert.False(t, ldg.IsFirstRun())
	assert.Equal(t, "rev-head", ldg.LastRevision())
}

func TestRun_CancelledContextAborts(t *testing.T) {
	repo := newFakeRepo(map[string]string{"src/Alpha.java": undocumentedClass})
	gen := &fakeGenerator{}
	r, ldg, _ := newTestRunner(t, repo, gen, Options{Workers: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx)
	require.Error(t, err)
	assert.True(t, ldg.IsFirstRun(), "aborted run never advances the checkpoint")
}
