package exclude

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcher_PatternsAndNegation(t *testing.T) {
	m := NewMatcher([]string{
		"src/test/**",
		"*Test.java",
		"generated/**",
		"!generated/keep/Kept.java",
	})

	cases := []struct {
		path     string
		excluded bool
	}{
		{path: "src/test/java/com/example/FooTest.java", excluded: true},
		{path: "src/main/java/com/example/Foo.java", excluded: false},
		{path: "src/main/java/com/example/FooTest.java", excluded: true},
		{path: "generated/api/Client.java", excluded: true},
		{path: "generated/keep/Kept.java", excluded: false},
		{path: "module/src/test/Helper.java", excluded: true},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.excluded, m.Match(tc.path))
		})
	}
}

func TestMatcher_AnchoredPattern(t *testing.T) {
	m := NewMatcher([]string{"/build/**"})

	assert.True(t, m.Match("build/Gen.java"))
	assert.False(t, m.Match("module/build/Gen.java"), "anchored pattern matches from the root only")
}

func TestMatcher_SingleSegmentGlobStaysInSegment(t *testing.T) {
	m := NewMatcher([]string{"*.tmp"})

	assert.True(t, m.Match("cache.tmp"))
	assert.True(t, m.Match("deep/nested/cache.tmp"))
	assert.False(t, m.Match("src/Main.java"))
}

func TestMatcher_IgnoresBlankAndCommentRules(t *testing.T) {
	m := NewMatcher([]string{"", "# comment", "  "})

	assert.False(t, m.Match("src/Main.java"))
}
