package javaparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexExtract_Declarations(t *testing.T) {
	source := `public class Orders {
    private final int limit = 10;

    public Orders(int limit) {
        this.limit = limit;
    }

    public List<Order> findAll(String filter) {
        if (filter == null) {
            return all;
        }
        return filtered;
    }
}
`
	e := NewRegexExtractor()

	result, err := e.Extract("Orders.java", []byte(source))
	require.NoError(t, err)
	assert.Equal(t, OutcomeFallback, result.Outcome)

	require.Len(t, result.Types, 1)
	assert.Equal(t, "Orders", result.Types[0].Name)
	assert.Equal(t, 1, result.Types[0].Line)

	names := make([]string, 0, len(result.Members))
	for _, m := range result.Members {
		names = append(names, m.Name)
	}
	assert.Contains(t, names, "findAll")
	assert.NotContains(t, names, "if", "keyword-led statements are not declarations")
}

func TestRegexExtract_HasDocDetection(t *testing.T) {
	source := `/**
 * Documented.
 */
public interface Repo {
}
`
	e := NewRegexExtractor()

	result, err := e.Extract("Repo.java", []byte(source))
	require.NoError(t, err)
	require.Len(t, result.Types, 1)
	assert.True(t, result.Types[0].HasDoc)
}
