package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestCatalog_IsValid(t *testing.T) {
	c := NewTestCatalog()
	require.NoError(t, c.Validate())
	assert.Equal(t, 5, c.Size())
}

func TestWithSize(t *testing.T) {
	c := NewTestCatalog(WithSize(12))
	require.NoError(t, c.Validate())
	assert.Equal(t, "Movie 11", c.Movies[11].Title)
	assert.Equal(t, int64(1011), c.Movies[11].ID)
}

func TestGenerateSimilarity_Symmetric(t *testing.T) {
	m := GenerateSimilarity(4)
	for i := range m {
		assert.Equal(t, 1.0, m[i][i])
		for j := range m[i] {
			assert.Equal(t, m[i][j], m[j][i])
		}
	}
}
