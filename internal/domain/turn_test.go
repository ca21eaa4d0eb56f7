package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func history(n int) []Turn {
	turns := make([]Turn, 0, n)
	for i := 0; i < n; i++ {
		turns = append(turns, Turn{Role: RoleUser, Content: fmt.Sprintf("m%d", i)})
	}
	return turns
}

func TestTrimHistory_UnderMax(t *testing.T) {
	turns := history(4)
	assert.Equal(t, turns, TrimHistory(turns, 10))
}

func TestTrimHistory_OverMax(t *testing.T) {
	trimmed := TrimHistory(history(14), 10)

	assert.Len(t, trimmed, 10)
	assert.Equal(t, "m4", trimmed[0].Content, "oldest turns are evicted first")
	assert.Equal(t, "m13", trimmed[9].Content)
}

func TestTrimHistory_ZeroMax(t *testing.T) {
	turns := history(3)
	assert.Equal(t, turns, TrimHistory(turns, 0))
}
