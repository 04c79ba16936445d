package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type srcNote struct {
	ID        string
	Note      string
	Solved    bool
	CreatedAt time.Time
	Internal  string
}

type dstNote struct {
	ID        string
	Note      string
	Solved    bool
	CreatedAt time.Time
}

func TestStructAssign(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	src := srcNote{ID: "a1", Note: "check", Solved: true, CreatedAt: at, Internal: "x"}

	var dst dstNote
	require.NoError(t, StructAssign(&src, &dst))
	assert.Equal(t, dstNote{ID: "a1", Note: "check", Solved: true, CreatedAt: at}, dst)
}
