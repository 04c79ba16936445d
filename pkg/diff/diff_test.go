package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		before string
		after  string
	}{
		{"append", "check packaging", "check packaging before shipping"},
		{"replace word", "price is wrong", "price is fixed"},
		{"chinese", "库存不足", "库存已补充"},
		{"clear", "to be removed", ""},
		{"from empty", "", "fresh note"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Patch(tc.before, tc.after)
			require.NotEmpty(t, p)

			got, ok, err := Apply(tc.before, p)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, tc.after, got)
		})
	}
}

func TestPatchOfEqualTextsIsEmpty(t *testing.T) {
	assert.Empty(t, Patch("same", "same"))

	got, ok, err := Apply("same", "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "same", got)
}

func TestApplyRejectsGarbage(t *testing.T) {
	_, _, err := Apply("text", "@@ not a patch")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	s := Summarize("abc", "abXc")
	assert.Equal(t, Stat{Inserted: 1}, s)
	assert.True(t, s.Changed())

	s = Summarize("备注内容", "备注")
	assert.Equal(t, 2, s.Deleted)
	assert.Equal(t, 0, s.Inserted)

	assert.False(t, Summarize("x", "x").Changed())
}
