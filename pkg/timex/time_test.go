package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime_UnixMethods(t *testing.T) {
	// 固定时间
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tt := Time(now)

	assert.Equal(t, now.Unix(), tt.Unix())
	assert.Equal(t, now.UnixMilli(), tt.UnixMilli())
	assert.Equal(t, now.UnixMicro(), tt.UnixMicro())
	assert.Equal(t, now.UnixNano(), tt.UnixNano())
}

func TestTime_JSON(t *testing.T) {
	tt := Time(time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local))

	data, err := json.Marshal(struct {
		At    Time `json:"at"`
		Empty Time `json:"empty"`
	}{At: tt})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"2024-05-06 07:08:09","empty":null}`, string(data))

	var back Time
	require.NoError(t, json.Unmarshal([]byte(`"2024-05-06 07:08:09"`), &back))
	assert.True(t, back.Time().Equal(tt.Time()))
}

func TestTime_ScanAndValue(t *testing.T) {
	var tt Time
	require.NoError(t, tt.Scan("2024-05-06 07:08:09"))
	assert.Equal(t, "2024-05-06 07:08:09", tt.String())

	require.NoError(t, tt.Scan(nil))
	assert.True(t, tt.IsZero())

	v, err := tt.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.Error(t, tt.Scan(42))
}
