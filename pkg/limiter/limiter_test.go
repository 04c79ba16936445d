package limiter

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodLimiterKeyStripsQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/product/notes?productId=abc", nil)

	assert.Equal(t, "/api/product/notes", NewMethodLimiter().Key(c))
}

func TestMethodLimiterBuckets(t *testing.T) {
	l := NewMethodLimiter()
	l.AddBuckets(BucketRule{Key: "/api/product/note", FillInterval: time.Hour, Capacity: 2})

	bucket, ok := l.GetBucket("/api/product/note")
	require.True(t, ok)
	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(0), bucket.TakeAvailable(1))

	_, ok = l.GetBucket("/api/product")
	assert.False(t, ok)
}
