package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	s, err := decode("abc", map[string]string{
		"driver_id":  "42",
		"visits":     "3",
		"created_at": "1767225600",
		"expires_at": "1767229200",
	})
	require.NoError(t, err)

	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, int64(42), s.DriverID)
	assert.Equal(t, 3, s.Visits)
	assert.Equal(t, time.Hour, s.ExpiresAt.Sub(s.CreatedAt))
}

func TestDecodeRejectsMissingDriver(t *testing.T) {
	_, err := decode("abc", map[string]string{"visits": "1"})
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "taxifleet:session:abc", key("abc"))
}
