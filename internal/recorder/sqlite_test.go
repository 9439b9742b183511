package recorder

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "requests.db"))
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.RecordRequest(&RequestEvent{
		Token: "RELIANCE", Symbol: "RELIANCE.NS", Outcome: "delivered", DurationMS: 1200,
	}))
	require.NoError(t, r.RecordRequest(&RequestEvent{
		Token: "BOGUS", Symbol: "BOGUS", Outcome: "failed", Error: "no data available", DurationMS: 300,
	}))

	events, err := r.RecentRequests(10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// newest first
	assert.Equal(t, "BOGUS", events[0].Symbol)
	assert.Equal(t, "failed", events[0].Outcome)
	assert.Equal(t, "RELIANCE.NS", events[1].Symbol)
	assert.False(t, events[0].CreatedAt.IsZero())
}

func TestSQLiteRecorder_LimitApplies(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "requests.db"))
	require.NoError(t, err)
	defer r.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, r.RecordRequest(&RequestEvent{Token: "AAPL", Symbol: "AAPL", Outcome: "delivered"}))
	}
	events, err := r.RecentRequests(3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}
