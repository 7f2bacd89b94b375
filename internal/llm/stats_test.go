package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatsSnapshot(t *testing.T) {
	type call struct {
		ms int64
		ok bool
	}
	tests := []struct {
		name  string
		calls []call
		want  StatsSnapshot
	}{
		{
			name: "empty",
			want: StatsSnapshot{},
		},
		{
			name:  "single success",
			calls: []call{{ms: 42, ok: true}},
			want:  StatsSnapshot{Count: 1, MinMs: 42, MaxMs: 42, AvgMs: 42, P50Ms: 42, P95Ms: 42},
		},
		{
			name: "mixed with one failure",
			calls: []call{
				{ms: 10, ok: true},
				{ms: 20, ok: true},
				{ms: 30, ok: true},
				{ms: 40, ok: true},
				{ms: 500, ok: false},
			},
			want: StatsSnapshot{Count: 5, Failures: 1, MinMs: 10, MaxMs: 500, AvgMs: 120, P50Ms: 30, P95Ms: 408},
		},
		{
			name: "all failures",
			calls: []call{
				{ms: 100, ok: false},
				{ms: 200, ok: false},
			},
			want: StatsSnapshot{Count: 2, Failures: 2, MinMs: 100, MaxMs: 200, AvgMs: 150, P50Ms: 150, P95Ms: 195},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStats(time.Hour)
			for _, c := range tt.calls {
				s.Record(c.ms, c.ok)
			}
			snap := s.Snapshot()
			assert.Equal(t, tt.want.Count, snap.Count)
			assert.Equal(t, tt.want.Failures, snap.Failures)
			assert.Equal(t, tt.want.MinMs, snap.MinMs)
			assert.Equal(t, tt.want.MaxMs, snap.MaxMs)
			assert.InDelta(t, tt.want.AvgMs, snap.AvgMs, 0.001)
			assert.InDelta(t, tt.want.P50Ms, snap.P50Ms, 0.001)
			assert.InDelta(t, tt.want.P95Ms, snap.P95Ms, 0.001)
		})
	}
}

func TestStatsPrunesExpiredSamples(t *testing.T) {
	s := NewStats(time.Minute)
	s.Record(10, true)
	s.Record(20, false)

	// Age the first sample past the window.
	s.mu.Lock()
	s.samples[0].at = time.Now().Add(-2 * time.Minute)
	s.mu.Unlock()

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.Count)
	assert.Equal(t, 1, snap.Failures)
	assert.Equal(t, int64(20), snap.MinMs)
	assert.Equal(t, int64(20), snap.MaxMs)
}

func TestStatsZeroWindowDefaultsToAnHour(t *testing.T) {
	s := NewStats(0)
	s.Record(5, true)
	assert.Equal(t, 1, s.Snapshot().Count)
}
