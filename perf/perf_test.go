package perf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestElapsed(t *testing.T) {
	tests := []struct {
		name       string
		start, end Point
		want       float64
	}{
		{
			name:  "whole seconds",
			start: Point{Sec: 10, Nsec: 0},
			end:   Point{Sec: 12, Nsec: 0},
			want:  2.0,
		},
		{
			name:  "sub-second borrow",
			start: Point{Sec: 10, Nsec: 900_000_000},
			end:   Point{Sec: 11, Nsec: 100_000_000},
			want:  0.2,
		},
		{
			name:  "nanosecond resolution",
			start: Point{Sec: 0, Nsec: 0},
			end:   Point{Sec: 0, Nsec: 1500},
			want:  1.5e-6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, Elapsed(tt.start, tt.end), 1e-12)
		})
	}
}

func TestDeltas(t *testing.T) {
	start := Point{Counters: []uint64{100, 2000}}
	end := Point{Counters: []uint64{150, 2600}}
	require.Equal(t, []uint64{50, 600}, Deltas(start, end))
}

func TestDeltasEmpty(t *testing.T) {
	require.Empty(t, Deltas(Point{}, Point{}))
}

// groupReadBuf builds a PERF_FORMAT_GROUP|PERF_FORMAT_ID read buffer.
func groupReadBuf(values ...uint64) []byte {
	buf := make([]byte, 8*(2*len(values)+1))
	binary.LittleEndian.PutUint64(buf, uint64(len(values)))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[8+16*i:], v)
		binary.LittleEndian.PutUint64(buf[16+16*i:], uint64(i+1)) // id, ignored
	}
	return buf
}

func TestDecodeGroupRead(t *testing.T) {
	counts, err := decodeGroupRead(groupReadBuf(123456, 789012), 2)
	require.NoError(t, err)
	require.Equal(t, []uint64{123456, 789012}, counts)
}

func TestDecodeGroupReadMemberMismatch(t *testing.T) {
	_, err := decodeGroupRead(groupReadBuf(1, 2, 3), 2)
	require.Error(t, err)
}

func TestDecodeGroupReadTruncated(t *testing.T) {
	buf := groupReadBuf(123456, 789012)
	_, err := decodeGroupRead(buf[:20], 2)
	require.Error(t, err)

	_, err = decodeGroupRead(buf[:4], 2)
	require.Error(t, err)
}

func TestEmptyGroupSnapshotTimingOnly(t *testing.T) {
	g := &Group{leader: -1}
	require.False(t, g.Complete())
	require.Zero(t, g.NumOpen())

	p, err := g.Snapshot()
	require.NoError(t, err)
	require.Empty(t, p.Counters)
}

func TestSnapshotMonotonic(t *testing.T) {
	g := &Group{leader: -1}
	a, err := g.Snapshot()
	require.NoError(t, err)

	// Burn a little CPU so the process clock advances.
	sink := 0
	for i := 0; i < 1_000_000; i++ {
		sink += i
	}
	_ = sink

	b, err := g.Snapshot()
	require.NoError(t, err)
	require.GreaterOrEqual(t, Elapsed(a, b), 0.0)
}
