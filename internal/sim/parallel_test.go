package sim

import (
	"sync/atomic"
	"testing"
)

func TestParallelFor_CoversRange(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		minChunk int
		workers  int
	}{
		{"serial small", 5, 10, 4},
		{"parallel", 100, 1, 4},
		{"single worker", 100, 1, 1},
		{"default workers", 64, 1, 0},
		{"more workers than items", 3, 1, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited int64
			seen := make([]int32, tt.n)

			ParallelFor(tt.n, tt.minChunk, tt.workers, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt64(&visited, 1)
					atomic.AddInt32(&seen[i], 1)
				}
			})

			if visited != int64(tt.n) {
				t.Errorf("expected %d visits, got %d", tt.n, visited)
			}
			for i, c := range seen {
				if c != 1 {
					t.Errorf("index %d visited %d times", i, c)
				}
			}
		})
	}
}

func TestParallelFor_Empty(t *testing.T) {
	called := false
	ParallelFor(0, 1, 4, func(start, end int) {
		if start != end {
			called = true
		}
	})
	if called {
		t.Error("fn should not receive a non-empty range for n=0")
	}
}
