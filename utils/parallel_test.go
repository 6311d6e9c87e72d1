package utils

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Even split
		pm := NewPartitionMap(4, 8)
		assert.Equal(t, [][2]int{{0, 2}, {2, 4}, {4, 6}, {6, 8}}, pm.Partitions)
		assert.Equal(t, 2, pm.GetBucketDimension(1))
	}
	{ // Remainder spread over the first buckets
		pm := NewPartitionMap(3, 10)
		total := 0
		prev := 0
		for n := 0; n < pm.ParallelDegree; n++ {
			iMin, iMax := pm.GetBucketRange(n)
			assert.Equal(t, prev, iMin)
			prev = iMax
			total += pm.GetBucketDimension(n)
		}
		assert.Equal(t, 10, total)
		assert.Equal(t, 4, pm.GetBucketDimension(0))
	}
	{ // Degree clamps to the index count
		pm := NewPartitionMap(16, 3)
		assert.Equal(t, 3, pm.ParallelDegree)
		for n := 0; n < 3; n++ {
			assert.Equal(t, 1, pm.GetBucketDimension(n))
		}
	}
	{ // Degree never drops below one
		pm := NewPartitionMap(0, 5)
		assert.Equal(t, 1, pm.ParallelDegree)
		assert.Equal(t, 5, pm.GetBucketDimension(0))
	}
}

func TestRunBatchCoversEveryIndex(t *testing.T) {
	var (
		mu   sync.Mutex
		seen = make(map[int]int)
	)
	err := RunBatch(4, 25, func(i int) error {
		mu.Lock()
		seen[i]++
		mu.Unlock()
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 25, len(seen))
	for i := 0; i < 25; i++ {
		assert.Equal(t, 1, seen[i], "index %d", i)
	}
}

func TestRunBatchReturnsFirstErrorInIndexOrder(t *testing.T) {
	err := RunBatch(4, 10, func(i int) error {
		if i == 3 || i == 7 {
			return fmt.Errorf("item %d failed", i)
		}
		return nil
	})
	assert.EqualError(t, err, "item 3 failed")
}

func TestRunBatchEmpty(t *testing.T) {
	assert.NoError(t, RunBatch(4, 0, func(i int) error {
		t.Error("work called for an empty batch")
		return nil
	}))
}
