package utils

import (
	"sync"
)

/*
PartitionMap splits a job index range evenly over a number of workers with
a maximum imbalance of one item. It drives the batch processing of
independent meshes: every mesh pipeline is pure and owns its inputs, so
partitions never share mutable state.
*/
type PartitionMap struct {
	MaxIndex       int
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of each partition
}

func NewPartitionMap(parallelDegree, maxIndex int) (pm *PartitionMap) {
	if parallelDegree > maxIndex && maxIndex > 0 {
		parallelDegree = maxIndex
	}
	if parallelDegree < 1 {
		parallelDegree = 1
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: parallelDegree,
		Partitions:     make([][2]int, parallelDegree),
	}
	for n := 0; n < parallelDegree; n++ {
		pm.Partitions[n] = pm.split1D(n)
	}
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (iMin, iMax int) {
	iMin, iMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketDimension(bucketNum int) (count int) {
	count = pm.Partitions[bucketNum][1] - pm.Partitions[bucketNum][0]
	return
}

func (pm *PartitionMap) split1D(threadNum int) (bucket [2]int) {
	// Splits the range into ParallelDegree pieces, spreading the
	// remainder over the first buckets
	var (
		nPart            = pm.MaxIndex / pm.ParallelDegree
		remainder        = pm.MaxIndex % pm.ParallelDegree
		startAdd, endAdd int
	)
	if remainder != 0 {
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*nPart + startAdd
	bucket[1] = bucket[0] + nPart + endAdd
	return
}

/*
RunBatch executes work(i) for every i in [0, maxIndex) across
parallelDegree worker goroutines partitioned by a PartitionMap, and
returns the first error encountered in index order. Work items must be
independent of one another.
*/
func RunBatch(parallelDegree, maxIndex int, work func(i int) error) (err error) {
	var (
		pm   = NewPartitionMap(parallelDegree, maxIndex)
		errs = make([]error, maxIndex)
		wg   sync.WaitGroup
	)
	for n := 0; n < pm.ParallelDegree; n++ {
		wg.Add(1)
		go func(bucketNum int) {
			defer wg.Done()
			iMin, iMax := pm.GetBucketRange(bucketNum)
			for i := iMin; i < iMax; i++ {
				errs[i] = work(i)
			}
		}(n)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return
}
