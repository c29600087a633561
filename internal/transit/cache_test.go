package transit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheHitAvoidsRecompute(t *testing.T) {
	var calls int32
	cache := NewCache(func(origin string, instant time.Time) (ReachabilityTable, error) {
		atomic.AddInt32(&calls, 1)
		return ReachabilityTable{origin: 0}, nil
	})

	key := CacheKey{Origin: "A", Bucket: BucketHour(time.Now())}

	_, err := cache.Get(key)
	require.NoError(t, err)
	_, err = cache.Get(key)
	require.NoError(t, err)

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestCacheMissOnDifferentKeyRecomputes(t *testing.T) {
	var calls int32
	cache := NewCache(func(origin string, instant time.Time) (ReachabilityTable, error) {
		atomic.AddInt32(&calls, 1)
		return ReachabilityTable{origin: 0}, nil
	})

	now := time.Now()
	_, err := cache.Get(CacheKey{Origin: "A", Bucket: BucketHour(now)})
	require.NoError(t, err)
	_, err = cache.Get(CacheKey{Origin: "B", Bucket: BucketHour(now)})
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestCacheConcurrentReadsOfSameKey(t *testing.T) {
	var calls int32
	cache := NewCache(func(origin string, instant time.Time) (ReachabilityTable, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(10 * time.Millisecond)
		return ReachabilityTable{origin: 0}, nil
	})

	key := CacheKey{Origin: "A", Bucket: BucketHour(time.Now())}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Get(key)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestCachePoisonRecoversFromPanic(t *testing.T) {
	cache := NewCache(func(origin string, instant time.Time) (ReachabilityTable, error) {
		panic("boom")
	})

	_, err := cache.Get(CacheKey{Origin: "A", Bucket: BucketHour(time.Now())})
	require.Error(t, err)
	var poisonErr *PoisonError
	assert.ErrorAs(t, err, &poisonErr)
}

func TestBucketHourTruncates(t *testing.T) {
	instant := time.Date(2024, time.January, 1, 9, 37, 12, 0, time.UTC)
	bucket := BucketHour(instant)
	assert.Equal(t, time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC), bucket)
}
