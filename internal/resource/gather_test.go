package resource

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGather_DropsFailuresKeepsOrder(t *testing.T) {
	keys := []int{1, 2, 3, 4, 5}
	settled := Gather(context.Background(), keys, 0, func(_ context.Context, k int) (string, error) {
		if k%2 == 0 {
			return "", fmt.Errorf("item %d unavailable", k)
		}
		return fmt.Sprintf("v%d", k), nil
	})

	require.Len(t, settled.Outcomes, 5)
	require.Equal(t, []string{"v1", "v3", "v5"}, settled.Values())
	require.Len(t, settled.Failures(), 2)
	require.Equal(t, 2, settled.Failures()[0].Key)
	require.True(t, settled.Partial())
	require.False(t, settled.AllFailed())
}

func TestGather_PanicIsolated(t *testing.T) {
	settled := Gather(context.Background(), []string{"a", "b", "c"}, 0, func(_ context.Context, k string) (int, error) {
		if k == "b" {
			panic("malformed response")
		}
		return len(k), nil
	})
	require.Equal(t, []int{1, 1}, settled.Values())
	require.Len(t, settled.Failures(), 1)
	require.Contains(t, settled.Failures()[0].Err.Error(), "malformed response")
}

func TestGather_NMinusK(t *testing.T) {
	for n := 0; n <= 6; n++ {
		for k := 0; k <= n; k++ {
			keys := make([]int, n)
			for i := range keys {
				keys[i] = i
			}
			settled := Gather(context.Background(), keys, 2, func(_ context.Context, i int) (int, error) {
				if i < k {
					return 0, fmt.Errorf("fail %d", i)
				}
				return i, nil
			})
			require.Len(t, settled.Values(), n-k, "n=%d k=%d", n, k)
			require.Equal(t, n > 0 && k == n, settled.AllFailed())
		}
	}
}

func TestGather_RespectsLimit(t *testing.T) {
	var running, peak int32
	keys := make([]int, 12)
	Gather(context.Background(), keys, 3, func(context.Context, int) (int, error) {
		cur := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return 0, nil
	})
	require.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestGather_CancelledContextFailsEveryBranch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	settled := Gather(ctx, []int{1, 2}, 0, func(context.Context, int) (int, error) { return 1, nil })
	require.True(t, settled.AllFailed())
}
