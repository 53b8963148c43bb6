package randomizer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntnStaysInRange(t *testing.T) {
	r := New()
	for i := 0; i < 1000; i++ {
		v := r.Intn(5)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 5)
	}
}

func TestNewSeededIsDeterministic(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestIntnIsSafeForConcurrentUse(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				_ = r.Intn(10)
			}
		}()
	}
	wg.Wait()
}
