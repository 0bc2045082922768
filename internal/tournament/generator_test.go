package tournament

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorRoundRobinPairing(t *testing.T) {
	g := NewGenerator(2, 4)

	var got []Work
	for {
		w, ok := g.Next()
		if !ok {
			break
		}
		got = append(got, w)
	}
	require.Len(t, got, 4)

	wantOpenings := []int{0, 0, 1, 1}
	wantFirst := []int{0, 1, 0, 1}
	for i, w := range got {
		assert.Equal(t, i, w.GameID)
		assert.Equal(t, wantFirst[i], w.FirstPlayerIdx, "game %d", i)
		assert.Equal(t, 1-wantFirst[i], w.SecondPlayerIdx, "game %d", i)
		assert.Equal(t, wantOpenings[i], w.OpeningIdx, "game %d", i)
	}
}

func TestGeneratorStopsAtMaxGames(t *testing.T) {
	g := NewGenerator(1, 2)
	_, ok := g.Next()
	assert.True(t, ok)
	_, ok = g.Next()
	assert.True(t, ok)
	_, ok = g.Next()
	assert.False(t, ok)
}

func TestGeneratorUnboundedWithoutMaxGames(t *testing.T) {
	g := NewGenerator(1, 0)
	for i := 0; i < 100; i++ {
		w, ok := g.Next()
		require.True(t, ok)
		assert.Equal(t, i, w.GameID)
	}
}

func TestGeneratorMonotoneUnderConcurrency(t *testing.T) {
	g := NewGenerator(3, 500)

	var mu sync.Mutex
	seen := make(map[int]bool)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := -1
			for {
				w, ok := g.Next()
				if !ok {
					return
				}
				assert.Greater(t, w.GameID, last, "game ids must increase within one goroutine")
				last = w.GameID
				mu.Lock()
				dup := seen[w.GameID]
				seen[w.GameID] = true
				mu.Unlock()
				assert.False(t, dup, "game id %d emitted twice", w.GameID)
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 500)
}
