package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClickHouseEventRepository_NextIDIsMonotonic(t *testing.T) {
	repo := &ClickHouseEventRepository{}
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	var (
		mu  sync.Mutex
		ids = make(map[int64]struct{})
		wg  sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := repo.nextID(now)
			mu.Lock()
			ids[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, ids, 50)
	assert.Greater(t, repo.nextID(now.Add(-time.Hour)), now.UnixNano())
}
