package notify_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yelp/chemist/internal/notify"
)

func TestGetReturnsInitial(t *testing.T) {
	v := notify.New(5)
	assert.Equal(t, 5, v.Get())
}

func TestUpdateAppliesPureFunction(t *testing.T) {
	v := notify.New(map[string]int{"a": 1})

	got := v.Update(func(m map[string]int) map[string]int {
		next := make(map[string]int, len(m)+1)
		for k, val := range m {
			next[k] = val
		}
		next["b"] = 2
		return next
	})

	assert.Equal(t, map[string]int{"a": 1, "b": 2}, got)
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, v.Get())
}

func TestSetReplacesValue(t *testing.T) {
	v := notify.New(1)
	v.Set(42)
	assert.Equal(t, 42, v.Get())
}

func TestConcurrentUpdateIsSerialized(t *testing.T) {
	v := notify.New(0)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Update(func(n int) int { return n + 1 })
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, v.Get())
}
