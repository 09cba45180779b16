package mainloop

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoalescerMergesBurstIntoSingleTask(t *testing.T) {
	queue := make([]func(), 0, 8)
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) }, 0)

	value := 0
	for i := 1; i <= 5; i++ {
		v := i
		c.Post("resize", func() { value = v })
	}

	require.Len(t, queue, 1)
	assert.Equal(t, 1, c.Pending())
	queue[0]()

	assert.Equal(t, 5, value, "latest callback should run")
	assert.Equal(t, 0, c.Pending())
}

func TestCoalescerKeysAreIndependent(t *testing.T) {
	queue := make([]func(), 0, 8)
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) }, 0)

	var ran []string
	c.Post("resize", func() { ran = append(ran, "resize") })
	c.Post("repaint", func() { ran = append(ran, "repaint") })
	require.Len(t, queue, 2)

	for _, fn := range queue {
		fn()
	}
	assert.ElementsMatch(t, []string{"resize", "repaint"}, ran)
}

func TestCoalescerDelayHoldsBurstOpen(t *testing.T) {
	var mu sync.Mutex
	var scheduled []func()
	c := NewCoalescer(func(fn func()) {
		mu.Lock()
		scheduled = append(scheduled, fn)
		mu.Unlock()
	}, 20*time.Millisecond)

	value := 0
	c.Post("resize", func() { value = 1 })
	c.Post("resize", func() { value = 2 })

	mu.Lock()
	assert.Empty(t, scheduled)
	mu.Unlock()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(scheduled) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	fn := scheduled[0]
	mu.Unlock()
	fn()
	assert.Equal(t, 2, value)
}

func TestCoalescerDropsWorkAfterDestroy(t *testing.T) {
	queue := make([]func(), 0, 4)
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) }, 0)

	ran := false
	c.Post("resize", func() { ran = true })
	c.Destroy()

	require.Len(t, queue, 1, "one callback queued before destroy")
	queue[0]()
	assert.False(t, ran, "queued work should be dropped after destroy")

	c.Post("resize", func() { ran = true })
	assert.Len(t, queue, 1, "no new callback after destroy")
}

func TestNewCoalescerPanicsOnNilPost(t *testing.T) {
	assert.Panics(t, func() {
		_ = NewCoalescer(nil, 0)
	})
}
