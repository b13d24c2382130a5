package asyncx

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCell_SetOnce(t *testing.T) {
	c := NewCell[int]()
	assert.False(t, c.Available())
	c.Set(3)
	assert.True(t, c.Available())
	assert.Equal(t, 3, c.Value())

	assert.Panics(t, func() {
		c.Set(3)
	}, "a second Set must never be silently accepted, even with an equal value")
	assert.Equal(t, 3, c.Value(), "the first value must survive the rejected write")
}

func TestCell_Concrete(t *testing.T) {
	c := NewCellOf("done")
	assert.True(t, c.Available())
	assert.Equal(t, "done", c.Value())
	select {
	case <-c.Done():
	default:
		t.Fatal("Done should be closed for a concrete cell")
	}
}

func TestCell_ValueBeforeSet(t *testing.T) {
	c := NewCell[int]()
	assert.Panics(t, func() {
		_ = c.Value()
	}, "reading an empty cell is a contract violation")
}

func TestCell_AndThen_BeforeSet(t *testing.T) {
	var (
		c     = NewCell[int]()
		calls atomic.Int32
	)
	c.AndThen(func() {
		calls.Add(1)
	})
	assert.Equal(t, int32(0), calls.Load(), "continuation must not run before Set")
	c.Set(1)
	assert.Equal(t, int32(1), calls.Load(), "Set should run the continuation exactly once")
}

func TestCell_AndThen_AfterSet(t *testing.T) {
	var (
		c     = NewCellOf(1)
		calls atomic.Int32
	)
	c.AndThen(func() {
		calls.Add(1)
	})
	assert.Equal(t, int32(1), calls.Load(), "continuation on a concrete cell should run inline")
}

func TestCell_ConcurrentReaders(t *testing.T) {
	var (
		c  = NewCell[int]()
		wg sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-c.Done()
			assert.Equal(t, 11, c.Value())
		}()
	}
	time.Sleep(50 * time.Millisecond)
	c.Set(11)
	wg.Wait()
}

func TestCell_ConcurrentRegistration(t *testing.T) {
	var (
		c     = NewCell[int]()
		calls atomic.Int32
		wg    sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.AndThen(func() {
				calls.Add(1)
			})
		}()
	}
	go func() {
		time.Sleep(20 * time.Millisecond)
		c.Set(1)
	}()
	wg.Wait()
	<-c.Done()
	assert.Eventually(t, func() bool {
		return calls.Load() == 8
	}, time.Second, 5*time.Millisecond, "every registered continuation should run exactly once")
}
