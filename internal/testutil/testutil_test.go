package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStepClock_AdvancesPerRead(t *testing.T) {
	clock := NewStepClock(10 * time.Millisecond)

	t0 := clock.Now()
	t1 := clock.Now()
	t2 := clock.Now()

	assert.Equal(t, 10*time.Millisecond, t1.Sub(t0))
	assert.Equal(t, 20*time.Millisecond, t2.Sub(t0))
	assert.Equal(t, 3, clock.Reads())
}

func TestStepClock_Advance(t *testing.T) {
	clock := NewStepClock(0)

	t0 := clock.Now()
	clock.Advance(time.Second)
	assert.Equal(t, time.Second, clock.Now().Sub(t0))
	assert.Equal(t, 2, clock.Reads(), "Advance does not count as a read")
}

func TestStepClock_ConcurrentReads(t *testing.T) {
	clock := NewStepClock(time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clock.Now()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, clock.Reads())
}

func TestSequenceIDGenerator(t *testing.T) {
	gen := NewSequenceIDGenerator("")
	assert.Equal(t, "calc-0001", gen.Generate())
	assert.Equal(t, "calc-0002", gen.Generate())

	custom := NewSequenceIDGenerator("run")
	assert.Equal(t, "run-0001", custom.Generate())
}
