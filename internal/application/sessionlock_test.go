package application

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionLocks_SerialisesSameID(t *testing.T) {
	locks := newSessionLocks()

	unlock := locks.lock("a")

	acquired := make(chan struct{})
	go func() {
		release := locks.lock("a")
		close(acquired)
		release()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock on the same ID acquired while first is held")
	case <-time.After(20 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second lock never acquired")
	}
}

func TestSessionLocks_IndependentIDs(t *testing.T) {
	locks := newSessionLocks()

	unlockA := locks.lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		locks.lock("b")()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different ID blocked")
	}
}

func TestSessionLocks_EntriesReleased(t *testing.T) {
	locks := newSessionLocks()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.lock("shared")()
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, locks.size())
}
