package keylock

import (
	"sync"
	"testing"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	k := New()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k.Lock("emp-1")
			counter++
			k.Unlock("emp-1")
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("counter = %d, want %d", counter, workers)
	}
}

func TestKeyLock_IndependentKeys(t *testing.T) {
	k := New()

	k.Lock("emp-1")
	done := make(chan struct{})
	go func() {
		// A different key must not block.
		k.Lock("emp-2")
		k.Unlock("emp-2")
		close(done)
	}()
	<-done
	k.Unlock("emp-1")
}

func TestKeyLock_EntriesAreReleased(t *testing.T) {
	k := New()

	k.Lock("emp-1")
	k.Unlock("emp-1")

	k.mu.Lock()
	defer k.mu.Unlock()
	if len(k.locks) != 0 {
		t.Errorf("locks map has %d entries after release, want 0", len(k.locks))
	}
}
