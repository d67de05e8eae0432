package checks

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := newKeyedMutex()

	const goroutines = 50
	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("alice")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}

func TestKeyedMutex_IndependentKeysDoNotBlock(t *testing.T) {
	km := newKeyedMutex()

	unlockA := km.Lock("alice")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := km.Lock("bob")
		unlock()
		close(done)
	}()
	<-done
}

func TestKeyedMutex_ReleasesEntryWhenUnused(t *testing.T) {
	km := newKeyedMutex()

	unlock := km.Lock("alice")
	unlock()

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.locks)
}
