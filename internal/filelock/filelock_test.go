package filelock

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")

	lock, err := Acquire(path)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, path, lock.Path())
	require.NoError(t, lock.Release())
}

func TestAcquireSerializes(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")

	first, err := Acquire(path)
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		released bool
		order    []string
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		second, err := Acquire(path)
		if !assert.NoError(t, err) {
			return
		}
		mu.Lock()
		order = append(order, "second")
		assert.True(t, released, "second holder ran before first released")
		mu.Unlock()
		assert.NoError(t, second.Release())
	}()

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	order = append(order, "first")
	released = true
	mu.Unlock()
	require.NoError(t, first.Release())

	wg.Wait()
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestAcquireMissingDir(t *testing.T) {
	_, err := Acquire(filepath.Join(t.TempDir(), "missing", ".lock"))
	assert.Error(t, err)
}
