package telemetry_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/packsweep/internal/adapters/telemetry"
)

func TestBatchProcessor_FlushOnSize(t *testing.T) {
	var mu sync.Mutex
	var flushed [][]byte

	bp := telemetry.NewBatchProcessor(8, time.Hour, func(data []byte) {
		mu.Lock()
		defer mu.Unlock()
		flushed = append(flushed, data)
	})
	defer bp.Close()

	_, err := bp.Write([]byte("12345678"))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, flushed, 1)
	assert.Equal(t, []byte("12345678"), flushed[0])
}

func TestBatchProcessor_FlushOnClose(t *testing.T) {
	var mu sync.Mutex
	var flushed [][]byte

	bp := telemetry.NewBatchProcessor(1024, time.Hour, func(data []byte) {
		mu.Lock()
		defer mu.Unlock()
		flushed = append(flushed, data)
	})

	_, err := bp.Write([]byte("partial"))
	require.NoError(t, err)

	mu.Lock()
	assert.Empty(t, flushed, "small write should stay buffered")
	mu.Unlock()

	require.NoError(t, bp.Close())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, flushed, 1)
	assert.Equal(t, []byte("partial"), flushed[0])
}

func TestBatchProcessor_WriteAfterClose(t *testing.T) {
	bp := telemetry.NewBatchProcessor(0, 0, nil)
	require.NoError(t, bp.Close())

	_, err := bp.Write([]byte("late"))
	require.Error(t, err)
}

func TestBatchProcessor_CloseIsIdempotent(t *testing.T) {
	bp := telemetry.NewBatchProcessor(0, 0, nil)
	require.NoError(t, bp.Close())
	require.NoError(t, bp.Close())
}

func TestBatchProcessor_PreservesOrder(t *testing.T) {
	var mu sync.Mutex
	var all []byte

	bp := telemetry.NewBatchProcessor(4, time.Hour, func(data []byte) {
		mu.Lock()
		defer mu.Unlock()
		all = append(all, data...)
	})

	for _, chunk := range []string{"aa", "bb", "cc", "dd", "ee"} {
		_, err := bp.Write([]byte(chunk))
		require.NoError(t, err)
	}
	require.NoError(t, bp.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []byte("aabbccddee"), all)
}
