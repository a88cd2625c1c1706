package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangtien07/AI-Tool-server/internal/common"
)

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("counter", 1)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = r.Register("counter", 2)
	require.NoError(t, err)
	assert.False(t, isNew)

	v, exists := r.Get("counter")
	assert.True(t, exists)
	assert.Equal(t, 2, v)

	_, exists = r.Get("missing")
	assert.False(t, exists)
}

func TestRegisterEmptyName(t *testing.T) {
	r := NewRegistry[string]()
	_, err := r.Register("", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrRequiredField))
}

func TestGetOrCreate(t *testing.T) {
	r := NewRegistry[string]()

	v, err := r.GetOrCreate("a", func() (string, error) { return "created", nil })
	require.NoError(t, err)
	assert.Equal(t, "created", v)

	// Lần thứ hai trả về item đã tồn tại, creator không được gọi
	v, err = r.GetOrCreate("a", func() (string, error) { return "other", nil })
	require.NoError(t, err)
	assert.Equal(t, "created", v)
}

func TestUpdateMissing(t *testing.T) {
	r := NewRegistry[int]()
	err := r.Update("missing", func(v int) (int, error) { return v + 1, nil })
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestClearWithCleanup(t *testing.T) {
	r := NewRegistry[int]()
	_, _ = r.Register("a", 1)

	cleaned := false
	deleted, err := r.Clear("a", func(int) error {
		cleaned = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.True(t, cleaned)

	deleted, err = r.Clear("a", nil)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestConcurrentRegister(t *testing.T) {
	r := NewRegistry[int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = r.Register("shared", n)
		}(i)
	}
	wg.Wait()

	count, err := r.ClearAll(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
