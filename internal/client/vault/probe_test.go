package vault

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePicker struct {
	path string
	err  error
}

func (p *fakePicker) PickDirectory(context.Context, string) (string, error) {
	return p.path, p.err
}

func TestSupportsDirectoryAccess(t *testing.T) {
	assert.False(t, NewProbe(nil).SupportsDirectoryAccess())
	assert.True(t, NewProbe(&fakePicker{}).SupportsDirectoryAccess())
}

func TestRequestDirectoryAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("returns handle for chosen directory", func(t *testing.T) {
		dir := t.TempDir()
		handle := NewProbe(&fakePicker{path: dir}).RequestDirectoryAccess(ctx)
		if assert.NotNil(t, handle) {
			assert.Equal(t, dir, handle.Path)
		}
	})

	t.Run("nil on cancel", func(t *testing.T) {
		assert.Nil(t, NewProbe(&fakePicker{path: ""}).RequestDirectoryAccess(ctx))
	})

	t.Run("nil on picker failure", func(t *testing.T) {
		p := &fakePicker{err: errors.New("boom")}
		assert.Nil(t, NewProbe(p).RequestDirectoryAccess(ctx))
	})

	t.Run("nil when capability absent", func(t *testing.T) {
		assert.Nil(t, NewProbe(nil).RequestDirectoryAccess(ctx))
	})
}
