package listresource_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faisalali0159/besofy/internal/listresource"
)

func staticFetch(items []string, err error) listresource.FetchFunc[string] {
	return func(context.Context) ([]string, error) { return items, err }
}

func TestController_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("starts idle", func(t *testing.T) {
		c := listresource.New(staticFetch(nil, nil))
		assert.Equal(t, listresource.Idle, c.Snapshot().State)
	})

	t.Run("populated keeps backend order", func(t *testing.T) {
		c := listresource.New(staticFetch([]string{"c", "a", "b"}, nil))

		require.NoError(t, c.Load(ctx))

		s := c.Snapshot()
		assert.Equal(t, listresource.Populated, s.State)
		assert.Equal(t, []string{"c", "a", "b"}, s.Items)
		assert.False(t, s.CanRetry)
		assert.Empty(t, s.Err)
	})

	t.Run("empty result is the empty state with no items", func(t *testing.T) {
		c := listresource.New(staticFetch([]string{}, nil))

		require.NoError(t, c.Load(ctx))

		s := c.Snapshot()
		assert.Equal(t, listresource.Empty, s.State)
		assert.Empty(t, s.Items)
	})

	t.Run("failure shows one retry affordance and no items", func(t *testing.T) {
		calls := 0
		c := listresource.New(func(context.Context) ([]string, error) {
			calls++
			if calls == 1 {
				return []string{"stale"}, errors.New("boom")
			}
			return []string{"fresh"}, nil
		})

		err := c.Load(ctx)
		require.Error(t, err)

		s := c.Snapshot()
		assert.Equal(t, listresource.Error, s.State)
		assert.True(t, s.CanRetry)
		assert.Empty(t, s.Items)
		assert.Equal(t, listresource.DefaultErrorMessage, s.Err)

		require.NoError(t, c.Retry(ctx))
		s = c.Snapshot()
		assert.Equal(t, listresource.Populated, s.State)
		assert.Equal(t, []string{"fresh"}, s.Items)
		assert.Equal(t, 2, calls)
	})

	t.Run("custom error message", func(t *testing.T) {
		c := listresource.New(staticFetch(nil, errors.New("x")),
			listresource.WithErrorMessage[string]("Could not load"))

		_ = c.Load(ctx)
		assert.Equal(t, "Could not load", c.Snapshot().Err)
	})

	t.Run("snapshot items are a copy", func(t *testing.T) {
		c := listresource.New(staticFetch([]string{"a"}, nil))
		require.NoError(t, c.Load(ctx))

		s := c.Snapshot()
		s.Items[0] = "mutated"
		assert.Equal(t, []string{"a"}, c.Snapshot().Items)
	})

	t.Run("notifies each transition", func(t *testing.T) {
		var states []listresource.State
		c := listresource.New(staticFetch([]string{"a"}, nil),
			listresource.WithOnChange(func(s listresource.Snapshot[string]) {
				states = append(states, s.State)
			}))

		require.NoError(t, c.Load(ctx))
		assert.Equal(t, []listresource.State{listresource.Loading, listresource.Populated}, states)
	})
}

func TestController_PopulatedAndEmptyNeverCoRender(t *testing.T) {
	for n := 0; n < 5; n++ {
		items := make([]string, n)
		for i := range items {
			items[i] = string(rune('a' + i))
		}
		c := listresource.New(staticFetch(items, nil))
		require.NoError(t, c.Load(context.Background()))

		s := c.Snapshot()
		if n == 0 {
			assert.Equal(t, listresource.Empty, s.State)
			assert.Empty(t, s.Items)
		} else {
			assert.Equal(t, listresource.Populated, s.State)
			assert.Len(t, s.Items, n)
		}
	}
}

func TestController_Close(t *testing.T) {
	t.Run("cancels the in-flight fetch and discards its result", func(t *testing.T) {
		started := make(chan struct{})
		c := listresource.New(func(ctx context.Context) ([]string, error) {
			close(started)
			<-ctx.Done()
			return []string{"late"}, ctx.Err()
		})

		done := make(chan error, 1)
		go func() { done <- c.Load(context.Background()) }()

		<-started
		c.Close()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, listresource.ErrSuperseded)
		case <-time.After(2 * time.Second):
			t.Fatal("fetch was not cancelled")
		}
		assert.Equal(t, listresource.Loading, c.Snapshot().State)
		assert.Empty(t, c.Snapshot().Items)
	})

	t.Run("load after close fails", func(t *testing.T) {
		c := listresource.New(staticFetch([]string{"a"}, nil))
		c.Close()
		c.Close()

		assert.ErrorIs(t, c.Load(context.Background()), listresource.ErrClosed)
	})
}

func TestController_NewerLoadWins(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	call := 0

	c := listresource.New(func(ctx context.Context) ([]string, error) {
		mu.Lock()
		call++
		n := call
		mu.Unlock()

		if n == 1 {
			<-release
			return []string{"old"}, nil
		}
		return []string{"new"}, nil
	})

	first := make(chan error, 1)
	go func() { first <- c.Load(context.Background()) }()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return call == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, c.Load(context.Background()))
	close(release)

	assert.ErrorIs(t, <-first, listresource.ErrSuperseded)
	assert.Equal(t, []string{"new"}, c.Snapshot().Items)
}

func TestController_CallerContextCancelsFetch(t *testing.T) {
	c := listresource.New(func(ctx context.Context) ([]string, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Load(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, listresource.Error, c.Snapshot().State)
}
