package cli

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/deduce/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReloader struct {
	events  chan string
	mu      sync.Mutex
	reloads int
	fail    bool
}

func (f *fakeReloader) Watch(ctx context.Context) (<-chan string, error) {
	return f.events, nil
}

func (f *fakeReloader) Reload(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reloads++
	if f.fail {
		return errors.New("bad yaml")
	}
	return nil
}

func (f *fakeReloader) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reloads
}

func TestWatchCatalog_ReloadsOnChange(t *testing.T) {
	settleDelay = 0
	f := &fakeReloader{events: make(chan string)}
	var out bytes.Buffer

	done := make(chan error, 1)
	go func() {
		done <- WatchCatalog(context.Background(), f, &out, logging.NewNop())
	}()

	f.events <- "rules.yaml"
	f.events <- "rules.yaml"
	close(f.events)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not exit after channel close")
	}
	assert.Equal(t, 2, f.count())
	assert.Contains(t, out.String(), "Catalog reloaded after change in 'rules.yaml'.")
}

func TestWatchCatalog_KeepsRunningOnFailure(t *testing.T) {
	settleDelay = 0
	f := &fakeReloader{events: make(chan string), fail: true}
	var out bytes.Buffer

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- WatchCatalog(ctx, f, &out, logging.NewNop())
	}()

	f.events <- "rules.yaml"
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not stop on cancel")
	}
	assert.Equal(t, 1, f.count())
	assert.Contains(t, out.String(), "keeping previous catalog")
}

func TestWatchCatalog_Unsupported(t *testing.T) {
	app := newMemoryApp(t)
	err := WatchCatalog(context.Background(), app.Engine, &bytes.Buffer{}, logging.NewNop())
	assert.Error(t, err)
}
