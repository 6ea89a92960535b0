package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mcncl/jsonfizz/internal/errors"
)

const waitFor = 5 * time.Second

func waitRender(t *testing.T, renders <-chan struct{}) {
	t.Helper()
	select {
	case <-renders:
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for a render")
	}
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for the watch loop to stop")
		return nil
	}
}

func TestRun_RerendersOnWriteAndStopsOnRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"v":1}`), 0o644))

	renders := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), path, zap.NewNop(), func() error {
			renders <- struct{}{}
			return nil
		})
	}()

	waitRender(t, renders)

	require.NoError(t, os.WriteFile(path, []byte(`{"v":2}`), 0o644))
	waitRender(t, renders)

	require.NoError(t, os.Remove(path))
	assert.NoError(t, waitDone(t, done))
}

func TestRun_SurvivesSaveByRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"v":1}`), 0o644))

	contents := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), path, zap.NewNop(), func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			contents <- string(data)
			return nil
		})
	}()

	next := func() string {
		t.Helper()
		select {
		case c := <-contents:
			return c
		case <-time.After(waitFor):
			t.Fatal("timed out waiting for a render")
			return ""
		}
	}
	assert.Equal(t, `{"v":1}`, next())

	tmp := filepath.Join(dir, "doc.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(`{"v":2}`), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	for got := next(); got != `{"v":2}`; got = next() {
	}

	select {
	case err := <-done:
		t.Fatalf("watch stopped after an atomic save: %v", err)
	default:
	}

	require.NoError(t, os.WriteFile(path, []byte(`{"v":3}`), 0o644))
	for got := next(); got != `{"v":3}`; got = next() {
	}

	require.NoError(t, os.Remove(path))
	assert.NoError(t, waitDone(t, done))
}

func TestRun_IgnoresOtherFilesInDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	renders := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, path, nil, func() error {
			renders <- struct{}{}
			return nil
		})
	}()
	waitRender(t, renders)

	other := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(other, []byte(`{}`), 0o644))
	require.NoError(t, os.Remove(other))

	select {
	case <-renders:
		t.Fatal("a change to another file triggered a render")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	assert.NoError(t, waitDone(t, done))
}

func TestRun_StopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	renders := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, path, nil, func() error {
			renders <- struct{}{}
			return nil
		})
	}()

	waitRender(t, renders)
	cancel()
	assert.NoError(t, waitDone(t, done))
}

func TestRun_RenderErrorsAreLogged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))

	core, logs := observer.New(zapcore.InfoLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	renders := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, path, zap.New(core), func() error {
			renders <- struct{}{}
			return fmt.Errorf("bad document")
		})
	}()

	waitRender(t, renders)
	require.NoError(t, os.WriteFile(path, []byte(`{"fixed":true}`), 0o644))
	waitRender(t, renders)

	cancel()
	require.NoError(t, waitDone(t, done))
	assert.GreaterOrEqual(t, logs.FilterMessage("render failed").Len(), 2)
	assert.Equal(t, 1, logs.FilterMessage("watching for changes").Len())
}

func TestRun_MissingFile(t *testing.T) {
	called := false
	err := Run(context.Background(), filepath.Join(t.TempDir(), "missing.json"), nil, func() error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeWatch, errors.TypeOf(err))
	assert.False(t, called)
}
