// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package responses

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nyaliza/nyaliza-tui/internal/logging"
)

func TestWatcher_ReloadsAfterExternalWrite(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	store, path := newFileStore(t, ptr("にゃ\n"))
	ctx := context.Background()
	store.Load(ctx)

	changed := make(chan struct{}, 16)
	w, err := NewWatcher(path, 10*time.Millisecond, func() {
		changed <- struct{}{}
	}, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Close()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("ゴロゴロ\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	_, err = store.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"にゃ", "ゴロゴロ"}, store.Responses())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "cat_responses.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	var calls atomic.Int32
	w, err := NewWatcher(path, 0, func() { calls.Add(1) }, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, w.Close())

	assert.Zero(t, calls.Load())
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := filepath.Join(t.TempDir(), "cat_responses.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	var calls atomic.Int32
	w, err := NewWatcher(path, 300*time.Millisecond, func() { calls.Add(1) }, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, w.Start())

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte("にゃ\n"), 0644))
	}
	time.Sleep(150 * time.Millisecond)
	require.NoError(t, w.Close())

	// One immediate notification, the rest folded into a pending one
	// that Close cancelled.
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_CloseWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	w, err := NewWatcher(filepath.Join(t.TempDir(), "x.txt"), time.Second, nil, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "second close is a no-op")
}

func TestWatcher_MissingDirectory(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	w, err := NewWatcher(filepath.Join(t.TempDir(), "gone", "x.txt"), time.Second, nil, logging.Discard())
	require.NoError(t, err)
	require.Error(t, w.Start())
	require.NoError(t, w.Close())
}
