// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/juju/fslock"
)

// Unlocker releases a lock obtained via Lock
type Unlocker func()

// Lock blocks until the advisory lock on lockFilePath is held or ctx is done.
// If the lock cannot be obtained immediately, a message is logged.
//
// The lock is automatically released if the process ends prematurely.
func Lock(ctx context.Context, lockFilePath string) (Unlocker, error) {
	if err := EnsureDirs(filepath.Dir(lockFilePath)); err != nil {
		return nil, err
	}

	lock := fslock.New(lockFilePath)
	if err := lock.TryLock(); errors.Is(err, fslock.ErrLocked) {
		slog.Info("Waiting for workspace lock... " + lockFilePath)
		if err := waitForLock(ctx, lock); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return func() {
		if err := lock.Unlock(); err != nil {
			slog.Warn("failure while releasing workspace lock", "file", lockFilePath, "err", err.Error())
		}
	}, nil
}

// WithLock performs an action guarded by a lockfile
func WithLock(ctx context.Context, lockFilePath string, action func() error) error {
	unlock, err := Lock(ctx, lockFilePath)
	if err != nil {
		return err
	}
	defer unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return action()
	}
}

// waitForLock is needed because fslock doesn't provide a method that works with contexts
func waitForLock(ctx context.Context, lock *fslock.Lock) error {
	for {
		if err := lock.TryLock(); err == nil {
			return nil
		} else if !errors.Is(err, fslock.ErrLocked) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}
