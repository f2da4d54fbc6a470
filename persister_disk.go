package main

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"
	"github.com/rs/zerolog/log"
)

const (
	lockRetryDelay = 50 * time.Millisecond
	lockTimeout    = 5 * time.Second
)

var errLockNotAcquired = errors.New("lock not acquired")

type OnDiskHostsfilePersister struct {
	path   string
	atomic bool
	lock   *flock.Flock
}

func NewOnDiskHostsfilePersister(path string, atomicWrites, lock bool) *OnDiskHostsfilePersister {
	p := &OnDiskHostsfilePersister{path: path, atomic: atomicWrites}
	if lock {
		p.lock = flock.New(path + ".lock")
	}
	return p
}

func (p *OnDiskHostsfilePersister) Read(ctx context.Context) (string, error) {
	log.Debug().Str("path", p.path).Msg("reading hosts file")
	data, err := os.ReadFile(p.path)
	if err != nil {
		return "", newIOError("read", p.path, err)
	}
	return string(data), nil
}

func (p *OnDiskHostsfilePersister) Write(ctx context.Context, contents string) error {
	log.Debug().Str("path", p.path).Bool("atomic", p.atomic).Int("bytes", len(contents)).Msg("writing hosts file")
	var err error
	if p.atomic {
		err = atomic.WriteFile(p.path, strings.NewReader(contents))
	} else {
		err = os.WriteFile(p.path, []byte(contents), 0644)
	}
	return newIOError("write", p.path, err)
}

// WithLock runs fn while holding an advisory lock on the sidecar lock file.
// Without locking enabled fn runs directly.
func (p *OnDiskHostsfilePersister) WithLock(ctx context.Context, fn func() error) error {
	if p.lock == nil {
		return fn()
	}
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	ok, err := p.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return newIOError("lock", p.lock.Path(), err)
	}
	if !ok {
		return newIOError("lock", p.lock.Path(), errLockNotAcquired)
	}
	defer func() {
		if err := p.lock.Unlock(); err != nil {
			log.Warn().Err(err).Str("path", p.lock.Path()).Msg("failed to release lock")
		}
	}()
	return fn()
}
