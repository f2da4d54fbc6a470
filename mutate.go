package main

import (
	"context"
	"errors"

	"github.com/lachlan2k/hostie/hostsfile"
)

func load(ctx context.Context, p HostsfilePersister) (hostsfile.Table, error) {
	contents, err := p.Read(ctx)
	if err != nil {
		return nil, err
	}
	return hostsfile.Parse(contents), nil
}

// errUnchanged is returned by a mutate callback that made no edit. The backend
// is left as it was, even when its text is not in canonical form.
var errUnchanged = errors.New("table unchanged")

// mutate reads the table, applies fn and writes the result back in a single
// write. Nothing is written when reading or fn fails, when fn returns
// errUnchanged, or when fn leaves the text unchanged.
func mutate(ctx context.Context, p HostsfilePersister, fn func(hostsfile.Table) (hostsfile.Table, error)) error {
	return withLock(ctx, p, func() error {
		contents, err := p.Read(ctx)
		if err != nil {
			return err
		}
		table, err := fn(hostsfile.Parse(contents))
		if errors.Is(err, errUnchanged) {
			return nil
		}
		if err != nil {
			return err
		}
		out := table.String()
		if out == contents {
			return nil
		}
		return p.Write(ctx, out)
	})
}

func withLock(ctx context.Context, p HostsfilePersister, fn func() error) error {
	if l, ok := p.(Locker); ok {
		return l.WithLock(ctx, fn)
	}
	return fn()
}
