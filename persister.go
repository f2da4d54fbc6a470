package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	pkgerr "github.com/pkg/errors"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

type HostsfilePersister interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, contents string) error
}

// Locker is implemented by persisters that can hold a lock for a whole
// read-modify-write cycle.
type Locker interface {
	WithLock(ctx context.Context, fn func() error) error
}

type IOErrorKind int

const (
	OtherIOError IOErrorKind = iota
	NotFound
	PermissionDenied
)

func (k IOErrorKind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case PermissionDenied:
		return "permission denied"
	}
	return "other"
}

// IOError is a read or write failure against the hosts backend.
type IOError struct {
	Op     string
	Target string
	Kind   IOErrorKind
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error: %s %s: %v", e.Op, e.Target, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) StackTrace() pkgerr.StackTrace {
	var st interface{ StackTrace() pkgerr.StackTrace }
	if errors.As(e.Err, &st) {
		return st.StackTrace()
	}
	return nil
}

func newIOError(op, target string, err error) error {
	if err == nil {
		return nil
	}
	kind := OtherIOError
	switch {
	case errors.Is(err, fs.ErrNotExist), apierrors.IsNotFound(err):
		kind = NotFound
	case errors.Is(err, fs.ErrPermission), apierrors.IsForbidden(err), apierrors.IsUnauthorized(err):
		kind = PermissionDenied
	}
	return &IOError{Op: op, Target: target, Kind: kind, Err: pkgerr.WithStack(err)}
}

func ioErrorKind(err error) (IOErrorKind, bool) {
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return ioErr.Kind, true
	}
	return OtherIOError, false
}

func newPersister(cfg Config) (HostsfilePersister, error) {
	switch cfg.Backend {
	case backendDisk:
		return NewOnDiskHostsfilePersister(cfg.HostsFile, cfg.Atomic, cfg.Lock), nil
	case backendConfigMap:
		if cfg.ConfigMap.Namespace == "" || cfg.ConfigMap.Name == "" {
			return nil, errors.New("the configmap backend needs a namespace and a name")
		}
		p, err := NewConfigMapHostsfilePersister(cfg.ConfigMap.Namespace, cfg.ConfigMap.Name, cfg.ConfigMap.Key)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown backend %q, supported backends are: %s, %s", cfg.Backend, backendDisk, backendConfigMap)
}
