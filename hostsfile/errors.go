package hostsfile

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateHostname = errors.New("entry already exists")
	ErrEntryNotFound     = errors.New("entry does not exist")
	ErrProtectedEntry    = errors.New("cannot remove protected entry")
	ErrInvalidEntry      = errors.New("invalid entry")
)

type DuplicateHostnameError struct {
	Hostname Hostname
}

func (e *DuplicateHostnameError) Error() string {
	return fmt.Sprintf("%v: %s", ErrDuplicateHostname, e.Hostname)
}

func (e *DuplicateHostnameError) Unwrap() error { return ErrDuplicateHostname }

type EntryNotFoundError struct {
	Address  Address
	Hostname Hostname
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrEntryNotFound, e.Address, e.Hostname)
}

func (e *EntryNotFoundError) Unwrap() error { return ErrEntryNotFound }

type ProtectedEntryError struct {
	Hostname Hostname
}

func (e *ProtectedEntryError) Error() string {
	return fmt.Sprintf("%v: %s", ErrProtectedEntry, e.Hostname)
}

func (e *ProtectedEntryError) Unwrap() error { return ErrProtectedEntry }

type InvalidEntryError struct {
	Address  Address
	Hostname Hostname
	Reason   string
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("%v %q %q: %s", ErrInvalidEntry, e.Address, e.Hostname, e.Reason)
}

func (e *InvalidEntryError) Unwrap() error { return ErrInvalidEntry }
