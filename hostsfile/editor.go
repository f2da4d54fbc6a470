// Package hostsfile parses hosts files into an order preserving Table and
// applies add, remove and list operations to it without disturbing comments,
// blank lines or unrelated entries.
package hostsfile

import (
	"slices"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// DefaultProtected are the hostnames a default Editor refuses to remove.
var DefaultProtected = []Hostname{"localhost", "broadcasthost"}

// Editor applies mutations to a Table. Its protected set is fixed at
// construction.
type Editor struct {
	protected map[Hostname]struct{}
}

// NewEditor returns an Editor protecting the given hostnames. With no
// arguments it protects DefaultProtected.
func NewEditor(protected ...Hostname) *Editor {
	if len(protected) == 0 {
		protected = DefaultProtected
	}
	e := &Editor{protected: make(map[Hostname]struct{}, len(protected))}
	for _, h := range protected {
		e.protected[h] = struct{}{}
	}
	return e
}

// IsProtected reports whether hostname is in the protected set.
func (e *Editor) IsProtected(hostname Hostname) bool {
	_, ok := e.protected[hostname]
	return ok
}

// Protected returns the protected hostnames in sorted order.
func (e *Editor) Protected() []Hostname {
	keys := lo.Keys(e.protected)
	slices.Sort(keys)
	return keys
}

// List returns the address and hostname of every entry in file order.
func List(t Table) []Mapping {
	return lo.Map(t.Entries(), func(l Line, _ int) Mapping {
		return Mapping{Address: l.Address, Hostname: l.Hostname}
	})
}

// Add appends "address hostname" to the end of t. It fails if any entry
// already uses hostname, whatever its address. Hostnames are compared as whole
// tokens, so "host" does not collide with "localhost".
func (e *Editor) Add(t Table, address Address, hostname Hostname) (Table, error) {
	if err := validate(address, hostname); err != nil {
		return nil, err
	}
	if t.hasHostname(hostname) {
		return nil, &DuplicateHostnameError{Hostname: hostname}
	}
	out := t.clone(1)
	return append(out, NewEntry(address, hostname)), nil
}

// Remove deletes the first entry whose address and hostname both equal the
// given pair. Protected hostnames are refused before the table is consulted.
func (e *Editor) Remove(t Table, address Address, hostname Hostname) (Table, error) {
	if e.IsProtected(hostname) {
		return nil, &ProtectedEntryError{Hostname: hostname}
	}
	if err := validate(address, hostname); err != nil {
		return nil, err
	}
	i := t.indexOf(address, hostname)
	if i < 0 {
		return nil, &EntryNotFoundError{Address: address, Hostname: hostname}
	}
	out := make(Table, 0, len(t)-1)
	out = append(out, t[:i]...)
	return append(out, t[i+1:]...), nil
}

// validate rejects fields that would not parse back into the same entry.
func validate(address Address, hostname Hostname) error {
	check := func(field, v string) string {
		switch {
		case v == "":
			return field + " is empty"
		case strings.IndexFunc(v, unicode.IsSpace) >= 0:
			return field + " contains whitespace"
		case v[0] == '#':
			return field + " starts with '#'"
		}
		return ""
	}
	reason := check("address", address)
	if reason == "" {
		reason = check("hostname", hostname)
	}
	if reason != "" {
		return &InvalidEntryError{Address: address, Hostname: hostname, Reason: reason}
	}
	return nil
}
