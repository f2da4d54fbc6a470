package hostsfile

import (
	"strings"
	"unicode"
)

type Kind int

const (
	Blank Kind = iota
	Comment
	Entry
	// Passthrough is a line that looks like neither a comment nor a valid entry.
	// It is written back exactly as read.
	Passthrough
)

// Line is a single physical line of a hosts file.
//
// Raw holds the verbatim text for every kind but Entry, whose text is rebuilt
// from Address, Hostname and Trailing on write.
type Line struct {
	Kind     Kind
	Raw      string
	Address  string
	Hostname string
	Trailing string
}

func NewEntry(address, hostname string) Line {
	return Line{Kind: Entry, Address: address, Hostname: hostname}
}

func (l Line) IsEntry() bool { return l.Kind == Entry }

func (l Line) Matches(address, hostname string) bool {
	return l.Kind == Entry && l.Address == address && l.Hostname == hostname
}

func (l Line) String() string {
	if l.Kind != Entry {
		return l.Raw
	}
	if l.Trailing == "" {
		return l.Address + " " + l.Hostname
	}
	return l.Address + " " + l.Hostname + " " + l.Trailing
}

func ParseLine(raw string) Line {
	body := strings.TrimLeftFunc(raw, unicode.IsSpace)
	switch {
	case body == "":
		return Line{Kind: Blank, Raw: raw}
	case body[0] == '#':
		return Line{Kind: Comment, Raw: raw}
	}

	address, rest := cutToken(body)
	hostname, rest := cutToken(rest)
	if hostname == "" || hostname[0] == '#' {
		return Line{Kind: Passthrough, Raw: raw}
	}
	return Line{
		Kind:     Entry,
		Raw:      raw,
		Address:  address,
		Hostname: hostname,
		Trailing: strings.TrimSpace(rest),
	}
}

// cutToken returns the first whitespace separated token of s and whatever
// follows it.
func cutToken(s string) (token, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}
