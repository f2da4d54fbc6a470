package hostsfile

import (
	"strings"

	"github.com/samber/lo"
)

type Address = string
type Hostname = string

// Mapping is the projection of an Entry line returned by List.
type Mapping struct {
	Address  Address  `json:"address"`
	Hostname Hostname `json:"hostname"`
}

// Table is the ordered content of a hosts file, one Line per physical line.
type Table []Line

func Parse(text string) Table {
	if text == "" {
		return Table{}
	}
	raw := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	t := make(Table, 0, len(raw))
	for _, line := range raw {
		t = append(t, ParseLine(line))
	}
	return t
}

// String serializes the table. A non-empty table always ends with exactly one
// newline; an empty table serializes to "".
func (t Table) String() string {
	if len(t) == 0 {
		return ""
	}
	var b strings.Builder
	for _, line := range t {
		b.WriteString(line.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (t Table) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Table) UnmarshalText(data []byte) error {
	*t = Parse(string(data))
	return nil
}

func (t Table) Entries() []Line {
	return lo.Filter(t, func(l Line, _ int) bool { return l.IsEntry() })
}

func (t Table) indexOf(address, hostname string) int {
	for i, line := range t {
		if line.Matches(address, hostname) {
			return i
		}
	}
	return -1
}

func (t Table) hasHostname(hostname string) bool {
	return lo.ContainsBy(t, func(l Line) bool {
		return l.IsEntry() && l.Hostname == hostname
	})
}

func (t Table) clone(extra int) Table {
	out := make(Table, len(t), len(t)+extra)
	copy(out, t)
	return out
}
