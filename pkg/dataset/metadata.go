package dataset

import (
	"regexp"
	"strings"
)

// Section names a metadata section of a dataset.
type Section string

const (
	SectionHeader        Section = "header"
	SectionColumnHeaders Section = "column_headers"
)

// Metadata is the sectioned key/value store read from a file's header.
type Metadata struct {
	// Header maps a header key to its lines. A single-line item has one
	// element; multi-line items keep their lines in file order.
	Header map[string][]string
	// Keys lists header keys in order of first appearance.
	Keys []string
	// ColumnHeaders maps a column label to its parsed descriptor.
	ColumnHeaders map[string]ColumnHeader
}

// Add appends value to the lines stored for key.
func (m *Metadata) Add(key, value string) {
	if m.Header == nil {
		m.Header = map[string][]string{}
	}
	if _, ok := m.Header[key]; !ok {
		m.Keys = append(m.Keys, key)
	}
	m.Header[key] = append(m.Header[key], value)
}

// Declare records key with no lines yet, so that later continuation lines
// can be appended to it.
func (m *Metadata) Declare(key string) {
	if m.Header == nil {
		m.Header = map[string][]string{}
	}
	if _, ok := m.Header[key]; !ok {
		m.Keys = append(m.Keys, key)
		m.Header[key] = []string{}
	}
}

// ColumnHeader describes one data column, e.g. "time (year) [a]" is
// {Name: "time", Units: "year", Notes: "a"}.
type ColumnHeader struct {
	Name  string
	Units string
	Notes string
}

var columnHeaderRE = regexp.MustCompile(`^\s*(.*?)\s*(?:\(([^()]*)\))?\s*(?:\[([^\[\]]*)\])?\s*$`)

// ParseColumnHeader splits a column label into name, units and notes.
func ParseColumnHeader(label string) ColumnHeader {
	m := columnHeaderRE.FindStringSubmatch(label)
	if m == nil {
		return ColumnHeader{Name: strings.TrimSpace(label)}
	}
	return ColumnHeader{Name: m[1], Units: m[2], Notes: m[3]}
}

// String reassembles the column label.
func (h ColumnHeader) String() string {
	s := h.Name
	if h.Units != "" {
		s += " (" + h.Units + ")"
	}
	if h.Notes != "" {
		s += " [" + h.Notes + "]"
	}
	return s
}

// Value is a resolved metadata item. Header items carry Text; items from
// the column_headers section carry Column.
type Value struct {
	Text   string
	Column *ColumnHeader
}

func (v Value) String() string {
	if v.Column != nil {
		return v.Column.String()
	}
	return v.Text
}

// IsZero reports whether the item was absent.
func (v Value) IsZero() bool {
	return v.Column == nil && v.Text == ""
}

// GetItem looks up key in the given section of ds's metadata.
//
// Multi-line header items are joined with "\n", reproducing the text as it
// was written before being split across header lines. A missing key is not
// an error: it yields the zero Value, whose String is "". Only an unknown
// section fails, with a *SectionNotFoundError.
func GetItem(ds *Dataset, key string, section Section) (Value, error) {
	switch section {
	case SectionHeader:
		lines, ok := ds.Metadata.Header[key]
		if !ok {
			return Value{}, nil
		}
		return Value{Text: strings.Join(lines, "\n")}, nil
	case SectionColumnHeaders:
		h, ok := ds.Metadata.ColumnHeaders[key]
		if !ok {
			return Value{}, nil
		}
		return Value{Column: &h}, nil
	default:
		return Value{}, &SectionNotFoundError{Section: section}
	}
}

// HeaderItem returns the header item for key, or "" if there is none.
func HeaderItem(ds *Dataset, key string) string {
	v, _ := GetItem(ds, key, SectionHeader)
	return v.Text
}
