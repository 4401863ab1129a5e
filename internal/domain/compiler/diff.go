package compiler

import "strings"

// DiffType is the kind of change Apply makes.
type DiffType string

const (
	// DiffTypeAdd creates something that is missing: a package, a checkout,
	// a font directory, an rc line or a running process.
	DiffTypeAdd DiffType = "add"
	// DiffTypeModify changes something that exists, such as updating a
	// checkout or enabling a unit.
	DiffTypeModify DiffType = "modify"
	// DiffTypeNone means the desired state already holds.
	DiffTypeNone DiffType = "none"
)

// String returns the string representation of the diff type.
func (d DiffType) String() string {
	return string(d)
}

// sign prefixes each diff kind in summaries.
func (d DiffType) sign() string {
	switch d {
	case DiffTypeAdd:
		return "+"
	case DiffTypeModify:
		return "~"
	case DiffTypeNone:
	}
	return " "
}

// Diff describes the change a step's Apply makes to one resource.
type Diff struct {
	kind     DiffType
	resource string
	name     string
	from     string
	to       string
}

// Add returns a diff creating name; to describes what gets created.
func Add(resource, name, to string) Diff {
	return Diff{kind: DiffTypeAdd, resource: resource, name: name, to: to}
}

// Modify returns a diff moving name from one state to another. Either
// state may be empty.
func Modify(resource, name, from, to string) Diff {
	return Diff{kind: DiffTypeModify, resource: resource, name: name, from: from, to: to}
}

// NoChange returns a diff for a step whose desired state already holds.
func NoChange(resource, name string) Diff {
	return Diff{kind: DiffTypeNone, resource: resource, name: name}
}

// Type returns the diff type.
func (d Diff) Type() DiffType {
	return d.kind
}

// Resource returns the resource kind ("packages", "checkout", "unit", ...).
func (d Diff) Resource() string {
	return d.resource
}

// Name returns the resource name.
func (d Diff) Name() string {
	return d.name
}

// From returns the current state, empty for additions.
func (d Diff) From() string {
	return d.from
}

// To returns the desired state.
func (d Diff) To() string {
	return d.to
}

// Summary renders the diff on one line, for example
// "+ packages pacman (cava swww)" or "~ unit iwd (disabled -> enabled)".
func (d Diff) Summary() string {
	var b strings.Builder
	b.WriteString(d.kind.sign())
	b.WriteString(" ")
	b.WriteString(d.resource)
	b.WriteString(" ")
	b.WriteString(d.name)

	switch {
	case d.kind == DiffTypeNone:
	case d.from != "" && d.to != "":
		b.WriteString(" (" + d.from + " -> " + d.to + ")")
	case d.to != "":
		b.WriteString(" (" + d.to + ")")
	case d.from != "":
		b.WriteString(" (was " + d.from + ")")
	}
	return b.String()
}

// IsEmpty reports whether d is the zero Diff.
func (d Diff) IsEmpty() bool {
	return d == Diff{}
}
