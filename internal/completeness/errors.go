// Package completeness checks that every cross-reference a schema document
// makes resolves to a definition in the same document, and mechanically
// repairs a closed set of conventionally-named missing slots.
package completeness

import "fmt"

// ErrorKind discriminates the two completeness violations.
type ErrorKind int

const (
	// MissingSlot marks a class referencing a slot with no definition.
	MissingSlot ErrorKind = iota
	// MissingEnum marks a slot whose range names an undeclared enum.
	MissingEnum
)

// Error is a single completeness violation as structured data. The
// user-facing wording is produced by Message at the display boundary;
// callers that need the parts read the fields directly.
type Error struct {
	Kind  ErrorKind
	Class string // referencing class (MissingSlot)
	Slot  string // referenced slot (MissingSlot) or referring slot (MissingEnum)
	Enum  string // referenced enum (MissingEnum)
}

// Message renders the violation in the wording callers display verbatim.
func (e Error) Message() string {
	switch e.Kind {
	case MissingEnum:
		return fmt.Sprintf("Slot '%s' references undefined enum '%s'. Add this enum to the top-level 'enums' section.", e.Slot, e.Enum)
	default:
		return fmt.Sprintf("Class '%s' references undefined slot '%s'. Add this slot to the top-level 'slots' section.", e.Class, e.Slot)
	}
}
