// Package pipeline runs the validate / repair / re-validate protocol and
// classifies the outcome for callers. The policy is fail-open: even when
// repair does not achieve full validity, the best available document is
// carried forward, since a partially repaired document gives the downstream
// compiler a better chance than the original.
package pipeline

import (
	"fmt"

	"github.com/blade-tech/schemalint/internal/completeness"
)

// State classifies the pipeline outcome.
type State int

const (
	// StateUnparseable means the input is not a schema document at all.
	StateUnparseable State = iota
	// StateValid means the input was complete as given; nothing was changed.
	StateValid
	// StateRepaired means repair brought the document to full validity.
	StateRepaired
	// StatePartial means issues remain after repair; the repaired document
	// is still the one carried forward.
	StatePartial
)

// Outcome carries the best available document plus everything a caller
// needs to present the verdict.
type Outcome struct {
	State     State
	Document  string // best available document text
	Repairs   []completeness.Repair
	Remaining []completeness.Error
	ParseErr  error // set only for StateUnparseable
}

// Run validates document text, auto-repairs it if invalid, and re-validates
// the repaired text.
func Run(text string) *Outcome {
	result, err := completeness.Validate(text)
	if err != nil {
		return &Outcome{State: StateUnparseable, Document: text, ParseErr: err}
	}
	if result.Valid {
		return &Outcome{State: StateValid, Document: text}
	}

	repaired, repairs := completeness.AutoRepair(text)

	recheck, err := completeness.Validate(repaired)
	if err != nil {
		return &Outcome{State: StateUnparseable, Document: text, ParseErr: err}
	}
	if recheck.Valid {
		return &Outcome{State: StateRepaired, Document: repaired, Repairs: repairs}
	}
	return &Outcome{
		State:     StatePartial,
		Document:  repaired,
		Repairs:   repairs,
		Remaining: recheck.Errors,
	}
}

// Summary renders the one-line verdict for the outcome.
func (o *Outcome) Summary() string {
	switch o.State {
	case StateValid:
		return "schema is valid"
	case StateRepaired:
		return fmt.Sprintf("fully repaired, %d fixes applied", len(o.Repairs))
	case StatePartial:
		return fmt.Sprintf("partially repaired, %d fixes applied, %d errors remain",
			len(o.Repairs), len(o.Remaining))
	default:
		return fmt.Sprintf("schema could not be parsed: %v", o.ParseErr)
	}
}
