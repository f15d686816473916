package completeness

import (
	"fmt"
	"strings"

	"github.com/blade-tech/schemalint/internal/schema"
)

// Repair records one synthesized slot definition.
type Repair struct {
	Slot    string
	Classes []string // referencing classes, declaration order
}

// Message renders the repair in the wording callers display verbatim.
func (r Repair) Message() string {
	return fmt.Sprintf("Auto-added '%s' field definition (used by %d classes: %s)",
		r.Slot, len(r.Classes), strings.Join(r.Classes, ", "))
}

// Messages renders a repair list in order.
func Messages(repairs []Repair) []string {
	out := make([]string, 0, len(repairs))
	for _, r := range repairs {
		out = append(out, r.Message())
	}
	return out
}

// repairCandidates is the closed repair policy. Only these five slots are
// ever synthesized, in this order. minClasses is the number of distinct
// referencing classes required to trigger: a single reference is enough
// evidence for the near-universal identifier slot, while the other four
// need corroboration from a second class before they count as an omission
// rather than a type-specific slot.
var repairCandidates = []struct {
	name       string
	minClasses int
	definition schema.SlotDef
}{
	{"id", 1, schema.SlotDef{Range: "string", Identifier: true, Required: true}},
	{"name", 2, schema.SlotDef{Range: "string"}},
	{"description", 2, schema.SlotDef{Range: "string"}},
	{"created_at", 2, schema.SlotDef{Range: "datetime"}},
	{"updated_at", 2, schema.SlotDef{Range: "datetime"}},
}

// AutoRepair injects missing slot definitions for the closed candidate set
// and returns the repaired text with one Repair per synthesized slot.
//
// It never fails: unparseable input passes through unchanged with no
// repairs, and input with nothing to repair is returned as-is. Existing
// definitions are never altered, removed, or renamed, which makes the
// operation idempotent — re-repairing repaired output yields no repairs.
func AutoRepair(text string) (string, []Repair) {
	doc, err := schema.Parse(text)
	if err != nil {
		return text, nil
	}

	usedBy := map[string][]string{}
	for _, ref := range doc.ReferencedSlots() {
		if doc.HasSlot(ref.Slot) {
			continue
		}
		usedBy[ref.Slot] = append(usedBy[ref.Slot], ref.Class)
	}

	var repairs []Repair
	for _, candidate := range repairCandidates {
		classes := usedBy[candidate.name]
		if len(classes) < candidate.minClasses {
			continue
		}
		definition := candidate.definition
		definition.Name = candidate.name
		if err := doc.AddSlot(&definition); err != nil {
			continue
		}
		repairs = append(repairs, Repair{Slot: candidate.name, Classes: classes})
	}

	if len(repairs) == 0 {
		return text, nil
	}

	repaired, err := doc.Marshal()
	if err != nil {
		return text, nil
	}
	return repaired, repairs
}
