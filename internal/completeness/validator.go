package completeness

import (
	"github.com/blade-tech/schemalint/internal/schema"
)

// Result is the outcome of validating one parseable document.
type Result struct {
	Valid  bool
	Errors []Error
}

// Messages renders every error in order.
func (r *Result) Messages() []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Message())
	}
	return out
}

func (r *Result) add(e Error) {
	r.Errors = append(r.Errors, e)
	r.Valid = false
}

// Validate parses document text and checks every slot and enum reference
// against the document's own definitions. A non-nil error means the text
// could not be parsed at all (*schema.ParseError); domain violations are
// returned as Result values, never as errors.
//
// Errors come out in a deterministic order: slot errors first, in class
// declaration order and slot order within a class, then enum errors in slot
// declaration order.
func Validate(text string) (*Result, error) {
	doc, err := schema.Parse(text)
	if err != nil {
		return nil, err
	}
	return validateDocument(doc), nil
}

func validateDocument(doc *schema.Document) *Result {
	result := &Result{Valid: true}

	for _, ref := range doc.ReferencedSlots() {
		if !doc.HasSlot(ref.Slot) {
			result.add(Error{Kind: MissingSlot, Class: ref.Class, Slot: ref.Slot})
		}
	}

	for _, ref := range doc.ReferencedEnums() {
		if !doc.HasEnum(ref.Enum) {
			result.add(Error{Kind: MissingEnum, Slot: ref.Slot, Enum: ref.Enum})
		}
	}

	return result
}

// Report summarizes definition and reference counts for one document.
// Referenced and missing counts are over distinct reference pairs, so
// SlotsMissing always equals the number of MissingSlot errors Validate
// reports and EnumsMissing the number of MissingEnum errors.
type Report struct {
	Classes         int `json:"classes"`
	SlotsDefined    int `json:"slots_defined"`
	SlotsReferenced int `json:"slots_referenced"`
	SlotsMissing    int `json:"slots_missing"`
	EnumsDefined    int `json:"enums_defined"`
	EnumsReferenced int `json:"enums_referenced"`
	EnumsMissing    int `json:"enums_missing"`
}

// BuildReport computes the completeness report for document text. Like
// Validate it returns a *schema.ParseError for unparseable input.
func BuildReport(text string) (*Report, error) {
	doc, err := schema.Parse(text)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Classes:      len(doc.Classes()),
		SlotsDefined: len(doc.Slots()),
		EnumsDefined: len(doc.Enums()),
	}

	for _, ref := range doc.ReferencedSlots() {
		report.SlotsReferenced++
		if !doc.HasSlot(ref.Slot) {
			report.SlotsMissing++
		}
	}
	for _, ref := range doc.ReferencedEnums() {
		report.EnumsReferenced++
		if !doc.HasEnum(ref.Enum) {
			report.EnumsMissing++
		}
	}

	return report, nil
}
