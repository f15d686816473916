// Package completeness tests auto-repair: the closed candidate policy, the
// trigger thresholds, idempotence, and monotonicity.
package completeness

import (
	"testing"

	"github.com/blade-tech/schemalint/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoRepair_SynthesizesIdentifier(t *testing.T) {
	doc := `classes:
  Widget:
    slots:
      - id
      - label
slots:
  label:
    range: string
`
	repaired, repairs := AutoRepair(doc)

	require.Len(t, repairs, 1)
	assert.Equal(t, "Auto-added 'id' field definition (used by 1 classes: Widget)", repairs[0].Message())

	parsed, err := schema.Parse(repaired)
	require.NoError(t, err)
	require.True(t, parsed.HasSlot("id"))

	var idDef *schema.SlotDef
	for _, s := range parsed.Slots() {
		if s.Name == "id" {
			idDef = s
		}
	}
	require.NotNil(t, idDef)
	assert.Equal(t, "string", idDef.Range)
	assert.True(t, idDef.Identifier)
	assert.True(t, idDef.Required)

	result, err := Validate(repaired)
	require.NoError(t, err)
	assert.True(t, result.Valid, "repaired document re-validates clean")
}

func TestAutoRepair_ThresholdAsymmetry(t *testing.T) {
	// One referencing class is enough for id but not for the other four.
	singleRef := `classes:
  A:
    slots: [name]
`
	repaired, repairs := AutoRepair(singleRef)
	assert.Empty(t, repairs, "one class referencing 'name' must not trigger")
	assert.Equal(t, singleRef, repaired, "no-op returns the input unchanged")

	doubleRef := `classes:
  A:
    slots: [name]
  B:
    slots: [name]
`
	repaired, repairs = AutoRepair(doubleRef)
	require.Len(t, repairs, 1)
	assert.Equal(t, "Auto-added 'name' field definition (used by 2 classes: A, B)", repairs[0].Message())

	result, err := Validate(repaired)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestAutoRepair_CandidateOrderAndDefinitions(t *testing.T) {
	doc := `classes:
  A:
    slots: [updated_at, created_at, description, name, id]
  B:
    slots: [updated_at, created_at, description, name]
`
	repaired, repairs := AutoRepair(doc)

	var names []string
	for _, r := range repairs {
		names = append(names, r.Slot)
	}
	assert.Equal(t, []string{"id", "name", "description", "created_at", "updated_at"}, names,
		"repairs come out in fixed policy order, not reference order")

	parsed, err := schema.Parse(repaired)
	require.NoError(t, err)
	for _, s := range parsed.Slots() {
		switch s.Name {
		case "id", "name", "description":
			assert.Equal(t, "string", s.Range, s.Name)
		case "created_at", "updated_at":
			assert.Equal(t, "datetime", s.Range, s.Name)
		}
		if s.Name == "id" {
			assert.True(t, s.Identifier)
			assert.True(t, s.Required)
		} else {
			assert.False(t, s.Required, s.Name)
		}
	}
}

func TestAutoRepair_ClosedPolicy(t *testing.T) {
	// Domain-specific slots are never synthesized; they remain as errors.
	doc := `classes:
  Invoice:
    slots: [invoice_number]
  Receipt:
    slots: [invoice_number]
`
	repaired, repairs := AutoRepair(doc)
	assert.Empty(t, repairs)
	assert.Equal(t, doc, repaired)

	result, err := Validate(repaired)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "invoice_number", result.Errors[0].Slot)
}

func TestAutoRepair_PartialRepairLeavesRemainder(t *testing.T) {
	doc := `classes:
  Widget:
    slots: [id, invoice_number]
`
	repaired, repairs := AutoRepair(doc)
	require.Len(t, repairs, 1)
	assert.Equal(t, "id", repairs[0].Slot)

	result, err := Validate(repaired)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "invoice_number", result.Errors[0].Slot)
}

func TestAutoRepair_Idempotent(t *testing.T) {
	doc := `classes:
  A:
    slots: [id, name, created_at]
  B:
    slots: [name, created_at]
`
	first, firstRepairs := AutoRepair(doc)
	require.NotEmpty(t, firstRepairs)

	second, secondRepairs := AutoRepair(first)
	assert.Empty(t, secondRepairs, "re-repairing repaired output is a no-op")
	assert.Equal(t, first, second)
}

func TestAutoRepair_Monotone(t *testing.T) {
	doc := `classes:
  A:
    slots: [id, label]
slots:
  label:
    range: string
    description: user-facing label
`
	repaired, _ := AutoRepair(doc)

	before, err := schema.Parse(doc)
	require.NoError(t, err)
	after, err := schema.Parse(repaired)
	require.NoError(t, err)

	for _, s := range before.Slots() {
		assert.True(t, after.HasSlot(s.Name), "originally-defined slot %q survives", s.Name)
	}
	// Existing definition content is untouched
	for _, s := range after.Slots() {
		if s.Name == "label" {
			assert.Equal(t, "user-facing label", s.Description)
			assert.Equal(t, "string", s.Range)
		}
	}
}

func TestAutoRepair_AlreadyDefinedDoesNotTrigger(t *testing.T) {
	doc := `classes:
  A:
    slots: [id]
slots:
  id:
    range: string
    identifier: true
`
	repaired, repairs := AutoRepair(doc)
	assert.Empty(t, repairs)
	assert.Equal(t, doc, repaired)
}

func TestAutoRepair_UnparseablePassesThrough(t *testing.T) {
	tests := map[string]struct {
		input string
	}{
		"broken yaml": {input: "classes: ["},
		"empty":       {input: ""},
		"scalar root": {input: "nope"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			repaired, repairs := AutoRepair(tt.input)
			assert.Equal(t, tt.input, repaired, "fail-safe pass-through")
			assert.Empty(t, repairs)
		})
	}
}

func TestAutoRepair_EnumsAreNeverSynthesized(t *testing.T) {
	doc := `classes:
  A:
    slots: [status]
  B:
    slots: [status]
slots:
  status:
    range: StatusEnum
`
	repaired, repairs := AutoRepair(doc)
	assert.Empty(t, repairs)
	assert.Equal(t, doc, repaired)

	result, err := Validate(repaired)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, MissingEnum, result.Errors[0].Kind)
}
