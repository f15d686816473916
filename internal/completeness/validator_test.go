// Package completeness tests reference validation: error wording, ordering,
// parse-failure classification, and report agreement.
package completeness

import (
	"errors"
	"testing"

	"github.com/blade-tech/schemalint/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_UndefinedSlot(t *testing.T) {
	doc := `classes:
  Widget:
    slots:
      - id
      - label
slots:
  label:
    range: string
`
	result, err := Validate(doc)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, MissingSlot, result.Errors[0].Kind)
	assert.Equal(t, "Widget", result.Errors[0].Class)
	assert.Equal(t, "id", result.Errors[0].Slot)
	assert.Equal(t,
		"Class 'Widget' references undefined slot 'id'. Add this slot to the top-level 'slots' section.",
		result.Errors[0].Message())
}

func TestValidate_ValidDocument(t *testing.T) {
	doc := `classes:
  Widget:
    slots: [label]
slots:
  label:
    range: string
`
	result, err := Validate(doc)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidate_UndefinedEnum(t *testing.T) {
	doc := `classes:
  Ticket:
    slots: [status]
slots:
  status:
    range: PriorityEnum
`
	result, err := Validate(doc)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, MissingEnum, result.Errors[0].Kind)
	assert.Equal(t,
		"Slot 'status' references undefined enum 'PriorityEnum'. Add this enum to the top-level 'enums' section.",
		result.Errors[0].Message())
}

func TestValidate_ErrorOrdering(t *testing.T) {
	// Slot errors in class/slot declaration order, then enum errors in slot
	// declaration order.
	doc := `classes:
  B:
    slots: [missing_two, missing_one]
  A:
    slots: [missing_one]
slots:
  status:
    range: StatusEnum
  kind:
    range: KindEnum
`
	result, err := Validate(doc)
	require.NoError(t, err)

	var got []string
	for _, e := range result.Errors {
		switch e.Kind {
		case MissingSlot:
			got = append(got, e.Class+"/"+e.Slot)
		case MissingEnum:
			got = append(got, "enum:"+e.Enum)
		}
	}
	assert.Equal(t, []string{
		"B/missing_two",
		"B/missing_one",
		"A/missing_one",
		"enum:StatusEnum",
		"enum:KindEnum",
	}, got)
}

func TestValidate_Deterministic(t *testing.T) {
	doc := `classes:
  C1:
    slots: [a, b, c]
  C2:
    slots: [c, a]
  C3:
    slots: [b]
`
	first, err := Validate(doc)
	require.NoError(t, err)
	second, err := Validate(doc)
	require.NoError(t, err)
	assert.Equal(t, first.Messages(), second.Messages())
}

func TestValidate_ParseFailure(t *testing.T) {
	tests := map[string]struct {
		input string
	}{
		"truncated flow": {input: "classes: ["},
		"empty":          {input: ""},
		"scalar root":    {input: "nope"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			result, err := Validate(tt.input)
			require.Error(t, err, "parse failure must be a distinguished outcome")
			assert.Nil(t, result)
			var parseErr *schema.ParseError
			assert.True(t, errors.As(err, &parseErr))
		})
	}
}

func TestValidate_ClassWithoutSlotListIsNotAnError(t *testing.T) {
	doc := `classes:
  Marker:
    description: no slot list at all
`
	result, err := Validate(doc)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestBuildReport_Counts(t *testing.T) {
	doc := `classes:
  Widget:
    slots: [id, label, status]
  Gadget:
    slots: [id]
slots:
  label:
    range: string
  status:
    range: StatusEnum
  flavor:
    range: FlavorEnum
enums:
  StatusEnum:
    permissible_values:
      OPEN:
`
	report, err := BuildReport(doc)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Classes)
	assert.Equal(t, 3, report.SlotsDefined)
	assert.Equal(t, 4, report.SlotsReferenced)
	assert.Equal(t, 2, report.SlotsMissing) // Widget/id, Gadget/id
	assert.Equal(t, 1, report.EnumsDefined)
	assert.Equal(t, 2, report.EnumsReferenced)
	assert.Equal(t, 1, report.EnumsMissing) // FlavorEnum
}

// Missing counts must agree exactly with the validator's error counts.
func TestBuildReport_AgreesWithValidate(t *testing.T) {
	tests := map[string]struct {
		doc string
	}{
		"fully valid": {
			doc: "classes:\n  A:\n    slots: [x]\nslots:\n  x:\n    range: string\n",
		},
		"missing slots only": {
			doc: "classes:\n  A:\n    slots: [x, y]\n  B:\n    slots: [x]\n",
		},
		"missing enums only": {
			doc: "slots:\n  s:\n    range: GoneEnum\n",
		},
		"both": {
			doc: "classes:\n  A:\n    slots: [x]\nslots:\n  s:\n    range: GoneEnum\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			result, err := Validate(tt.doc)
			require.NoError(t, err)
			report, err := BuildReport(tt.doc)
			require.NoError(t, err)

			assert.Equal(t, report.SlotsMissing+report.EnumsMissing, len(result.Errors))
		})
	}
}

func TestBuildReport_ParseFailure(t *testing.T) {
	_, err := BuildReport("classes: [")
	require.Error(t, err)
	var parseErr *schema.ParseError
	assert.True(t, errors.As(err, &parseErr))
}
