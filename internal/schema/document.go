// Package schema provides the typed document model for schema documents:
// strict parsing of the YAML serialization, accessors for cross-reference
// analysis, and lossless serialization back to text.
package schema

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseError reports input that could not be parsed as a schema document at
// all. Domain-rule violations (missing definitions) are never a ParseError;
// those are reported by the completeness package as values.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("schema parse failure: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ClassDef is one entry in the top-level classes section. Slots holds the
// slot-name references in declaration order.
type ClassDef struct {
	Name        string
	Slots       []string
	IsA         string
	Description string
}

// SlotDef is one entry in the top-level slots section.
type SlotDef struct {
	Name         string
	Range        string
	Description  string
	Identifier   bool
	Required     bool
	Multivalued  bool
	MinimumValue *float64
	MaximumValue *float64
}

// EnumDef is one entry in the top-level enums section.
type EnumDef struct {
	Name              string
	PermissibleValues []string
}

// SlotRef is a single (class, slot) reference pair.
type SlotRef struct {
	Class string
	Slot  string
}

// EnumRef is a single (slot, enum) reference pair: a slot whose range names
// a declared-enum style type.
type EnumRef struct {
	Slot string
	Enum string
}

// Document is the in-memory representation of one schema document. It keeps
// the parsed yaml node tree alongside the typed view so that serialization
// after repair preserves the order and comments of all untouched content.
type Document struct {
	root *yaml.Node

	classOrder []string
	classes    map[string]*ClassDef
	slotOrder  []string
	slots      map[string]*SlotDef
	enumOrder  []string
	enums      map[string]*EnumDef
}

// Parse parses document text into a Document. It fails closed with a
// *ParseError when the text is not valid YAML or is not shaped like a
// document (root is not a mapping). Sections that are present but malformed
// at the entry level (a class without a slot list, a scalar where a mapping
// was expected) parse to empty definitions rather than errors.
func Parse(text string) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, &ParseError{Err: err}
	}

	mapping := rootMapping(&root)
	if mapping == nil {
		return nil, &ParseError{Err: fmt.Errorf("document root is not a mapping")}
	}

	doc := &Document{
		root:    &root,
		classes: map[string]*ClassDef{},
		slots:   map[string]*SlotDef{},
		enums:   map[string]*EnumDef{},
	}

	doc.parseClasses(findChild(mapping, "classes"))
	doc.parseSlots(findChild(mapping, "slots"))
	doc.parseEnums(findChild(mapping, "enums"))

	return doc, nil
}

// Classes returns the class definitions in declaration order.
func (d *Document) Classes() []*ClassDef {
	out := make([]*ClassDef, 0, len(d.classOrder))
	for _, name := range d.classOrder {
		out = append(out, d.classes[name])
	}
	return out
}

// Slots returns the slot definitions in declaration order.
func (d *Document) Slots() []*SlotDef {
	out := make([]*SlotDef, 0, len(d.slotOrder))
	for _, name := range d.slotOrder {
		out = append(out, d.slots[name])
	}
	return out
}

// Enums returns the enum definitions in declaration order.
func (d *Document) Enums() []*EnumDef {
	out := make([]*EnumDef, 0, len(d.enumOrder))
	for _, name := range d.enumOrder {
		out = append(out, d.enums[name])
	}
	return out
}

// HasSlot reports whether a slot definition with the given name exists.
func (d *Document) HasSlot(name string) bool {
	_, ok := d.slots[name]
	return ok
}

// HasEnum reports whether an enum definition with the given name exists.
func (d *Document) HasEnum(name string) bool {
	_, ok := d.enums[name]
	return ok
}

// ReferencedSlots returns every distinct (class, slot) reference pair in
// first-seen order: class declaration order, then slot declaration order
// within the class. Duplicate references within one class collapse to the
// first occurrence.
func (d *Document) ReferencedSlots() []SlotRef {
	var refs []SlotRef
	seen := map[SlotRef]bool{}
	for _, name := range d.classOrder {
		for _, slot := range d.classes[name].Slots {
			ref := SlotRef{Class: name, Slot: slot}
			if seen[ref] {
				continue
			}
			seen[ref] = true
			refs = append(refs, ref)
		}
	}
	return refs
}

// ReferencedEnums returns every (slot, enum) reference pair in slot
// declaration order. A slot references an enum when its range follows the
// declared-enum naming convention.
func (d *Document) ReferencedEnums() []EnumRef {
	var refs []EnumRef
	for _, name := range d.slotOrder {
		r := d.slots[name].Range
		if isEnumName(r) {
			refs = append(refs, EnumRef{Slot: name, Enum: r})
		}
	}
	return refs
}

// isEnumName reports whether a range value names an enum by convention.
func isEnumName(rangeName string) bool {
	return strings.HasSuffix(rangeName, "Enum")
}

func (d *Document) parseClasses(node *yaml.Node) {
	forEachEntry(node, func(name string, body *yaml.Node) {
		if _, ok := d.classes[name]; ok {
			return
		}
		def := &ClassDef{Name: name}
		if body != nil && body.Kind == yaml.MappingNode {
			def.IsA = scalarChild(body, "is_a")
			def.Description = scalarChild(body, "description")
			if slots := findChild(body, "slots"); slots != nil && slots.Kind == yaml.SequenceNode {
				for _, item := range slots.Content {
					if item.Kind == yaml.ScalarNode && item.Value != "" {
						def.Slots = append(def.Slots, item.Value)
					}
				}
			}
		}
		d.classOrder = append(d.classOrder, name)
		d.classes[name] = def
	})
}

func (d *Document) parseSlots(node *yaml.Node) {
	forEachEntry(node, func(name string, body *yaml.Node) {
		if _, ok := d.slots[name]; ok {
			return
		}
		def := &SlotDef{Name: name}
		if body != nil && body.Kind == yaml.MappingNode {
			def.Range = scalarChild(body, "range")
			def.Description = scalarChild(body, "description")
			def.Identifier = boolChild(body, "identifier")
			def.Required = boolChild(body, "required")
			def.Multivalued = boolChild(body, "multivalued")
			def.MinimumValue = floatChild(body, "minimum_value")
			def.MaximumValue = floatChild(body, "maximum_value")
		}
		d.slotOrder = append(d.slotOrder, name)
		d.slots[name] = def
	})
}

func (d *Document) parseEnums(node *yaml.Node) {
	forEachEntry(node, func(name string, body *yaml.Node) {
		if _, ok := d.enums[name]; ok {
			return
		}
		def := &EnumDef{Name: name}
		if body != nil && body.Kind == yaml.MappingNode {
			values := findChild(body, "permissible_values")
			switch {
			case values != nil && values.Kind == yaml.MappingNode:
				for i := 0; i < len(values.Content)-1; i += 2 {
					def.PermissibleValues = append(def.PermissibleValues, values.Content[i].Value)
				}
			case values != nil && values.Kind == yaml.SequenceNode:
				for _, item := range values.Content {
					if item.Kind == yaml.ScalarNode {
						def.PermissibleValues = append(def.PermissibleValues, item.Value)
					}
				}
			}
		}
		d.enumOrder = append(d.enumOrder, name)
		d.enums[name] = def
	})
}

// rootMapping returns the top-level mapping node of a parsed document.
func rootMapping(root *yaml.Node) *yaml.Node {
	if root == nil {
		return nil
	}
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		return rootMapping(root.Content[0])
	}
	if root.Kind == yaml.MappingNode {
		return root
	}
	return nil
}

// findChild finds the value node for a key in a mapping node.
func findChild(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// forEachEntry calls fn for each (key, value) pair of a mapping node,
// in declaration order. Non-mapping nodes contribute no entries.
func forEachEntry(node *yaml.Node, fn func(name string, body *yaml.Node)) {
	if node == nil || node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i < len(node.Content)-1; i += 2 {
		fn(node.Content[i].Value, node.Content[i+1])
	}
}

func scalarChild(mapping *yaml.Node, key string) string {
	node := findChild(mapping, key)
	if node == nil || node.Kind != yaml.ScalarNode {
		return ""
	}
	return node.Value
}

func boolChild(mapping *yaml.Node, key string) bool {
	node := findChild(mapping, key)
	if node == nil || node.Kind != yaml.ScalarNode {
		return false
	}
	v, err := strconv.ParseBool(node.Value)
	return err == nil && v
}

func floatChild(mapping *yaml.Node, key string) *float64 {
	node := findChild(mapping, key)
	if node == nil || node.Kind != yaml.ScalarNode {
		return nil
	}
	v, err := strconv.ParseFloat(node.Value, 64)
	if err != nil {
		return nil
	}
	return &v
}
