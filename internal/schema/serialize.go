package schema

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// AddSlot appends a slot definition to the slots section, creating the
// section if the document has none. Existing content is never reordered or
// rewritten. Adding a slot whose name is already defined is rejected so
// that repair can never clobber an authored definition.
func (d *Document) AddSlot(def *SlotDef) error {
	if def == nil || def.Name == "" {
		return fmt.Errorf("slot definition must have a name")
	}
	if d.HasSlot(def.Name) {
		return fmt.Errorf("slot %q is already defined", def.Name)
	}

	mapping := rootMapping(d.root)
	if mapping == nil {
		return fmt.Errorf("document root is not a mapping")
	}

	slots := findChild(mapping, "slots")
	switch {
	case slots == nil:
		slots = &yaml.Node{Kind: yaml.MappingNode}
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "slots"},
			slots,
		)
	case slots.Kind != yaml.MappingNode:
		// A present-but-empty section parses as a null scalar; convert it
		// in place so the key is not duplicated.
		*slots = yaml.Node{Kind: yaml.MappingNode}
	}

	slots.Content = append(slots.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: def.Name},
		slotBodyNode(def),
	)

	stored := *def
	d.slotOrder = append(d.slotOrder, def.Name)
	d.slots[def.Name] = &stored
	return nil
}

// Marshal serializes the document back to text. Untouched sections keep
// their original key order and comments; definitions added through AddSlot
// appear at the end of the slots section.
func (d *Document) Marshal() (string, error) {
	out, err := yaml.Marshal(d.root)
	if err != nil {
		return "", fmt.Errorf("failed to serialize schema document: %w", err)
	}
	return string(out), nil
}

// slotBodyNode builds the mapping node for one slot definition. Only keys
// with meaningful values are emitted, matching hand-authored definitions.
func slotBodyNode(def *SlotDef) *yaml.Node {
	body := &yaml.Node{Kind: yaml.MappingNode}

	add := func(key, value string) {
		body.Content = append(body.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: value},
		)
	}
	addBool := func(key string, value bool) {
		if !value {
			return
		}
		node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"}
		body.Content = append(body.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			node,
		)
	}
	addFloat := func(key string, value *float64) {
		if value == nil {
			return
		}
		node := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!float",
			Value: strconv.FormatFloat(*value, 'g', -1, 64),
		}
		body.Content = append(body.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			node,
		)
	}

	if def.Range != "" {
		add("range", def.Range)
	}
	if def.Description != "" {
		add("description", def.Description)
	}
	addBool("identifier", def.Identifier)
	addBool("required", def.Required)
	addBool("multivalued", def.Multivalued)
	addFloat("minimum_value", def.MinimumValue)
	addFloat("maximum_value", def.MaximumValue)

	return body
}
