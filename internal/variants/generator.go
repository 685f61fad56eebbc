package variants

import "strings"

// Canonical attribute type ids. Any other id is carried as the variant's
// single custom attribute pair.
const (
	AttributeColor   = "color"
	AttributeSize    = "size"
	AttributeVoltage = "voltage"
)

// nameSeparator joins option values into the variant name, in
// type-selection order.
const nameSeparator = " - "

// AttributeType is one selectable axis of variation with its options in
// display order.
type AttributeType struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// Generated is one concrete combination produced by the generator. The
// caller assigns identity (sku, product row) afterwards.
type Generated struct {
	Name string `json:"name"`

	Color   *string `json:"color,omitempty"`
	Size    *string `json:"size,omitempty"`
	Voltage *string `json:"voltage,omitempty"`

	CustomName  *string `json:"custom_name,omitempty"`
	CustomValue *string `json:"custom_value,omitempty"`
}

// Generate expands the selected attribute types into the full cartesian
// set of variants. Types without options are dropped before expansion;
// if nothing is left the result is empty, not an error. The expansion is
// deterministic: the same ordered input yields the same ordered output.
//
// Only one non-canonical attribute pair fits on a variant; when several
// custom types are selected the last one wins. Callers that need richer
// custom attributes must extend the variant shape first.
func Generate(types []AttributeType) []Generated {
	selected := make([]AttributeType, 0, len(types))
	for _, t := range types {
		if len(t.Options) > 0 {
			selected = append(selected, t)
		}
	}
	if len(selected) == 0 {
		return nil
	}

	tuples := combine(selected)
	generated := make([]Generated, 0, len(tuples))
	for _, tuple := range tuples {
		generated = append(generated, fromTuple(selected, tuple))
	}
	return generated
}

// combine builds the cartesian product of the option lists:
// combine([]) = [[]]; combine([h, t...]) prefixes each option of h onto
// every tail of combine(t...).
func combine(types []AttributeType) [][]string {
	if len(types) == 0 {
		return [][]string{{}}
	}
	head := types[0]
	tails := combine(types[1:])

	result := make([][]string, 0, len(head.Options)*len(tails))
	for _, option := range head.Options {
		for _, tail := range tails {
			tuple := make([]string, 0, 1+len(tail))
			tuple = append(tuple, option)
			tuple = append(tuple, tail...)
			result = append(result, tuple)
		}
	}
	return result
}

func fromTuple(types []AttributeType, tuple []string) Generated {
	variant := Generated{Name: strings.Join(tuple, nameSeparator)}
	for i, t := range types {
		value := tuple[i]
		switch t.ID {
		case AttributeColor:
			variant.Color = &value
		case AttributeSize:
			variant.Size = &value
		case AttributeVoltage:
			variant.Voltage = &value
		default:
			name := t.Name
			variant.CustomName = &name
			variant.CustomValue = &value
		}
	}
	return variant
}
