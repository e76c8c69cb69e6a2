package filter

import (
	"strconv"
	"strings"
)

// Type is the value type a filter compares against.
// Unknown wire values are kept as-is so that the compiler can drop them.
type Type string

const (
	TypeString Type = "string"
	TypeDate   Type = "date"
	TypeAmount Type = "amount"
	TypeArray  Type = "array"
)

// Operator is the comparison a filter applies.
type Operator string

const (
	OpEqual    Operator = "eq"
	OpNotEqual Operator = "ne"
	OpHas      Operator = "has"
	OpNotHas   Operator = "nh"
	OpAny      Operator = "any"
	OpNone     Operator = "none"
	OpRange    Operator = "range"
	OpLess     Operator = "lt"
	OpGreater  Operator = "gt"
	OpBefore   Operator = "before"
	OpAfter    Operator = "after"
)

// compatibility lists the operators each type accepts.
var compatibility = map[Type]map[Operator]struct{}{
	TypeString: set(OpEqual, OpNotEqual, OpHas, OpNotHas, OpAny, OpNone),
	TypeAmount: set(OpEqual, OpNotEqual, OpRange, OpLess, OpGreater),
	TypeDate:   set(OpEqual, OpRange, OpBefore, OpAfter),
	TypeArray:  set(OpEqual, OpNotEqual, OpAny, OpNone),
}

func set(ops ...Operator) map[Operator]struct{} {
	m := make(map[Operator]struct{}, len(ops))
	for _, op := range ops {
		m[op] = struct{}{}
	}
	return m
}

// Supports reports whether the (type, operator) pair is part of the compatibility table.
//
//	string: eq ne has nh any none
//	amount: eq ne range lt gt
//	date:   eq range before after
//	array:  eq ne any none
func Supports(t Type, op Operator) bool {
	ops, ok := compatibility[t]
	if !ok {
		return false
	}
	_, ok = ops[op]
	return ok
}

// Range is the inclusive {from, to} pair carried by range filters.
type Range struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Descriptor is one parsed filter.
//
// Value holds the raw scalar wire value. Range is only set for OpRange and
// PercentOfResult only when a fifth token was supplied.
type Descriptor struct {
	Field           string   `json:"field"`
	Type            Type     `json:"type,omitempty"`
	Operator        Operator `json:"operator,omitempty"`
	Value           string   `json:"value,omitempty"`
	Range           *Range   `json:"range,omitempty"`
	PercentOfResult *float64 `json:"percentOfResult,omitempty"`
}

// Valid reports whether the descriptor would produce a stage when compiled.
// Invalid descriptors are dropped silently, never reported.
func (d Descriptor) Valid() bool {
	if d.Field == "" {
		return false
	}
	if d.Operator == OpRange {
		if d.Range == nil || (d.Range.From == "" && d.Range.To == "") {
			return false
		}
	} else if d.Value == "" {
		return false
	}
	return Supports(d.Type, d.Operator)
}

// String renders the descriptor in the full wire form
// field|type|operator|value[|percent].
func (d Descriptor) String() string {
	value := d.Value
	if d.Operator == OpRange && d.Range != nil {
		value = d.Range.From + rangeSeparator + d.Range.To
	}

	parts := []string{d.Field, string(d.Type), string(d.Operator), value}
	if d.PercentOfResult != nil {
		parts = append(parts, strconv.FormatFloat(*d.PercentOfResult, 'f', -1, 64))
	}
	return strings.Join(parts, tokenSeparator)
}
