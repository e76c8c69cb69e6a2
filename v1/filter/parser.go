package filter

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	tokenSeparator = "|"
	rangeSeparator = "~"
	listSeparator  = ","
)

var (
	datePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(~\d{4}-\d{2}-\d{2})?$`)
	amountPattern = regexp.MustCompile(`^[0-9.]+$`)

	// forcedStringFields never infer to amount, even when the value is numeric.
	forcedStringFields = map[string]struct{}{"name": {}, "id": {}, "cancellationType": {}}

	// forcedExactFields default to eq instead of has.
	forcedExactFields = map[string]struct{}{"id": {}, "_id": {}}
)

// Parse turns one filter parameter into a Descriptor.
//
// Two shapes are accepted:
//
//	field|type|operator|value[|percent]
//	field|value
//
// In the short shape type and operator are inferred from the value. Empty type or
// operator tokens in the full shape are inferred the same way. Parse never fails:
// malformed input yields a descriptor whose Valid method reports false.
func Parse(param string) Descriptor {
	tokens := strings.Split(param, tokenSeparator)
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}

	var d Descriptor
	switch {
	case len(tokens) == 2:
		d.Field = tokens[0]
		d.Value = tokens[1]
	case len(tokens) >= 4:
		d.Field = tokens[0]
		d.Type = Type(tokens[1])
		d.Operator = Operator(tokens[2])
		d.Value = tokens[3]
	default:
		// Neither shape; keep the field so the descriptor is still identifiable in logs.
		d.Field = tokens[0]
		return d
	}

	if len(tokens) >= 5 {
		if p, err := strconv.ParseFloat(tokens[4], 64); err == nil && !math.IsInf(p, 0) && !math.IsNaN(p) {
			d.PercentOfResult = &p
		}
	}

	inferred := d.Type == ""
	if inferred {
		d.Type = inferType(d.Field, d.Value)
	}
	if d.Operator == "" {
		d.Operator = inferOperator(d.Field, d.Value)
		if d.Operator == OpAny && inferred {
			d.Type = TypeArray
		}
	}

	if d.Operator == OpRange {
		from, to, _ := strings.Cut(d.Value, rangeSeparator)
		d.Range = &Range{From: from, To: to}
	}

	return d
}

// ParseMany parses every parameter in order. Malformed parameters are kept;
// the compiler drops them.
func ParseMany(params []string) []Descriptor {
	descriptors := make([]Descriptor, 0, len(params))
	for _, p := range params {
		descriptors = append(descriptors, Parse(p))
	}
	return descriptors
}

// inferType applies the short-form type rules. A comma always wins, so
// "1,2" is an array rather than an amount.
func inferType(field, value string) Type {
	switch {
	case strings.Contains(value, listSeparator):
		return TypeArray
	case datePattern.MatchString(value):
		return TypeDate
	case amountPattern.MatchString(value) && !isForcedString(field):
		return TypeAmount
	default:
		return TypeString
	}
}

func inferOperator(field, value string) Operator {
	switch {
	case strings.Contains(value, listSeparator):
		return OpAny
	case strings.Contains(value, rangeSeparator):
		return OpRange
	case isForcedExact(field):
		return OpEqual
	default:
		return OpHas
	}
}

func isForcedString(field string) bool {
	_, ok := forcedStringFields[field]
	return ok
}

func isForcedExact(field string) bool {
	_, ok := forcedExactFields[field]
	return ok
}
