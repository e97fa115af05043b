package record

import (
	"strconv"
)

// Kind tags the scalar carried by a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "invalid"
	}
}

// Value is a single typed attribute of a stored record. Numbers keep
// their decimal text form so no precision is lost between stores.
type Value struct {
	kind Kind
	text string
	b    bool
}

// Record is a stored item: attribute name to typed value.
type Record map[string]Value

func String(s string) Value {
	return Value{kind: KindString, text: s}
}

func Number(n float64) Value {
	return Value{kind: KindNumber, text: strconv.FormatFloat(n, 'f', -1, 64)}
}

// NumberText builds a number from its decimal text, as stores return it.
func NumberText(s string) (Value, error) {
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return Value{}, err
	}

	return Value{kind: KindNumber, text: s}, nil
}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) AsString() (string, bool) {
	return v.text, v.kind == KindString
}

func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}

	n, err := strconv.ParseFloat(v.text, 64)

	return n, err == nil
}

// NumberString returns the decimal text of a number value.
func (v Value) NumberString() (string, bool) {
	return v.text, v.kind == KindNumber
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}
