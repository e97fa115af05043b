package record

import (
	"encoding/json"
	"errors"
	"fmt"
)

// taggedValue is the {"S": ...} / {"N": ...} / {"BOOL": ...} text form.
type taggedValue struct {
	S    *string `json:"S,omitempty"`
	N    *string `json:"N,omitempty"`
	BOOL *bool   `json:"BOOL,omitempty"`
}

var errInvalidValue = errors.New("record: invalid value")

func (v Value) MarshalJSON() ([]byte, error) {
	var t taggedValue

	switch v.kind {
	case KindString:
		t.S = &v.text
	case KindNumber:
		t.N = &v.text
	case KindBool:
		t.BOOL = &v.b
	default:
		return nil, errInvalidValue
	}

	return json.Marshal(t)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var t taggedValue
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}

	switch {
	case t.S != nil:
		*v = String(*t.S)
	case t.N != nil:
		n, err := NumberText(*t.N)
		if err != nil {
			return fmt.Errorf("record: number %q: %w", *t.N, err)
		}
		*v = n
	case t.BOOL != nil:
		*v = Bool(*t.BOOL)
	default:
		return fmt.Errorf("%w: %s", errInvalidValue, data)
	}

	return nil
}
