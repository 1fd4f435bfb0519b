package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type SpecKind int

const (
	SpecText SpecKind = iota
	SpecNumber
	SpecBool
	SpecOption
)

// SpecValue is one typed entry of a product's specification map.
type SpecValue struct {
	Kind SpecKind
	Str  string
	Num  float64
	Bool bool
}

func TextValue(s string) SpecValue    { return SpecValue{Kind: SpecText, Str: s} }
func NumberValue(f float64) SpecValue { return SpecValue{Kind: SpecNumber, Num: f} }
func BoolValue(b bool) SpecValue      { return SpecValue{Kind: SpecBool, Bool: b} }
func OptionValue(s string) SpecValue  { return SpecValue{Kind: SpecOption, Str: s} }

func (v SpecValue) String() string {
	switch v.Kind {
	case SpecNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case SpecBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// IsEmpty reports a blank textual value. Numbers and booleans are never empty.
func (v SpecValue) IsEmpty() bool {
	switch v.Kind {
	case SpecText, SpecOption:
		return strings.TrimSpace(v.Str) == ""
	}
	return false
}

func (v SpecValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case SpecNumber:
		return json.Marshal(v.Num)
	case SpecBool:
		return json.Marshal(v.Bool)
	default:
		return json.Marshal(v.Str)
	}
}

// UnmarshalJSON never fails on well-formed JSON: stored specs predate type
// validation, so arrays and objects degrade to their raw text.
func (v *SpecValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = TextValue("")
	case string:
		*v = TextValue(x)
	case float64:
		*v = NumberValue(x)
	case bool:
		*v = BoolValue(x)
	default:
		*v = TextValue(string(data))
	}
	return nil
}

// ParseNumber parses a finite decimal. NaN and infinities cannot be stored in
// jsonb and are rejected.
func ParseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Coerce converts v into the shape declared by t, or fails with ErrValidation.
// Text accepts any scalar. Options are only checked when the characteristic
// actually declares some.
func (t CharacteristicType) Coerce(v SpecValue, opts CharacteristicOptions) (SpecValue, error) {
	switch t {
	case CharacteristicNumber:
		switch v.Kind {
		case SpecNumber:
			if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
				return SpecValue{}, fmt.Errorf("%w: %v is not a finite number", ErrValidation, v.Num)
			}
			return v, nil
		case SpecText, SpecOption:
			f, ok := ParseNumber(v.Str)
			if !ok {
				return SpecValue{}, fmt.Errorf("%w: %q is not a number", ErrValidation, v.Str)
			}
			return NumberValue(f), nil
		}
		return SpecValue{}, fmt.Errorf("%w: boolean given for number", ErrValidation)

	case CharacteristicBoolean:
		switch v.Kind {
		case SpecBool:
			return v, nil
		case SpecText, SpecOption:
			b, err := strconv.ParseBool(strings.TrimSpace(v.Str))
			if err != nil {
				return SpecValue{}, fmt.Errorf("%w: %q is not a boolean", ErrValidation, v.Str)
			}
			return BoolValue(b), nil
		}
		return SpecValue{}, fmt.Errorf("%w: number given for boolean", ErrValidation)

	case CharacteristicSelect:
		if v.Kind == SpecBool {
			return SpecValue{}, fmt.Errorf("%w: boolean given for select", ErrValidation)
		}
		s := v.String()
		if len(opts) > 0 {
			if _, ok := opts.Find(s); !ok {
				return SpecValue{}, fmt.Errorf("%w: %q is not a declared option", ErrValidation, s)
			}
		}
		return OptionValue(s), nil

	default:
		return TextValue(v.String()), nil
	}
}

// Specs is a product's key -> value bag, keyed by characteristic key and
// stored as jsonb.
type Specs map[string]SpecValue

func (s Specs) Value() (driver.Value, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s)
}

func (s *Specs) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*s = Specs{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("specs: unsupported scan type %T", src)
	}
	out := Specs{}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*s = out
	return nil
}
