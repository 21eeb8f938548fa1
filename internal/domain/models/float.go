package models

import "encoding/json"

// Float is a float64 that may be undefined. Indicator windows shorter than
// the history and missing fundamentals both surface as Valid=false; consumers
// must skip dependent rules rather than read a zero.
type Float struct {
	Value float64
	Valid bool
}

// FloatFrom returns a defined Float.
func FloatFrom(v float64) Float {
	return Float{Value: v, Valid: true}
}

// Or returns the value, or def when undefined.
func (f Float) Or(def float64) float64 {
	if f.Valid {
		return f.Value
	}
	return def
}

// MarshalJSON encodes undefined values as null.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// UnmarshalJSON decodes null as undefined.
func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		f.Valid = false
		f.Value = 0
		return nil
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}
