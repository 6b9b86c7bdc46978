package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// UnmarshalJSON accepts the weight either as a JSON number or as a string,
// since form-driven clients usually send the raw field text. Fields of the
// wrong JSON type yield ErrInvalidInput.
func (in *ClassifyInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name   string          `json:"name"`
		Weight json.RawMessage `json:"weight"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("%w: %s", ErrInvalidInput, typeErr.Field)
		}
		return err
	}
	in.Name = raw.Name
	in.Weight = ""

	w := strings.TrimSpace(string(raw.Weight))
	switch {
	case w == "" || w == "null":
	case strings.HasPrefix(w, `"`):
		if err := json.Unmarshal(raw.Weight, &in.Weight); err != nil {
			return fmt.Errorf("%w: weight: %v", ErrInvalidInput, err)
		}
	default:
		var n json.Number
		if err := json.Unmarshal(raw.Weight, &n); err != nil {
			return fmt.Errorf("%w: weight %s", ErrInvalidInput, w)
		}
		in.Weight = n.String()
	}
	return nil
}
