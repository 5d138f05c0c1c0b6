package formdomain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Answer is the response to one field: a single value, or a list for
// checkbox fields.
type Answer struct {
	Values []string
	List   bool
}

// Text returns a single-valued answer.
func Text(s string) Answer {
	return Answer{Values: []string{s}}
}

// List returns a multi-valued answer.
func List(values ...string) Answer {
	return Answer{Values: values, List: true}
}

// String joins list answers with ", ".
func (a Answer) String() string {
	return strings.Join(a.Values, ", ")
}

// IsEmpty reports whether the answer carries no non-blank value.
func (a Answer) IsEmpty() bool {
	for _, v := range a.Values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.List {
		values := a.Values
		if values == nil {
			values = []string{}
		}
		return json.Marshal(values)
	}
	if len(a.Values) == 0 {
		return []byte(`""`), nil
	}
	return json.Marshal(a.Values[0])
}

// UnmarshalJSON accepts a string, a list of strings, a number or a boolean.
func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = Answer{}
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Text(s)
	case len(data) > 0 && data[0] == '[':
		var values []string
		if err := json.Unmarshal(data, &values); err != nil {
			return ErrInvalidAnswer.WithMessage("list answers must contain only text")
		}
		*a = List(values...)
	case bytes.Equal(data, []byte("true")) || bytes.Equal(data, []byte("false")):
		*a = Text(string(data))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return ErrInvalidAnswer.WithMessage("answers must be text, a number or a list of text")
		}
		*a = Text(n.String())
	}
	return nil
}

// Responses maps field ids to answers.
type Responses map[string]Answer

// Autofill holds the values of the default fields.
type Autofill map[FieldKind]string

// ValidateResponses checks answers against fields and returns what should be
// stored: auto-filled fields overwritten from autofill, optional empty
// answers omitted and keys that match no field dropped.
func ValidateResponses(fields []Field, in Responses, autofill Autofill) (Responses, error) {
	out := make(Responses, len(fields))
	for _, f := range fields {
		if f.IsDefault() {
			out[f.ID] = Text(autofill[f.Type])
			continue
		}

		a, ok := in[f.ID]
		if !ok || a.IsEmpty() {
			if f.Required {
				return nil, ErrMissingAnswer.WithMessage(fmt.Sprintf("%q is required", f.Label))
			}
			continue
		}

		normalized, err := ValidateAnswer(f, a)
		if err != nil {
			return nil, err
		}
		out[f.ID] = normalized
	}
	return out, nil
}

// ValidateAnswer checks a non-empty answer against one field.
func ValidateAnswer(f Field, a Answer) (Answer, error) {
	b := f.Type.Behaviour()
	invalid := func(format string, args ...any) error {
		return ErrInvalidAnswer.WithMessage(fmt.Sprintf("%q: ", f.Label) + fmt.Sprintf(format, args...))
	}

	values := make([]string, 0, len(a.Values))
	for _, v := range a.Values {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}

	if !b.Multi {
		if len(values) != 1 {
			return Answer{}, invalid("expects a single answer")
		}
		v := values[0]
		if b.MaxLength > 0 && utf8.RuneCountInString(v) > b.MaxLength {
			return Answer{}, invalid("must be at most %d characters", b.MaxLength)
		}
		if b.Choice && !slices.Contains(f.Options, v) {
			return Answer{}, invalid("%q is not one of the options", v)
		}
		switch f.Type {
		case KindNumber:
			n, err := strconv.ParseFloat(v, 64)
			if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
				return Answer{}, invalid("must be a number")
			}
		case KindEmail:
			if err := validate.Var(v, "email"); err != nil {
				return Answer{}, invalid("must be an email address")
			}
		}
		return Text(v), nil
	}

	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if !slices.Contains(f.Options, v) {
			return Answer{}, invalid("%q is not one of the options", v)
		}
		if seen[v] {
			return Answer{}, invalid("%q is selected twice", v)
		}
		seen[v] = true
	}
	return List(values...), nil
}
