package formdomain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// NormalizeFields validates admin-supplied fields and returns the stored
// list: default fields first, then the custom fields in order, renumbered
// 0..n-1. Default fields in the input are ignored and replaced.
func NormalizeFields(input []Field) ([]Field, error) {
	custom := make([]Field, 0, len(input))
	for _, f := range input {
		if f.IsDefault() {
			continue
		}
		custom = append(custom, f)
	}
	if len(custom) == 0 {
		return nil, ErrInvalidField.WithMessage("a form needs at least one question")
	}

	sort.SliceStable(custom, func(i, j int) bool { return custom[i].OrderIndex < custom[j].OrderIndex })

	out := DefaultFields()
	seen := make(map[string]bool, len(input)+len(out))
	for _, f := range out {
		seen[f.ID] = true
	}

	for i, f := range custom {
		normalized, err := normalizeField(f)
		if err != nil {
			return nil, ErrInvalidField.WithMessage(fmt.Sprintf("question %d: %s", i+1, err.Error()))
		}
		if seen[normalized.ID] {
			return nil, ErrInvalidField.WithMessage(fmt.Sprintf("question %d: duplicate field id %q", i+1, normalized.ID))
		}
		seen[normalized.ID] = true
		out = append(out, normalized)
	}

	for i := range out {
		out[i].OrderIndex = i
	}
	return out, nil
}

func normalizeField(f Field) (Field, error) {
	if _, ok := behaviours[f.Type]; !ok {
		return f, fmt.Errorf("unknown field type %q", f.Type)
	}
	f.Label = strings.TrimSpace(f.Label)
	if f.Label == "" {
		return f, fmt.Errorf("label is required")
	}
	f.ID = strings.TrimSpace(f.ID)
	if f.ID == "" {
		f.ID = "field_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	}
	f.ReadOnly = false

	b := f.Type.Behaviour()
	if !b.Choice {
		if len(f.Options) > 0 {
			return f, fmt.Errorf("%s questions cannot have options", f.Type)
		}
		f.Options = nil
		return f, nil
	}

	if len(f.Options) == 0 {
		return f, fmt.Errorf("%s questions need at least one option", f.Type)
	}
	options := make([]string, 0, len(f.Options))
	seen := make(map[string]bool, len(f.Options))
	for _, o := range f.Options {
		o = strings.TrimSpace(o)
		if o == "" {
			return f, fmt.Errorf("options cannot be empty")
		}
		if seen[o] {
			return f, fmt.Errorf("duplicate option %q", o)
		}
		seen[o] = true
		options = append(options, o)
	}
	f.Options = options
	return f, nil
}
