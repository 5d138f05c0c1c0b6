// Package formdomain defines application form fields, the closed set of
// field kinds and how answers to each kind are validated.
package formdomain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FieldKind is the type of a form question.
type FieldKind string

const (
	KindShortText       FieldKind = "short_text"
	KindLongText        FieldKind = "long_text"
	KindMultipleChoice  FieldKind = "multiple_choice"
	KindCheckbox        FieldKind = "checkbox"
	KindDropdown        FieldKind = "dropdown"
	KindNumber          FieldKind = "number"
	KindEmail           FieldKind = "email"
	KindDiscordUsername FieldKind = "discord_username"
	KindRobloxUsername  FieldKind = "roblox_username"
)

// kindAliases maps legacy type names onto kinds.
var kindAliases = map[string]FieldKind{
	"paragraph": KindLongText,
}

// Behaviour describes how a kind is rendered and validated.
type Behaviour struct {
	// Choice kinds carry an options list and answers must come from it.
	Choice bool
	// Multi kinds accept a list of answers.
	Multi bool
	// AutoFilled kinds are default fields populated from the user record.
	AutoFilled bool
	// MaxLength bounds free-text answers, in runes. Zero means unbounded.
	MaxLength int
}

var behaviours = map[FieldKind]Behaviour{
	KindShortText:       {MaxLength: 500},
	KindLongText:        {MaxLength: 5000},
	KindMultipleChoice:  {Choice: true},
	KindCheckbox:        {Choice: true, Multi: true},
	KindDropdown:        {Choice: true},
	KindNumber:          {},
	KindEmail:           {MaxLength: 254},
	KindDiscordUsername: {AutoFilled: true},
	KindRobloxUsername:  {AutoFilled: true},
}

// Kinds returns every field kind.
func Kinds() []FieldKind {
	return []FieldKind{
		KindShortText, KindLongText, KindMultipleChoice, KindCheckbox, KindDropdown,
		KindNumber, KindEmail, KindDiscordUsername, KindRobloxUsername,
	}
}

// ParseFieldKind resolves a type name, accepting legacy aliases.
func ParseFieldKind(s string) (FieldKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if alias, ok := kindAliases[s]; ok {
		return alias, nil
	}
	k := FieldKind(s)
	if _, ok := behaviours[k]; !ok {
		return "", ErrInvalidField.WithMessage(fmt.Sprintf("unknown field type %q", s))
	}
	return k, nil
}

// Behaviour returns the behaviour of k. Unknown kinds behave as short text.
func (k FieldKind) Behaviour() Behaviour {
	if b, ok := behaviours[k]; ok {
		return b
	}
	return behaviours[KindShortText]
}

// UnmarshalJSON accepts aliases such as "paragraph".
func (k *FieldKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	kind, err := ParseFieldKind(s)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Field is one question of a form.
type Field struct {
	ID          string    `json:"id"`
	Type        FieldKind `json:"type"`
	Label       string    `json:"label"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required"`
	Options     []string  `json:"options,omitempty"`
	OrderIndex  int       `json:"order_index"`
	ReadOnly    bool      `json:"read_only,omitempty"`
}

// IsDefault reports whether f is one of the auto-filled identity fields.
func (f Field) IsDefault() bool {
	return f.Type.Behaviour().AutoFilled
}

// DefaultFields are prepended to every form.
func DefaultFields() []Field {
	return []Field{
		{
			ID:       string(KindDiscordUsername),
			Type:     KindDiscordUsername,
			Label:    "Discord Username",
			Required: true,
			ReadOnly: true,
		},
		{
			ID:       string(KindRobloxUsername),
			Type:     KindRobloxUsername,
			Label:    "Roblox Username",
			Required: true,
			ReadOnly: true,
		},
	}
}
