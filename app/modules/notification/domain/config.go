package notificationdomain

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// maskPrefix replaces the hidden part of a token.
const maskPrefix = "••••"

// snowflakeTag matches a Discord snowflake id.
const snowflakeTag = "number,min=17,max=20"

var validate = validator.New()

// DefaultTemplate is used when neither the reviewer nor the config supply
// message text.
const DefaultTemplate = "Hello {username}, your application for {form} has been {status}."

// BotConfig is the runtime configuration of the Discord bot.
type BotConfig struct {
	Enabled        bool
	BotToken       string
	DefaultMessage string
	StaffChannelID string
}

// ConfigView is BotConfig as shown to admins. The token is masked.
type ConfigView struct {
	Enabled        bool   `json:"enabled"`
	BotToken       string `json:"botToken"`
	HasToken       bool   `json:"hasToken"`
	DefaultMessage string `json:"defaultMessage"`
	StaffChannelID string `json:"staffChannelId"`
}

// ConfigUpdate carries the members an admin changed. Nil means unchanged.
type ConfigUpdate struct {
	Enabled        *bool   `json:"enabled"`
	BotToken       *string `json:"botToken"`
	DefaultMessage *string `json:"defaultMessage"`
	StaffChannelID *string `json:"staffChannelId"`
}

// View masks the token.
func (c BotConfig) View() ConfigView {
	return ConfigView{
		Enabled:        c.Enabled,
		BotToken:       MaskToken(c.BotToken),
		HasToken:       c.BotToken != "",
		DefaultMessage: c.DefaultMessage,
		StaffChannelID: c.StaffChannelID,
	}
}

// Template returns the configured default message or DefaultTemplate.
func (c BotConfig) Template() string {
	if strings.TrimSpace(c.DefaultMessage) != "" {
		return c.DefaultMessage
	}
	return DefaultTemplate
}

// Apply returns c with u applied and reports whether the token changed.
// A token equal to the masked form is the admin echoing the view back and
// leaves the token unchanged.
func (c BotConfig) Apply(u ConfigUpdate) (BotConfig, bool, error) {
	next := c
	if u.Enabled != nil {
		next.Enabled = *u.Enabled
	}
	if u.DefaultMessage != nil {
		next.DefaultMessage = strings.TrimSpace(*u.DefaultMessage)
	}
	if u.StaffChannelID != nil {
		id := strings.TrimSpace(*u.StaffChannelID)
		if id != "" && validate.Var(id, snowflakeTag) != nil {
			return c, false, ErrInvalidChannel
		}
		next.StaffChannelID = id
	}
	if u.BotToken != nil {
		token := strings.TrimSpace(*u.BotToken)
		if !strings.HasPrefix(token, maskPrefix) {
			next.BotToken = token
		}
	}
	if next.Enabled && next.BotToken == "" {
		return c, false, ErrBotTokenRequired
	}
	return next, next.BotToken != c.BotToken, nil
}

// MaskToken keeps only the last four characters of token.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if utf8.RuneCountInString(token) <= 4 {
		return maskPrefix
	}
	r := []rune(token)
	return maskPrefix + string(r[len(r)-4:])
}
