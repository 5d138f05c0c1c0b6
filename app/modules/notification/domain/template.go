package notificationdomain

import (
	"strings"
	"unicode/utf8"
)

// Discord embed limits.
const (
	MaxDescription = 4096
	MaxFieldValue  = 1024
)

// MessageVars fills the placeholders of a message template.
type MessageVars struct {
	Username string
	Form     string
	Status   string
	Feedback string
}

// Render replaces {username}, {form}, {status} and {feedback} in template.
func Render(template string, v MessageVars) string {
	return strings.NewReplacer(
		"{username}", v.Username,
		"{form}", v.Form,
		"{status}", v.Status,
		"{feedback}", v.Feedback,
	).Replace(template)
}

// Truncate shortens s to at most max runes, ending with an ellipsis when cut.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 1 {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-1]) + "…"
}
