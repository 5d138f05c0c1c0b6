package notificationservice

import (
	"time"

	"github.com/bwmarrin/discordgo"

	notificationdomain "github.com/skyrden-airlines/portal/app/modules/notification/domain"
	submissionservice "github.com/skyrden-airlines/portal/app/modules/submission/application"
	submissiondomain "github.com/skyrden-airlines/portal/app/modules/submission/domain"
	submissiondb "github.com/skyrden-airlines/portal/app/modules/submission/infrastructure/repositories"
)

// Embed colours per status.
const (
	colorApproved = 0x2ECC71
	colorRejected = 0xE74C3C
	colorPending  = 0xF1C40F
	colorStaff    = 0x3498DB
)

func statusColor(s submissiondomain.Status) int {
	switch s {
	case submissiondomain.StatusApproved:
		return colorApproved
	case submissiondomain.StatusRejected:
		return colorRejected
	default:
		return colorPending
	}
}

// messageVars collects the template values for r.
func messageVars(r *submissiondb.Response) notificationdomain.MessageVars {
	v := notificationdomain.MessageVars{
		Form:   r.FormTitle(),
		Status: r.Status.Label(),
	}
	if u := r.Applicant(); u != nil {
		v.Username = u.DiscordUsername
	}
	if r.AdminFeedback != nil {
		v.Feedback = *r.AdminFeedback
	}
	return v
}

// reviewEmbed builds the applicant DM.
func reviewEmbed(r *submissiondb.Response, text string) *discordgo.MessageEmbed {
	vars := messageVars(r)
	feedback := vars.Feedback
	if feedback == "" {
		feedback = submissionservice.DefaultFeedback
	}
	return &discordgo.MessageEmbed{
		Title:       "Application " + vars.Status,
		Description: notificationdomain.Truncate(notificationdomain.Render(text, vars), notificationdomain.MaxDescription),
		Color:       statusColor(r.Status),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Form", Value: notificationdomain.Truncate(orDash(vars.Form), notificationdomain.MaxFieldValue), Inline: true},
			{Name: "Status", Value: vars.Status, Inline: true},
			{Name: "Submitted", Value: r.CreatedAt.UTC().Format("2006-01-02 15:04 UTC"), Inline: true},
			{Name: "Feedback", Value: notificationdomain.Truncate(feedback, notificationdomain.MaxFieldValue)},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Skyrden Airlines Recruitment"},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// staffEmbed builds the new-submission notice.
func staffEmbed(p submissiondomain.SubmittedPayload) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "New application received",
		Color: colorStaff,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Form", Value: notificationdomain.Truncate(orDash(p.FormTitle), notificationdomain.MaxFieldValue), Inline: true},
			{Name: "Applicant", Value: orDash(p.DiscordUsername), Inline: true},
			{Name: "Roblox", Value: orDash(p.RobloxUsername), Inline: true},
		},
		Timestamp: p.SubmittedAt.UTC().Format(time.RFC3339),
	}
}

// orDash substitutes empty values; Discord rejects empty field values.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
