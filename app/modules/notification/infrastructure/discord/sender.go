// Package notificationdiscord delivers embeds through the Discord REST API.
package notificationdiscord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// ErrNoToken is returned when a client is built without a bot token.
var ErrNoToken = errors.New("discord bot token is not configured")

// Sender posts embeds to users and channels.
type Sender interface {
	SendDM(ctx context.Context, discordUserID string, embed *discordgo.MessageEmbed) error
	SendChannel(ctx context.Context, channelID string, embed *discordgo.MessageEmbed) error
	Close() error
}

// Factory builds a Sender for a bot token.
type Factory func(token string) (Sender, error)

// restSender uses a discordgo session for REST calls only. The gateway is
// never opened.
type restSender struct {
	session *discordgo.Session
}

// NewSender is the Factory backed by discordgo.
func NewSender(token string) (Sender, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return &restSender{session: session}, nil
}

func (s *restSender) SendDM(ctx context.Context, discordUserID string, embed *discordgo.MessageEmbed) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	channel, err := s.session.UserChannelCreate(discordUserID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}
	return s.SendChannel(ctx, channel.ID, embed)
}

func (s *restSender) SendChannel(ctx context.Context, channelID string, embed *discordgo.MessageEmbed) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func (s *restSender) Close() error {
	return s.session.Close()
}
