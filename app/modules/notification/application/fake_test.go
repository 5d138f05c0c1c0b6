package notificationservice

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"

	notificationdiscord "github.com/skyrden-airlines/portal/app/modules/notification/infrastructure/discord"
)

type sentMessage struct {
	Target string
	Embed  *discordgo.MessageEmbed
}

// FakeSender records deliveries. SendDMFunc can fail selected users.
type FakeSender struct {
	Token string

	SendDMFunc func(discordUserID string) error

	mu       sync.Mutex
	DMs      []sentMessage
	Channels []sentMessage
	Closed   bool
}

func (f *FakeSender) SendDM(ctx context.Context, discordUserID string, embed *discordgo.MessageEmbed) error {
	if f.SendDMFunc != nil {
		if err := f.SendDMFunc(discordUserID); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DMs = append(f.DMs, sentMessage{Target: discordUserID, Embed: embed})
	return nil
}

func (f *FakeSender) SendChannel(ctx context.Context, channelID string, embed *discordgo.MessageEmbed) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Channels = append(f.Channels, sentMessage{Target: channelID, Embed: embed})
	return nil
}

func (f *FakeSender) Close() error {
	f.Closed = true
	return nil
}

var _ notificationdiscord.Sender = (*FakeSender)(nil)

// FakeFactory hands out FakeSenders and remembers them by token.
type FakeFactory struct {
	Built []*FakeSender
}

func (f *FakeFactory) New(token string) (notificationdiscord.Sender, error) {
	s := &FakeSender{Token: token}
	f.Built = append(f.Built, s)
	return s, nil
}

func (f *FakeFactory) Last() *FakeSender {
	if len(f.Built) == 0 {
		return nil
	}
	return f.Built[len(f.Built)-1]
}
