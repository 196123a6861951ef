package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"clubvenue/internal/domain/entities"
	"clubvenue/internal/ports/output"
)

var _ output.Notifier = (*Notifier)(nil)

// embedSender is the part of *discordgo.Session the notifier needs.
type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier mirrors notifications as embeds in one announcement channel.
type Notifier struct {
	sender    embedSender
	channelID string
}

func NewNotifier(sender embedSender, channelID string) *Notifier {
	return &Notifier{sender: sender, channelID: channelID}
}

func (n *Notifier) Notify(ctx context.Context, msg entities.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := n.sender.ChannelMessageSendEmbed(n.channelID, buildNotificationEmbed(msg), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord notify (channel=%s): %w", n.channelID, err)
	}
	return nil
}
