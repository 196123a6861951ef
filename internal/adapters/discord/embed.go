package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"clubvenue/internal/domain"
	"clubvenue/internal/domain/entities"
)

const (
	colorAnnouncement = 0x2ECC71
	colorSystem       = 0x5865F2
)

func buildNotificationEmbed(n entities.Notification) *discordgo.MessageEmbed {
	color := colorSystem
	if n.Kind == domain.NotificationEventAnnouncement {
		color = colorAnnouncement
	}
	embed := &discordgo.MessageEmbed{
		Title:       n.Title,
		Description: n.Message,
		Color:       color,
		Timestamp:   notificationTime(n).Format(time.RFC3339),
	}
	if n.RelatedEntityType != "" && n.RelatedEntityID != 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s #%d", n.RelatedEntityType, n.RelatedEntityID),
		}
	}
	return embed
}

func notificationTime(n entities.Notification) time.Time {
	if n.CreatedAt.IsZero() {
		return time.Now()
	}
	return n.CreatedAt
}
