package discord

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"clubvenue/internal/domain"
	"clubvenue/internal/domain/entities"
	"clubvenue/internal/ports/input"
	"clubvenue/pkg/datetime"
)

const (
	placeholderStart = "Ex: 2026-03-10T14:00"
	placeholderEnd   = "Ex: 2026-03-10T16:00"
	maxListedVenues  = 10
)

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "venues",
		Description: "List the venues free for a time window, best fit first",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "capacity", Description: "Expected participants", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "start", Description: placeholderStart, Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "end", Description: placeholderEnd, Required: true},
		},
	},
}

// HandleVenuesCommand answers /venues with an ephemeral best-fit list.
func (h *Handler) HandleVenuesCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var capacity int64
	var start, end string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "capacity":
			capacity = opt.IntValue()
		case "start":
			start = opt.StringValue()
		case "end":
			end = opt.StringValue()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	respondEphemeral(s, i.Interaction, h.venuesReply(ctx, capacity, start, end))
}

func (h *Handler) venuesReply(ctx context.Context, capacity int64, start, end string) string {
	startAt, endAt, err := datetime.ParseWindow(start, end, h.loc)
	if err != nil {
		return h.errorReply(err)
	}
	q := input.AvailabilityQuery{RequiredCapacity: int(capacity), Start: &startAt, End: &endAt}
	venues, err := h.venueUseCase.FindAvailable(ctx, q)
	if err != nil {
		log.Printf("❌ /venues failed (capacity=%d): %v", capacity, err)
		return h.errorReply(err)
	}
	if len(venues) == 0 {
		return h.translate("discord.venues.none", nil)
	}
	return h.translate("discord.venues.header", map[string]any{
		"Capacity": capacity,
		"Start":    datetime.Format(startAt, h.loc),
		"End":      datetime.Format(endAt, h.loc),
	}) + "\n" + formatVenueList(venues)
}

// When the error carries a domain code, resolve it via that code.
func (h *Handler) errorReply(err error) string {
	if code := domain.Code(err); code != "" {
		return h.translate("error."+code, nil)
	}
	return h.translate("error.internal", nil)
}

func formatVenueList(venues []entities.Venue) string {
	var b strings.Builder
	for idx, v := range venues {
		if idx == maxListedVenues {
			fmt.Fprintf(&b, "… +%d", len(venues)-maxListedVenues)
			break
		}
		fmt.Fprintf(&b, "%d. **%s** (%d)", idx+1, v.Name, v.Capacity)
		if v.Location != "" {
			fmt.Fprintf(&b, " · %s", v.Location)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
