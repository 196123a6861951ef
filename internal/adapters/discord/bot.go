package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

// Bot is the Discord adapter: it hosts the /venues command and exposes the
// session used by the channel notifier.
type Bot struct {
	session *discordgo.Session
	handler *Handler
}

// NewBot creates the Discord session and wires the interaction handler.
func NewBot(token string, handler *Handler) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	bot := &Bot{session: s, handler: handler}
	bot.setupHandlers()
	return bot, nil
}

// Session exposes the underlying session for the channel notifier.
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	switch i.ApplicationCommandData().Name {
	case "venues":
		b.handler.HandleVenuesCommand(s, i)
	}
}

// Start opens the session, registers commands and blocks until ctx is done.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer b.session.Close()

	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd); err != nil {
			log.Printf("⚠️ Failed to register command %s: %v", cmd.Name, err)
		}
	}

	log.Println("🤖 Discord bot online.")
	<-ctx.Done()
	return nil
}
