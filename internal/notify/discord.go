package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/veleda/arttrack/internal/domain"
)

// messageSender is the slice of discordgo.Session the notifier uses
type messageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier posts new-item batches as an embed to one channel.
type DiscordNotifier struct {
	session   messageSender
	channelID string
}

// NewDiscordNotifier creates a notifier backed by an open discordgo session
func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{session: session, channelID: channelID}
}

func (n *DiscordNotifier) Name() string { return ChannelDiscord }

// NotifyNewItems sends one embed per batch, listing up to MaxEmbedItems works
func (n *DiscordNotifier) NotifyNewItems(_ context.Context, _ uuid.UUID, creatorUsername string, items []domain.Item) error {
	if len(items) == 0 {
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("New artwork from %s", creatorUsername),
		Fields: make([]*discordgo.MessageEmbedField, 0, min(len(items), MaxEmbedItems)),
	}
	if items[0].ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: items[0].ThumbnailURL}
	}

	for i, it := range items {
		if i == MaxEmbedItems {
			embed.Footer = &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("and %d more", len(items)-MaxEmbedItems),
			}
			break
		}
		title := it.Title
		if title == "" {
			title = it.NativeID
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  title,
			Value: it.PageURL,
		})
	}

	if _, err := n.session.ChannelMessageSendEmbed(n.channelID, embed); err != nil {
		return fmt.Errorf(ErrFmtDiscordSend, err)
	}
	return nil
}
