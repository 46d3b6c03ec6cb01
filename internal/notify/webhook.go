// Package notify delivers new-item notifications to external channels. All
// notifiers are fire and forget from the engine's point of view: the sync
// service logs and counts failures but never propagates them.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/veleda/arttrack/internal/domain"
)

// webhookPayload is the JSON body posted to the configured endpoint
type webhookPayload struct {
	AccountID       uuid.UUID     `json:"account_id"`
	CreatorUsername string        `json:"creator_username"`
	Items           []webhookItem `json:"items"`
	SentAt          time.Time     `json:"sent_at"`
}

type webhookItem struct {
	NativeID     string     `json:"native_id"`
	Title        string     `json:"title"`
	PageURL      string     `json:"page_url"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	PostedAt     *time.Time `json:"posted_at,omitempty"`
}

// WebhookNotifier posts new-item batches to a single HTTP endpoint.
type WebhookNotifier struct {
	url    string
	client *http.Client
	now    func() time.Time
}

// NewWebhookNotifier creates a webhook notifier for the given endpoint
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: DefaultTimeout},
		now:    time.Now,
	}
}

func (n *WebhookNotifier) Name() string { return ChannelWebhook }

// NotifyNewItems posts one JSON body per batch. Non-2xx responses are errors.
func (n *WebhookNotifier) NotifyNewItems(ctx context.Context, accountID uuid.UUID, creatorUsername string, items []domain.Item) error {
	payload := webhookPayload{
		AccountID:       accountID,
		CreatorUsername: creatorUsername,
		Items:           make([]webhookItem, len(items)),
		SentAt:          n.now(),
	}
	for i, it := range items {
		payload.Items[i] = webhookItem{
			NativeID:     it.NativeID,
			Title:        it.Title,
			PageURL:      it.PageURL,
			ThumbnailURL: it.ThumbnailURL,
			PostedAt:     it.PostedAt,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf(ErrFmtWebhookRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf(ErrFmtWebhookRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf(ErrFmtWebhookRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf(ErrFmtWebhookStatus, resp.StatusCode)
	}
	return nil
}
