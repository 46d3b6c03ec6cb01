package scrape

import (
	"encoding/json"
	"strings"
	"time"
)

// galleryPayload is the strict shape of the site's gallery endpoint response.
type galleryPayload struct {
	Items []rawItem `json:"items"`
}

// rawItem mirrors one record as the site serializes it. Several image fields
// may carry the usable thumbnail; see thumbnailOf for the fallback order.
type rawItem struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Thumbnail string     `json:"thumbnail_url"`
	Preview   string     `json:"preview_url"`
	Cover     string     `json:"cover_url"`
	FullImage string     `json:"full_image_url"`
	PageURL   string     `json:"url"`
	PostedAt  *time.Time `json:"posted_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// decodeGalleryPayload parses a gallery endpoint response body. A body with
// no recognizable payload returns ErrNoData; records lacking their native id
// are dropped silently since they cannot be deduplicated or stored.
func decodeGalleryPayload(body string) ([]RemoteItem, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" || !strings.HasPrefix(trimmed, "{") {
		return nil, ErrNoData
	}

	var payload galleryPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return nil, ErrNoData
	}
	if payload.Items == nil {
		return nil, ErrNoData
	}

	return convertRawItems(payload.Items), nil
}

func convertRawItems(raw []rawItem) []RemoteItem {
	items := make([]RemoteItem, 0, len(raw))
	for _, r := range raw {
		if r.ID == "" {
			continue
		}
		thumb := thumbnailOf(r)
		items = append(items, RemoteItem{
			NativeID:     r.ID,
			Title:        r.Title,
			ThumbnailURL: thumb,
			FullImageURL: fullImageOf(r, thumb),
			PageURL:      r.PageURL,
			PostedAt:     r.PostedAt,
			UpdatedAt:    r.UpdatedAt,
		})
	}
	return items
}

// thumbnailOf falls through the candidate image fields in order, ending at
// empty string. Storage accepts empty as "no image", never as an error.
func thumbnailOf(r rawItem) string {
	for _, candidate := range []string{r.Thumbnail, r.Preview, r.Cover, r.FullImage} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// fullImageOf prefers the explicit full-resolution field, then derives one
// from the thumbnail path convention.
func fullImageOf(r rawItem, thumb string) string {
	if r.FullImage != "" {
		return r.FullImage
	}
	if strings.Contains(thumb, "/thumb/") {
		return strings.Replace(thumb, "/thumb/", "/full/", 1)
	}
	return ""
}
