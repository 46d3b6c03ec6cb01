package scrape

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGalleryPayload(t *testing.T) {
	posted := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		body      string
		wantItems int
		wantErr   error
	}{
		{
			name:      "valid payload",
			body:      fmt.Sprintf(`{"items":[{"id":"a1","title":"T","thumbnail_url":"t.jpg","url":"/view/a1","posted_at":%q}]}`, posted.Format(time.RFC3339)),
			wantItems: 1,
		},
		{name: "empty items is a valid empty page", body: `{"items":[]}`, wantItems: 0},
		{name: "empty body", body: "", wantErr: ErrNoData},
		{name: "html instead of json", body: "<html><body>Just a moment...</body></html>", wantErr: ErrNoData},
		{name: "json without items field", body: `{"error":"not found"}`, wantErr: ErrNoData},
		{name: "malformed json", body: `{"items":[`, wantErr: ErrNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := decodeGalleryPayload(tt.body)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, tt.wantItems)
		})
	}
}

func TestDecodeDropsRecordsWithoutNativeID(t *testing.T) {
	body := `{"items":[{"id":"keep","title":"a"},{"id":"","title":"dropped"},{"title":"also dropped"}]}`

	items, err := decodeGalleryPayload(body)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "keep", items[0].NativeID)
}

func TestThumbnailFallbackChain(t *testing.T) {
	tests := []struct {
		name string
		raw  rawItem
		want string
	}{
		{name: "thumbnail wins", raw: rawItem{Thumbnail: "t", Preview: "p", Cover: "c"}, want: "t"},
		{name: "preview second", raw: rawItem{Preview: "p", Cover: "c"}, want: "p"},
		{name: "cover third", raw: rawItem{Cover: "c", FullImage: "f"}, want: "c"},
		{name: "full image last", raw: rawItem{FullImage: "f"}, want: "f"},
		{name: "nothing yields empty string", raw: rawItem{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, thumbnailOf(tt.raw))
		})
	}
}

func TestFullImageDerivedFromThumbnail(t *testing.T) {
	raw := rawItem{ID: "x", Thumbnail: "https://cdn.example/thumb/x.jpg"}
	items := convertRawItems([]rawItem{raw})
	require.Len(t, items, 1)
	assert.Equal(t, "https://cdn.example/full/x.jpg", items[0].FullImageURL)

	explicit := rawItem{ID: "y", Thumbnail: "https://cdn.example/thumb/y.jpg", FullImage: "https://cdn.example/orig/y.png"}
	items = convertRawItems([]rawItem{explicit})
	require.Len(t, items, 1)
	assert.Equal(t, "https://cdn.example/orig/y.png", items[0].FullImageURL)
}

func TestDecodeEmbeddedItemsStrategyOrder(t *testing.T) {
	ctx := context.Background()

	nextData := `<html><head><script id="__NEXT_DATA__" type="application/json">
		{"props":{"pageProps":{"gallery":{"items":[{"id":"from-next"}]}}}}
	</script></head><body></body></html>`

	initialState := `<html><body><script>
		window.__INITIAL_STATE__ = {"gallery":{"items":[{"id":"from-state"}]}};
	</script></body></html>`

	stateScript := `<html><body><script type="application/json" data-state="gallery">
		{"items":[{"id":"from-script"}]}
	</script></body></html>`

	tests := []struct {
		name   string
		html   string
		wantID string
	}{
		{name: "next data script", html: nextData, wantID: "from-next"},
		{name: "inline initial state", html: initialState, wantID: "from-state"},
		{name: "json state script", html: stateScript, wantID: "from-script"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := DecodeEmbeddedItems(ctx, tt.html)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, tt.wantID, items[0].NativeID)
		})
	}
}

func TestDecodeEmbeddedItemsNotPresent(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		html string
	}{
		{name: "plain page", html: `<html><body><h1>profile</h1></body></html>`},
		{name: "malformed next data", html: `<html><script id="__NEXT_DATA__">{oops}</script></html>`},
		{name: "state without gallery", html: `<html><script>window.__INITIAL_STATE__ = {"user":{}};</script></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEmbeddedItems(ctx, tt.html)
			assert.ErrorIs(t, err, ErrNoData)
		})
	}
}

func TestNavigationErrorKindMatching(t *testing.T) {
	timeout := &NavigationError{URL: "u", Kind: NavKindTimeout, Err: context.DeadlineExceeded}
	network := &NavigationError{URL: "u", Kind: NavKindNetwork, Err: fmt.Errorf("dns failure")}

	assert.ErrorIs(t, timeout, &NavigationError{})
	assert.ErrorIs(t, timeout, &NavigationError{Kind: NavKindTimeout})
	assert.NotErrorIs(t, timeout, &NavigationError{Kind: NavKindNetwork})
	assert.ErrorIs(t, network, &NavigationError{Kind: NavKindNetwork})
	assert.ErrorIs(t, timeout, context.DeadlineExceeded)
}
