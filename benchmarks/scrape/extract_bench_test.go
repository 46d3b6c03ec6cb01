package scrape_bench

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/veleda/arttrack/internal/scrape"
)

// --- Stubs (zero-overhead fakes for benchmarking) ---

type stubFetcher struct {
	pages [][]scrape.RemoteItem
}

func (s *stubFetcher) FetchPage(_ context.Context, _ string, page int) ([]scrape.RemoteItem, error) {
	if page > len(s.pages) {
		return nil, nil
	}
	return s.pages[page-1], nil
}

func fullPages(count int) [][]scrape.RemoteItem {
	pages := make([][]scrape.RemoteItem, count)
	for p := range pages {
		items := make([]scrape.RemoteItem, scrape.PageSize)
		for i := range items {
			items[i] = scrape.RemoteItem{
				NativeID:     fmt.Sprintf("p%d-i%d", p, i),
				Title:        "benchmark artwork",
				ThumbnailURL: "https://cdn.example/thumb/x.jpg",
				PageURL:      "/art/x",
			}
		}
		pages[p] = items
	}
	// Short last page terminates the walk
	pages[count-1] = pages[count-1][:scrape.PageSize/2]
	return pages
}

func embeddedStatePage(items int) string {
	type rawItem struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		ThumbnailURL string `json:"thumbnail_url"`
		URL          string `json:"url"`
	}
	payload := struct {
		Props struct {
			PageProps struct {
				Gallery struct {
					Items []rawItem `json:"items"`
				} `json:"gallery"`
			} `json:"pageProps"`
		} `json:"props"`
	}{}
	for i := 0; i < items; i++ {
		payload.Props.PageProps.Gallery.Items = append(payload.Props.PageProps.Gallery.Items, rawItem{
			ID:           fmt.Sprintf("i%d", i),
			Title:        "benchmark artwork",
			ThumbnailURL: "https://cdn.example/thumb/x.jpg",
			URL:          "/art/x",
		})
	}
	blob, _ := json.Marshal(payload)

	var b strings.Builder
	b.WriteString("<html><head><title>profile</title></head><body>")
	b.WriteString(`<script id="__NEXT_DATA__" type="application/json">`)
	b.Write(blob)
	b.WriteString("</script></body></html>")
	return b.String()
}

func BenchmarkExtractAll(b *testing.B) {
	extractor := scrape.NewExtractor(&stubFetcher{pages: fullPages(10)}, nil, 0)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := extractor.ExtractAll(ctx, "painter"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExtractUntilKnown(b *testing.B) {
	extractor := scrape.NewExtractor(&stubFetcher{pages: fullPages(10)}, nil, 0)
	ctx := context.Background()
	known := func(nativeID string) bool { return strings.HasPrefix(nativeID, "p2-") }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := extractor.ExtractUntilKnown(ctx, "painter", known); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeEmbeddedItems(b *testing.B) {
	html := embeddedStatePage(60)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := scrape.DecodeEmbeddedItems(ctx, html); err != nil {
			b.Fatal(err)
		}
	}
}
