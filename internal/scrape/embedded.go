package scrape

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/veleda/arttrack/internal/logger"
)

// embeddedStrategy is one named way a profile page can embed its initial
// gallery state. Strategies are tried in order; each returns a typed
// "not present" instead of probing ad hoc shapes.
type embeddedStrategy struct {
	name    string
	extract func(doc *goquery.Document) ([]rawItem, bool)
}

var embeddedStrategies = []embeddedStrategy{
	{name: "next_data", extract: extractNextData},
	{name: "initial_state", extract: extractInitialState},
	{name: "state_script", extract: extractStateScript},
}

// DecodeEmbeddedItems extracts gallery records from a profile page document.
// Returns ErrNoData when no strategy finds a payload.
func DecodeEmbeddedItems(ctx context.Context, html string) ([]RemoteItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, ErrNoData
	}

	for _, strategy := range embeddedStrategies {
		raw, ok := strategy.extract(doc)
		if !ok {
			continue
		}
		logger.FromContext(ctx).Debug(LogMsgStrategyHit, "strategy", strategy.name)
		return convertRawItems(raw), nil
	}
	return nil, ErrNoData
}

// nextDataPayload is the strict shape of a Next.js data script.
type nextDataPayload struct {
	Props struct {
		PageProps struct {
			Gallery galleryPayload `json:"gallery"`
		} `json:"pageProps"`
	} `json:"props"`
}

func extractNextData(doc *goquery.Document) ([]rawItem, bool) {
	text := doc.Find("script#__NEXT_DATA__").First().Text()
	if text == "" {
		return nil, false
	}

	var payload nextDataPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, false
	}
	if payload.Props.PageProps.Gallery.Items == nil {
		return nil, false
	}
	return payload.Props.PageProps.Gallery.Items, true
}

var initialStateRe = regexp.MustCompile(`(?s)window\.__INITIAL_STATE__\s*=\s*(\{.*?\})\s*;`)

// initialStatePayload is the strict shape of the inline state assignment.
type initialStatePayload struct {
	Gallery galleryPayload `json:"gallery"`
}

func extractInitialState(doc *goquery.Document) ([]rawItem, bool) {
	var found []rawItem
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		match := initialStateRe.FindStringSubmatch(s.Text())
		if match == nil {
			return true
		}
		var payload initialStatePayload
		if err := json.Unmarshal([]byte(match[1]), &payload); err != nil {
			return true
		}
		if payload.Gallery.Items == nil {
			return true
		}
		found = payload.Gallery.Items
		return false
	})
	return found, found != nil
}

// DecodeProfileMeta reads display metadata from a profile page's OpenGraph
// tags. Returns ErrNoData when neither tag is present.
func DecodeProfileMeta(html string) (*ProfileMeta, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, ErrNoData
	}

	meta := &ProfileMeta{}
	meta.DisplayName, _ = doc.Find(`meta[property="og:title"]`).First().Attr("content")
	meta.AvatarURL, _ = doc.Find(`meta[property="og:image"]`).First().Attr("content")
	if meta.DisplayName == "" && meta.AvatarURL == "" {
		return nil, ErrNoData
	}
	return meta, nil
}

func extractStateScript(doc *goquery.Document) ([]rawItem, bool) {
	text := doc.Find(`script[type="application/json"][data-state="gallery"]`).First().Text()
	if text == "" {
		return nil, false
	}

	var payload galleryPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, false
	}
	if payload.Items == nil {
		return nil, false
	}
	return payload.Items, true
}
