package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kapu/bilibili-analyzer-go/internal/config"
	"github.com/kapu/bilibili-analyzer-go/internal/domain"
	"github.com/kapu/bilibili-analyzer-go/pkg/errors"
	"go.uber.org/zap"
)

const initialStateMarker = "window.__INITIAL_STATE__="

// PageScraper recovers video statistics from the public video page when
// the REST endpoint is unavailable. The page embeds the same payload in
// an inline INITIAL_STATE script.
type PageScraper struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *zap.Logger
}

type initialState struct {
	VideoData viewPayload `json:"videoData"`
}

func NewPageScraper(cfg config.BilibiliConfig, logger *zap.Logger) *PageScraper {
	return &PageScraper{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.WebBaseURL,
		userAgent:  cfg.UserAgent,
		logger:     logger,
	}
}

// FetchVideoDetail loads the video page and extracts the embedded stats
// payload.
func (s *PageScraper) FetchVideoDetail(ctx context.Context, bvid string) (*domain.VideoDetail, error) {
	pageURL := s.baseURL + "/video/" + bvid

	s.logger.Info("Fetching from video page (FALLBACK MODE)",
		zap.String("bvid", bvid),
		zap.String("url", pageURL),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewScrapeError("video page request failed", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewScrapeError("unexpected status code", pageURL, nil)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.NewScrapeError("video page parse failed", pageURL, err)
	}

	state, ok := extractInitialState(doc)
	if !ok {
		return nil, errors.NewScrapeError("initial state script not found", pageURL, nil)
	}

	var parsed initialState
	if err := json.Unmarshal([]byte(state), &parsed); err != nil {
		return nil, errors.NewScrapeError("initial state decode failed", pageURL, err)
	}
	if parsed.VideoData.Bvid == "" {
		return nil, errors.NewScrapeError("initial state missing video data", pageURL, nil)
	}

	return toVideoDetail(parsed.VideoData), nil
}

// extractInitialState pulls the JSON object assigned to
// window.__INITIAL_STATE__ out of the page's inline scripts. The
// assignment is followed by an IIFE on the same line, so the object ends
// at the first ";(function" after the marker.
func extractInitialState(doc *goquery.Document) (string, bool) {
	var state string
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		idx := strings.Index(text, initialStateMarker)
		if idx < 0 {
			return true
		}

		rest := text[idx+len(initialStateMarker):]
		if end := strings.Index(rest, ";(function"); end >= 0 {
			rest = rest[:end]
		}
		state = strings.TrimSuffix(strings.TrimSpace(rest), ";")
		return false
	})

	return state, state != ""
}
