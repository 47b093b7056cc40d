package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kapu/bilibili-analyzer-go/internal/config"
	"github.com/kapu/bilibili-analyzer-go/internal/domain"
	"go.uber.org/zap"
)

type fakeSource struct {
	detail *domain.VideoDetail
	err    error
	calls  atomic.Int32
}

func (f *fakeSource) FetchVideoDetail(_ context.Context, bvid string) (*domain.VideoDetail, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	d := *f.detail
	d.Bvid = bvid
	return &d, nil
}

func newTestFetcher(t *testing.T, handler http.Handler, fallback VideoSource) *Fetcher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.Config{
		Bilibili: config.BilibiliConfig{
			BaseURL:      server.URL,
			Timeout:      5 * time.Second,
			RequestDelay: 0,
			UserAgent:    "test-agent",
		},
		Analyze: config.AnalyzeConfig{FetchConcurrency: 2},
	}
	client := NewBilibiliClient(cfg.Bilibili, zap.NewNop())
	return NewFetcher(client, fallback, cfg, zap.NewNop())
}

func viewResponse(bvid string, views int64) string {
	return fmt.Sprintf(`{"code":0,"message":"0","data":{"bvid":%q,"title":"t-%s","stat":{"view":%d}}}`, bvid, bvid, views)
}

func TestFetchVideosKeepsInputOrder(t *testing.T) {
	fetcher := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bvid := r.URL.Query().Get("bvid")
		// slow down the first video so completion order flips
		if bvid == "BV1first" {
			time.Sleep(20 * time.Millisecond)
		}
		w.Write([]byte(viewResponse(bvid, 100)))
	}), nil)

	details, err := fetcher.FetchVideos(context.Background(), []string{"BV1first", "BV1second"})
	if err != nil {
		t.Fatalf("FetchVideos: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("got %d details, want 2", len(details))
	}
	if details[0].Bvid != "BV1first" || details[1].Bvid != "BV1second" {
		t.Errorf("order not preserved: %q, %q", details[0].Bvid, details[1].Bvid)
	}
}

func TestFetchVideoFallsBackToScraper(t *testing.T) {
	fallback := &fakeSource{detail: &domain.VideoDetail{Title: "scraped", Stats: domain.VideoStats{Views: 7}}}
	fetcher := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":-412,"message":"request blocked","data":null}`))
	}), fallback)

	detail, err := fetcher.FetchVideo(context.Background(), "BV1abc")
	if err != nil {
		t.Fatalf("FetchVideo: %v", err)
	}
	if detail.Title != "scraped" {
		t.Errorf("expected fallback result, got %+v", detail)
	}
	if fallback.calls.Load() != 1 {
		t.Errorf("fallback called %d times, want 1", fallback.calls.Load())
	}
}

func TestFetchVideoNoFallbackPropagatesError(t *testing.T) {
	fetcher := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":-404,"message":"video not found","data":null}`))
	}), nil)

	if _, err := fetcher.FetchVideo(context.Background(), "BV1abc"); err == nil {
		t.Fatal("expected error without fallback")
	}
}

func TestFetchRecentUploadsSkipsFailedVideos(t *testing.T) {
	fetcher := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/x/space/arc/search":
			w.Write([]byte(`{"code":0,"message":"0","data":{"list":{"vlist":[
				{"bvid":"BV1ok","title":"fine","created":1700000200},
				{"bvid":"BV1gone","title":"deleted","created":1700000100},
				{"bvid":"BV1ok2","title":"fine too","created":1700000000}
			]},"page":{"count":3,"pn":1,"ps":30}}}`))
		case "/x/web-interface/view":
			bvid := r.URL.Query().Get("bvid")
			if bvid == "BV1gone" {
				w.Write([]byte(`{"code":-404,"message":"video not found","data":null}`))
				return
			}
			w.Write([]byte(viewResponse(bvid, 500)))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}), nil)

	details, err := fetcher.FetchRecentUploads(context.Background(), 42, 10)
	if err != nil {
		t.Fatalf("FetchRecentUploads: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("got %d details, want 2 (failed upload skipped)", len(details))
	}
	if details[0].Bvid != "BV1ok" || details[1].Bvid != "BV1ok2" {
		t.Errorf("unexpected uploads: %q, %q", details[0].Bvid, details[1].Bvid)
	}
}

func TestFetchRecentUploadsHonorsLimit(t *testing.T) {
	var detailCalls atomic.Int32
	fetcher := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/x/space/arc/search":
			if got := r.URL.Query().Get("ps"); got != "2" {
				t.Errorf("page size = %q, want 2", got)
			}
			w.Write([]byte(`{"code":0,"message":"0","data":{"list":{"vlist":[
				{"bvid":"BV1a","title":"a","created":2},
				{"bvid":"BV1b","title":"b","created":1}
			]},"page":{"count":2,"pn":1,"ps":2}}}`))
		case "/x/web-interface/view":
			detailCalls.Add(1)
			w.Write([]byte(viewResponse(r.URL.Query().Get("bvid"), 100)))
		}
	}), nil)

	details, err := fetcher.FetchRecentUploads(context.Background(), 42, 2)
	if err != nil {
		t.Fatalf("FetchRecentUploads: %v", err)
	}
	if len(details) != 2 || detailCalls.Load() != 2 {
		t.Errorf("details=%d calls=%d, want 2/2", len(details), detailCalls.Load())
	}
}

func TestStatsProjections(t *testing.T) {
	details := []*domain.VideoDetail{
		{Bvid: "BV1a", PubDate: 100, Stats: domain.VideoStats{Bvid: "BV1a", Views: 1}},
		{Bvid: "BV1b", PubDate: 200, Stats: domain.VideoStats{Bvid: "BV1b", Views: 2}},
	}

	stats := StatsOf(details)
	if len(stats) != 2 || stats[0].Bvid != "BV1a" || stats[1].Views != 2 {
		t.Errorf("unexpected stats projection: %+v", stats)
	}

	dates := PubDatesOf(details)
	if len(dates) != 2 || dates[0] != 100 || dates[1] != 200 {
		t.Errorf("unexpected pubdate projection: %+v", dates)
	}
}
