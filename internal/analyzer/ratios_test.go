package analyzer

import (
	"math"
	"testing"

	"github.com/kapu/bilibili-analyzer-go/internal/domain"
)

const tolerance = 1e-12

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestComputeRatios(t *testing.T) {
	stats := domain.VideoStats{
		Bvid:      "BV1xx411c7mD",
		Views:     1000,
		Likes:     200,
		Coins:     50,
		Favorites: 30,
		Comments:  40,
		Shares:    10,
		Danmaku:   80,
	}

	row := ComputeRatios(stats)

	if row.Stats != stats {
		t.Fatalf("row should carry the input stats unchanged, got %+v", row.Stats)
	}

	want := domain.RatioSet{
		LikeRate:     0.2,
		CoinRate:     0.05,
		FavoriteRate: 0.03,
		CommentRate:  0.04,
		ShareRate:    0.01,
		DanmakuRate:  0.08,
	}
	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"like", row.Ratios.LikeRate, want.LikeRate},
		{"coin", row.Ratios.CoinRate, want.CoinRate},
		{"favorite", row.Ratios.FavoriteRate, want.FavoriteRate},
		{"comment", row.Ratios.CommentRate, want.CommentRate},
		{"share", row.Ratios.ShareRate, want.ShareRate},
		{"danmaku", row.Ratios.DanmakuRate, want.DanmakuRate},
	}
	for _, c := range checks {
		if !almostEqual(c.got, c.want) {
			t.Errorf("%s rate = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestComputeRatiosZeroViews(t *testing.T) {
	row := ComputeRatios(domain.VideoStats{
		Bvid:      "BV1zero",
		Views:     0,
		Likes:     5,
		Coins:     7,
		Favorites: 9,
		Comments:  11,
		Shares:    13,
		Danmaku:   15,
	})

	if row.Ratios != (domain.RatioSet{}) {
		t.Fatalf("zero-view video must yield all-zero ratios, got %+v", row.Ratios)
	}
}

func TestComputeRatiosIsPure(t *testing.T) {
	stats := domain.VideoStats{Bvid: "BV1abc", Views: 321, Likes: 45, Danmaku: 6}

	first := ComputeRatios(stats)
	second := ComputeRatios(stats)

	if first != second {
		t.Fatalf("two calls on the same input diverged: %+v vs %+v", first, second)
	}
}

func TestAggregatePreservesOrderAndCount(t *testing.T) {
	for _, count := range []int{1, 2} {
		inputs := make([]domain.VideoStats, 0, count)
		for i := 0; i < count; i++ {
			inputs = append(inputs, domain.VideoStats{
				Bvid:  "BV" + string(rune('A'+i)),
				Views: int64(100 * (i + 1)),
				Likes: int64(10 * (i + 1)),
			})
		}

		rows := Aggregate(inputs)

		if len(rows) != count {
			t.Fatalf("Aggregate(%d inputs) returned %d rows", count, len(rows))
		}
		for i, row := range rows {
			if row.Stats.Bvid != inputs[i].Bvid {
				t.Errorf("row %d holds %q, want %q", i, row.Stats.Bvid, inputs[i].Bvid)
			}
			if !almostEqual(row.Ratios.LikeRate, 0.1) {
				t.Errorf("row %d like rate = %v, want 0.1", i, row.Ratios.LikeRate)
			}
		}
	}
}

func TestAggregateEmpty(t *testing.T) {
	if rows := Aggregate(nil); len(rows) != 0 {
		t.Fatalf("Aggregate(nil) = %d rows, want 0", len(rows))
	}
}
