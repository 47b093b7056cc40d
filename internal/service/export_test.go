package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kapu/bilibili-analyzer-go/internal/domain"
	"go.uber.org/zap"
)

func TestExportWritesSnapshotFile(t *testing.T) {
	dir := t.TempDir()
	exporter := NewExporter(dir, zap.NewNop())

	user := &domain.UserInfo{Mid: 42, Name: "uploader"}
	videos := []*domain.VideoDetail{
		{Bvid: "BV1a", Stats: domain.VideoStats{Bvid: "BV1a", Views: 1000, Likes: 50}},
	}
	stability := &domain.StabilityResult{Overall: 0.7, Level: domain.StabilityGood, VideoCount: 1}

	snapshot := exporter.NewSnapshot(user, videos, stability, nil)
	if snapshot.RunID == "" {
		t.Fatal("snapshot must carry a run id")
	}
	if snapshot.Mid != 42 || snapshot.VideoCount != 1 {
		t.Errorf("unexpected snapshot header: %+v", snapshot)
	}

	path, err := exporter.Export(snapshot)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if path != filepath.Join(dir, "42.json") {
		t.Errorf("unexpected path %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded domain.CreatorSnapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("exported file is not valid JSON: %v", err)
	}
	if decoded.RunID != snapshot.RunID || decoded.Name != "uploader" {
		t.Errorf("round-trip mismatch: %+v", decoded)
	}
	if decoded.Interaction != nil {
		t.Error("nil interaction metrics must stay absent")
	}
	if len(decoded.Videos) != 1 || decoded.Videos[0].Stats.Likes != 50 {
		t.Errorf("unexpected videos payload: %+v", decoded.Videos)
	}

	// no temp file left behind
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should be renamed away")
	}
}

func TestExportDistinctRunIDs(t *testing.T) {
	exporter := NewExporter(t.TempDir(), zap.NewNop())
	user := &domain.UserInfo{Mid: 1}

	a := exporter.NewSnapshot(user, nil, nil, nil)
	b := exporter.NewSnapshot(user, nil, nil, nil)
	if a.RunID == b.RunID {
		t.Error("run ids must differ between snapshots")
	}
}
