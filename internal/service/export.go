package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/kapu/bilibili-analyzer-go/internal/domain"
	"github.com/kapu/bilibili-analyzer-go/pkg/errors"
	"go.uber.org/zap"
)

// Exporter writes creator snapshots to JSON files. Each export is a
// one-shot output; nothing here is ever read back.
type Exporter struct {
	dir    string
	logger *zap.Logger
}

func NewExporter(dir string, logger *zap.Logger) *Exporter {
	return &Exporter{dir: dir, logger: logger}
}

// NewSnapshot assembles an export payload with a fresh run id.
func (e *Exporter) NewSnapshot(user *domain.UserInfo, videos []*domain.VideoDetail,
	stability *domain.StabilityResult, interaction *domain.InteractionMetrics) *domain.CreatorSnapshot {

	return &domain.CreatorSnapshot{
		RunID:       uuid.NewString(),
		Mid:         user.Mid,
		Name:        user.Name,
		Follower:    user.Follower,
		CreatedAt:   time.Now(),
		VideoCount:  len(videos),
		Stability:   stability,
		Interaction: interaction,
		Videos:      videos,
	}
}

// Export writes the snapshot to <dir>/<mid>.json atomically
// (write to a temp file, then rename) and returns the final path.
func (e *Exporter) Export(snapshot *domain.CreatorSnapshot) (string, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", errors.NewServiceError("export dir create failed", "exporter", "mkdir", err)
	}

	path := filepath.Join(e.dir, fmt.Sprintf("%d.json", snapshot.Mid))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", errors.NewServiceError("snapshot marshal failed", "exporter", "marshal", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", errors.NewServiceError("snapshot write failed", "exporter", "write", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", errors.NewServiceError("snapshot rename failed", "exporter", "rename", err)
	}

	e.logger.Info("Creator snapshot exported",
		zap.String("run_id", snapshot.RunID),
		zap.Int64("mid", snapshot.Mid),
		zap.Int("videos", snapshot.VideoCount),
		zap.String("path", path),
	)
	return path, nil
}
