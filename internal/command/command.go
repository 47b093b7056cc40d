package command

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kapu/bilibili-analyzer-go/internal/analyzer"
	"github.com/kapu/bilibili-analyzer-go/internal/config"
	"github.com/kapu/bilibili-analyzer-go/internal/domain"
	"github.com/kapu/bilibili-analyzer-go/internal/perf"
	"github.com/kapu/bilibili-analyzer-go/internal/report"
	"github.com/kapu/bilibili-analyzer-go/internal/service"
	"github.com/kapu/bilibili-analyzer-go/internal/util"
	"github.com/kapu/bilibili-analyzer-go/pkg/errors"
	"go.uber.org/zap"
)

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, args []string) error
}

// PromptFunc asks the user for one line of input. Implemented by the
// CLI shell; tests plug in canned answers.
type PromptFunc func(label string) (string, error)

type Dependencies struct {
	Fetcher     *service.Fetcher
	Client      *service.BilibiliClient
	Stability   *analyzer.StabilityAnalyzer
	Interaction *analyzer.InteractionAnalyzer
	Exporter    *service.Exporter
	Formatter   *report.Formatter
	Charts      *report.ChartRenderer
	Monitor     *perf.Monitor
	Analyze     config.AnalyzeConfig
	Out         io.Writer
	Prompt      PromptFunc
	Logger      *zap.Logger
}

func (d *Dependencies) printf(format string, args ...any) {
	fmt.Fprintf(d.Out, format, args...)
}

func (d *Dependencies) println(s string) {
	fmt.Fprintln(d.Out, s)
}

// readBvid returns args[idx] or prompts for it, then validates the BV
// prefix. An empty answer is allowed only when required is false.
func (d *Dependencies) readBvid(args []string, idx int, label string, required bool) (string, error) {
	var value string
	if idx < len(args) {
		value = args[idx]
	} else if d.Prompt != nil {
		answered, err := d.Prompt(label)
		if err != nil {
			return "", err
		}
		value = answered
	}

	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return "", errors.NewValidationError("video id is required", "bvid", value)
		}
		return "", nil
	}
	if !strings.HasPrefix(value, "BV") {
		return "", errors.NewValidationError("video id must start with BV", "bvid", value)
	}
	return value, nil
}

// readMid returns args[idx] or prompts for it, then parses the numeric
// creator id.
func (d *Dependencies) readMid(args []string, idx int, label string) (int64, error) {
	var value string
	if idx < len(args) {
		value = args[idx]
	} else if d.Prompt != nil {
		answered, err := d.Prompt(label)
		if err != nil {
			return 0, err
		}
		value = answered
	}

	value = strings.TrimSpace(value)
	mid, err := strconv.ParseInt(value, 10, 64)
	if err != nil || mid <= 0 {
		return 0, errors.NewValidationError("creator id must be a positive number", "mid", value)
	}
	return mid, nil
}

// fetchCreator resolves a creator's profile and up to limit recent
// uploads, timing both against the monitor.
func (d *Dependencies) fetchCreator(ctx context.Context, mid int64, limit int) (user *userResult, err error) {
	done := d.Monitor.Track(fmt.Sprintf("get_user_info_%d", mid), perf.CategoryNetwork)
	info, err := d.Client.GetUserInfo(ctx, mid)
	done(err == nil)
	if err != nil {
		return nil, err
	}

	done = d.Monitor.Track(fmt.Sprintf("get_user_videos_%d", mid), perf.CategoryNetwork)
	details, err := d.Fetcher.FetchRecentUploads(ctx, mid, limit)
	done(err == nil)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, errors.NewServiceError("creator has no resolvable uploads", "bilibili", "recent_uploads", nil)
	}

	if info.Follower > 0 {
		d.printf("👤 %s · %s followers\n", info.Name, util.FormatCount(info.Follower))
	}
	return &userResult{info: info, details: details}, nil
}

type userResult struct {
	info    *domain.UserInfo
	details []*domain.VideoDetail
}
