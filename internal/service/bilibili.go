package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kapu/bilibili-analyzer-go/internal/config"
	"github.com/kapu/bilibili-analyzer-go/internal/constants"
	"github.com/kapu/bilibili-analyzer-go/internal/domain"
	"github.com/kapu/bilibili-analyzer-go/pkg/errors"
	"go.uber.org/zap"
)

// BilibiliClient talks to the public Bilibili REST endpoints. Requests
// are single-shot: failures surface to the caller, which may fall back
// to the page scraper.
type BilibiliClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *zap.Logger
}

// apiEnvelope is the standard response wrapper: code 0 means success,
// anything else carries a human-readable message.
type apiEnvelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type statPayload struct {
	View     int64 `json:"view"`
	Danmaku  int64 `json:"danmaku"`
	Reply    int64 `json:"reply"`
	Favorite int64 `json:"favorite"`
	Coin     int64 `json:"coin"`
	Share    int64 `json:"share"`
	Like     int64 `json:"like"`
}

type viewPayload struct {
	Bvid     string       `json:"bvid"`
	Title    string       `json:"title"`
	Pubdate  int64        `json:"pubdate"`
	Duration int          `json:"duration"`
	Owner    domain.Owner `json:"owner"`
	Stat     statPayload  `json:"stat"`
}

type userInfoPayload struct {
	Mid   int64  `json:"mid"`
	Name  string `json:"name"`
	Sign  string `json:"sign"`
	Level int    `json:"level"`
}

type relationStatPayload struct {
	Mid       int64 `json:"mid"`
	Following int64 `json:"following"`
	Follower  int64 `json:"follower"`
}

type userVideosPayload struct {
	List struct {
		Vlist []domain.VideoRef `json:"vlist"`
	} `json:"list"`
	Page struct {
		Count int `json:"count"`
		PN    int `json:"pn"`
		PS    int `json:"ps"`
	} `json:"page"`
}

func NewBilibiliClient(cfg config.BilibiliConfig, logger *zap.Logger) *BilibiliClient {
	return &BilibiliClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		logger:     logger,
	}
}

// GetVideoDetail fetches the metadata and statistics snapshot of a
// single video by its BV identifier.
func (c *BilibiliClient) GetVideoDetail(ctx context.Context, bvid string) (*domain.VideoDetail, error) {
	params := url.Values{}
	params.Set("bvid", bvid)

	var payload viewPayload
	if err := c.get(ctx, constants.APIConfig.VideoViewPath, params, &payload); err != nil {
		return nil, err
	}

	return toVideoDetail(payload), nil
}

// GetUserInfo fetches a creator's public profile by mid, including the
// follower counters from the relation endpoint. A failed relation call
// only degrades the profile, it doesn't fail it.
func (c *BilibiliClient) GetUserInfo(ctx context.Context, mid int64) (*domain.UserInfo, error) {
	params := url.Values{}
	params.Set("mid", strconv.FormatInt(mid, 10))

	var payload userInfoPayload
	if err := c.get(ctx, constants.APIConfig.UserInfoPath, params, &payload); err != nil {
		return nil, err
	}

	info := &domain.UserInfo{
		Mid:   payload.Mid,
		Name:  payload.Name,
		Sign:  payload.Sign,
		Level: payload.Level,
	}

	statParams := url.Values{}
	statParams.Set("vmid", strconv.FormatInt(mid, 10))

	var relation relationStatPayload
	if err := c.get(ctx, constants.APIConfig.UserStatPath, statParams, &relation); err != nil {
		c.logger.Warn("Relation stat unavailable",
			zap.Int64("mid", mid),
			zap.Error(err),
		)
		return info, nil
	}
	info.Follower = relation.Follower
	info.Following = relation.Following

	return info, nil
}

// GetUserVideos fetches one page of a creator's upload list, newest
// first.
func (c *BilibiliClient) GetUserVideos(ctx context.Context, mid int64, page, pageSize int) ([]domain.VideoRef, error) {
	params := url.Values{}
	params.Set("mid", strconv.FormatInt(mid, 10))
	params.Set("pn", strconv.Itoa(page))
	params.Set("ps", strconv.Itoa(pageSize))
	params.Set("order", "pubdate")

	var payload userVideosPayload
	if err := c.get(ctx, constants.APIConfig.UserVideosPath, params, &payload); err != nil {
		return nil, err
	}

	return payload.List.Vlist, nil
}

func (c *BilibiliClient) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewServiceError("bilibili request failed", "bilibili", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewServiceError("bilibili response read failed", "bilibili", path, err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("Bilibili API returned HTTP error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return errors.NewAPIError(fmt.Sprintf("HTTP %d", resp.StatusCode), resp.StatusCode, map[string]any{
			"url": reqURL,
		})
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return errors.NewAPIError("malformed response envelope", resp.StatusCode, map[string]any{
			"url": reqURL,
		})
	}

	if envelope.Code != 0 {
		c.logger.Warn("Bilibili API returned error code",
			zap.String("path", path),
			zap.Int("code", envelope.Code),
			zap.String("message", envelope.Message),
		)
		return errors.NewAPIError(envelope.Message, resp.StatusCode, map[string]any{
			"code": envelope.Code,
			"url":  reqURL,
		})
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return errors.NewAPIError("malformed response data", resp.StatusCode, map[string]any{
				"url": reqURL,
			})
		}
	}
	return nil
}

func toVideoDetail(payload viewPayload) *domain.VideoDetail {
	return &domain.VideoDetail{
		Bvid:     payload.Bvid,
		Title:    payload.Title,
		Owner:    payload.Owner,
		PubDate:  payload.Pubdate,
		Duration: payload.Duration,
		Stats: domain.VideoStats{
			Bvid:      payload.Bvid,
			Views:     payload.Stat.View,
			Likes:     payload.Stat.Like,
			Coins:     payload.Stat.Coin,
			Favorites: payload.Stat.Favorite,
			Comments:  payload.Stat.Reply,
			Shares:    payload.Stat.Share,
			Danmaku:   payload.Stat.Danmaku,
		},
	}
}
