package tiktok

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	netUrl "net/url"
	"strings"
	"time"

	"github.com/StounhandJ/luck_xit/internal/utils"
	easyjson "github.com/mailru/easyjson"
)

const (
	BaseUrl = "https://www.tikwm.com/api/"

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 YaBrowser/25.10.0.0 Safari/537.36"
)

var (
	ErrRateLimit = errors.New("rate limit exceeded")
	ErrParse     = errors.New("parse error")
	ErrUnknown   = errors.New("unknown error")
	ErrStatus    = errors.New("unexpected status code")
)

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

func fetchMetadata(ctx context.Context, client Doer, apiURL, postUrl string, timeout time.Duration) (ApiResponse, error) {
	if timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	form := netUrl.Values{
		"url": {postUrl},
		"hd":  {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return ApiResponse{}, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return ApiResponse{}, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			utils.Log.Error(err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return ApiResponse{}, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return ApiResponse{}, err
	}

	var data ApiResponse

	err = easyjson.Unmarshal(b, &data)
	if err != nil {
		return ApiResponse{}, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if data.Code != 0 {
		switch {
		case strings.HasPrefix(data.Msg, "Free Api Limit"):
			return data, ErrRateLimit
		case strings.HasPrefix(data.Msg, "Url parsing is failed"):
			return data, ErrParse
		default:
			return data, fmt.Errorf("%w: code=%d msg=%q", ErrUnknown, data.Code, data.Msg)
		}
	}

	return data, nil
}

type ApiResponse struct {
	Code          int     `json:"code,omitempty"`
	Msg           string  `json:"msg"`
	ProcessedTime float64 `json:"processed_time,omitempty"`
	Data          ApiData `json:"data,omitempty"`
}

type ApiData struct {
	ID           string       `json:"id,omitempty"`
	Title        string       `json:"title,omitempty"`
	Cover        string       `json:"cover,omitempty"`
	OriginCover  string       `json:"origin_cover,omitempty"`
	Duration     float64      `json:"duration,omitempty"`
	Play         string       `json:"play,omitempty"`
	Hdplay       string       `json:"hdplay,omitempty"`
	Wmplay       string       `json:"wmplay,omitempty"`
	Music        string       `json:"music,omitempty"`
	MusicInfo    ApiMusicInfo `json:"music_info,omitempty"`
	PlayCount    int64        `json:"play_count,omitempty"`
	DiggCount    int64        `json:"digg_count,omitempty"`
	CommentCount int64        `json:"comment_count,omitempty"`
	ShareCount   int64        `json:"share_count,omitempty"`
	Author       ApiAuthor    `json:"author,omitempty"`
	Images       []string     `json:"images,omitempty"`
}

type ApiMusicInfo struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title,omitempty"`
	Play     string `json:"play,omitempty"`
	Author   string `json:"author,omitempty"`
	Original bool   `json:"original,omitempty"`
}

type ApiAuthor struct {
	ID       string `json:"id,omitempty"`
	UniqueID string `json:"unique_id,omitempty"`
	Nickname string `json:"nickname,omitempty"`
}
