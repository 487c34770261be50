// Package gateway wraps the third-party video-hosting REST API behind a
// uniform request/response contract. Every call goes through a CORS relay
// prefix with a static access key, and transport failures are converted to
// sentinel payloads so callers never see a raw network error.
package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/user/sevenxhub-go/internal/config"
	"github.com/user/sevenxhub-go/internal/model"
)

const (
	listPath   = "/file/list"
	searchPath = "/search/videos"
	infoPath   = "/file/info"

	// invalidFileCodesMsg is the documented upstream error that triggers
	// the list-scan fallback in GetFileInfo.
	invalidFileCodesMsg = "Invalid file codes"

	// infoFallbackScan is how many records the fallback list fetch pulls
	// when the info endpoint rejects a file code.
	infoFallbackScan = 50
)

// Client is the HTTP adapter over the upstream catalog API.
type Client struct {
	client      *http.Client
	baseURL     string
	proxyPrefix string
	key         string
	userAgent   string
}

// NewClient creates a gateway client from API configuration.
func NewClient(cfg *config.APIConfig) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		baseURL:     cfg.BaseURL,
		proxyPrefix: cfg.ProxyPrefix,
		key:         cfg.Key,
		userAgent:   cfg.UserAgent,
	}
}

// ListFiles fetches one page of the catalog. On any failure it returns the
// sentinel payload {status:0, msg:"Error fetching videos", result:{files:[]}}
// instead of an error; a status of 0 means "no data, not fatal".
func (c *Client) ListFiles(ctx context.Context, page, perPage int) *model.ListPayload {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	var payload model.ListPayload
	if err := c.get(ctx, listPath, params, &payload); err != nil {
		log.Warn().Err(err).Int("page", page).Msg("List fetch failed")
		return &model.ListPayload{
			Status: 0,
			Msg:    "Error fetching videos",
			Result: model.FileList{Files: []model.Video{}},
		}
	}

	log.Debug().Int("status", payload.Status).Int("page", page).
		Int("count", len(payload.Result.Files)).Msg("List fetch completed")
	return &payload
}

// SearchVideos queries the dedicated search endpoint. Failures yield the
// sentinel payload with an empty flat result array.
func (c *Client) SearchVideos(ctx context.Context, term string) *model.SearchPayload {
	params := url.Values{}
	params.Set("search_term", term)

	var payload model.SearchPayload
	if err := c.get(ctx, searchPath, params, &payload); err != nil {
		log.Warn().Err(err).Str("term", term).Msg("Search fetch failed")
		return &model.SearchPayload{
			Status: 0,
			Msg:    "Error searching videos",
			Result: []model.Video{},
		}
	}

	log.Debug().Int("status", payload.Status).Str("term", term).
		Int("count", len(payload.Result)).Msg("Search fetch completed")
	return &payload
}

// GetFileInfo fetches a single record. The upstream rejects codes it does
// not index with {status:400, msg:"Invalid file codes"}; in that case a
// bounded list fetch is scanned for the code and a success payload is
// synthesized on a hit. Transport failures yield the sentinel payload.
func (c *Client) GetFileInfo(ctx context.Context, fileCode string) *model.InfoPayload {
	params := url.Values{}
	params.Set("file_code", fileCode)

	var payload model.InfoPayload
	if err := c.get(ctx, infoPath, params, &payload); err != nil {
		log.Warn().Err(err).Str("file_code", fileCode).Msg("Info fetch failed")
		return &model.InfoPayload{
			Status: 0,
			Msg:    "Error getting video info",
		}
	}

	if payload.Status == http.StatusBadRequest && payload.Msg == invalidFileCodesMsg {
		log.Info().Str("file_code", fileCode).Msg("Info endpoint rejected code, scanning list")
		list := c.ListFiles(ctx, 1, infoFallbackScan)
		if list.Status == http.StatusOK {
			for i := range list.Result.Files {
				if list.Result.Files[i].FileCode == fileCode {
					return &model.InfoPayload{
						Status: http.StatusOK,
						Msg:    "Success",
						Result: &list.Result.Files[i],
					}
				}
			}
		}
	}

	return &payload
}

// EmbedURL builds the external player URL for a file code.
func EmbedURL(embedBase, fileCode string) string {
	return embedBase + "/" + fileCode
}

// get issues a GET through the relay prefix and decodes the JSON body.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.key)

	target := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	if c.proxyPrefix != "" {
		target = c.proxyPrefix + url.QueryEscape(target)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request error: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body error: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode body error: %w", err)
	}
	return nil
}
