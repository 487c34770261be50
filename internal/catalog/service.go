package catalog

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/user/sevenxhub-go/internal/config"
	"github.com/user/sevenxhub-go/internal/model"
)

// ErrVideoNotFound reports that no record matches the requested file code.
// It is terminal; retrying the same code will not help.
var ErrVideoNotFound = errors.New("video not found")

// ErrSearchFailed reports that both the dedicated search and the catalog
// scan fallback were unusable.
var ErrSearchFailed = errors.New("failed to search videos")

// Gateway is the slice of the remote API the catalog service consumes.
type Gateway interface {
	ListFiles(ctx context.Context, page, perPage int) *model.ListPayload
	SearchVideos(ctx context.Context, term string) *model.SearchPayload
	GetFileInfo(ctx context.Context, fileCode string) *model.InfoPayload
}

// Service orchestrates catalog reads: paginated pages, search with its
// client-side fallback, and detail lookup with its list-scan fallback.
type Service struct {
	gw           Gateway
	pageSize     int
	scanLimit    int
	relatedLimit int
	demoFallback bool
}

// NewService creates a catalog service over a gateway.
func NewService(gw Gateway, cfg *config.CatalogConfig) *Service {
	return &Service{
		gw:           gw,
		pageSize:     cfg.PageSize,
		scanLimit:    cfg.SearchScanLimit,
		relatedLimit: cfg.RelatedLimit,
		demoFallback: cfg.DemoFallback,
	}
}

// PageSize returns the fixed page size used for browse pagination.
func (s *Service) PageSize() int {
	return s.pageSize
}

// FetchPage returns one normalized catalog page. It never returns an error;
// failures come back as a non-OK page, or as demo content when the
// placeholder fallback is enabled.
func (s *Service) FetchPage(ctx context.Context, page int) *model.CatalogPage {
	return s.fetchSized(ctx, page, s.pageSize)
}

func (s *Service) fetchSized(ctx context.Context, page, perPage int) *model.CatalogPage {
	raw := s.gw.ListFiles(ctx, page, perPage)
	normalized := ToCatalogPage(raw, s.demoFallback)
	if normalized.Demo {
		log.Warn().Int("page", page).Msg("Upstream unreachable, serving placeholder catalog")
	}
	return normalized
}

// Search resolves a query to a result set. The dedicated search endpoint
// wins when it answers with status 200, even with zero hits; otherwise a
// bounded page of the full catalog is filtered by case-insensitive title
// substring. An empty query returns an empty set without touching the
// network.
func (s *Service) Search(ctx context.Context, query string) ([]model.Video, error) {
	if query == "" {
		return []model.Video{}, nil
	}

	sp := s.gw.SearchVideos(ctx, query)
	if sp != nil && sp.Status == http.StatusOK && sp.Result != nil {
		results := make([]model.Video, 0, len(sp.Result))
		for _, item := range sp.Result {
			results = append(results, NormalizeSearchResult(item))
		}
		return DedupeByCode(results), nil
	}

	page := s.fetchSized(ctx, 1, s.scanLimit)
	if page.Result != model.CatalogOK || page.Data == nil {
		return nil, ErrSearchFailed
	}

	needle := strings.ToLower(query)
	filtered := make([]model.Video, 0)
	for _, v := range page.Data {
		if strings.Contains(strings.ToLower(v.Title), needle) {
			filtered = append(filtered, v)
		}
	}
	return DedupeByCode(filtered), nil
}

// VideoInfo resolves a file code to its record. When the info endpoint does
// not yield a usable result the first catalog page is scanned for the code;
// a miss is ErrVideoNotFound.
func (s *Service) VideoInfo(ctx context.Context, fileCode string) (*model.Video, error) {
	if fileCode == "" {
		return nil, ErrVideoNotFound
	}

	info := s.gw.GetFileInfo(ctx, fileCode)
	if info != nil && info.Status == http.StatusOK && info.Result != nil {
		return info.Result, nil
	}

	page := s.fetchSized(ctx, 1, s.pageSize)
	if page.Result != model.CatalogOK || page.Data == nil {
		return nil, errors.New("failed to load video details")
	}
	for i := range page.Data {
		if page.Data[i].FileCode == fileCode {
			return &page.Data[i], nil
		}
	}
	return nil, ErrVideoNotFound
}

// Related returns up to the configured number of records from the front of
// the catalog, with the given code filtered out.
func (s *Service) Related(ctx context.Context, fileCode string) []model.Video {
	page := s.fetchSized(ctx, 1, s.relatedLimit)
	if page.Result != model.CatalogOK || page.Data == nil {
		return []model.Video{}
	}

	related := make([]model.Video, 0, len(page.Data))
	for _, v := range page.Data {
		if v.FileCode == fileCode {
			continue
		}
		related = append(related, v)
	}
	if len(related) > s.relatedLimit {
		related = related[:s.relatedLimit]
	}
	return related
}
