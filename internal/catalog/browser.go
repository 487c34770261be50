package catalog

import (
	"context"
	"sync"

	"github.com/user/sevenxhub-go/internal/model"
)

// PageFetcher supplies normalized catalog pages to a browse session.
// *Service satisfies it.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) *model.CatalogPage
	PageSize() int
}

// BrowserState is a point-in-time snapshot of a browse session.
type BrowserState struct {
	Videos     []model.Video `json:"videos"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	TotalCount int           `json:"total_count"`
	IsLoading  bool          `json:"is_loading"`
	Error      string        `json:"error,omitempty"`
	Demo       bool          `json:"demo,omitempty"`
}

// Browser owns the paginated browse state: videos accumulate across pages
// (append, not replace) and are de-duplicated by file code, so re-fetching a
// page can never double-render a record. Loads are stamped with a generation
// counter and stale completions are discarded, so the newest request always
// wins when pages change rapidly.
type Browser struct {
	fetcher PageFetcher

	mu         sync.Mutex
	videos     []model.Video
	seen       map[string]struct{}
	page       int
	totalPages int
	totalCount int
	loading    bool
	errMsg     string
	demo       bool
	gen        uint64
}

// NewBrowser creates an empty browse session.
func NewBrowser(fetcher PageFetcher) *Browser {
	return &Browser{
		fetcher:    fetcher,
		seen:       make(map[string]struct{}),
		page:       1,
		totalPages: 1,
	}
}

// LoadPage fetches the given page and folds it into the session. Completions
// superseded by a later LoadPage call are dropped.
func (b *Browser) LoadPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}

	b.mu.Lock()
	b.gen++
	gen := b.gen
	b.page = page
	b.loading = true
	b.errMsg = ""
	b.mu.Unlock()

	payload := b.fetcher.FetchPage(ctx, page)

	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.gen {
		// A newer load superseded this one while it was in flight.
		return
	}
	b.loading = false

	switch {
	case payload == nil || payload.Result != model.CatalogOK:
		b.errMsg = "Failed to load videos"
		if payload != nil && payload.Msg != "" {
			b.errMsg = payload.Msg
		}
	case payload.Data == nil:
		b.errMsg = "Invalid response format from API"
	default:
		for _, v := range payload.Data {
			if _, ok := b.seen[v.FileCode]; ok {
				continue
			}
			b.seen[v.FileCode] = struct{}{}
			b.videos = append(b.videos, v)
		}
		b.totalCount = payload.TotalCount
		b.totalPages = totalPages(payload.TotalCount, b.fetcher.PageSize())
		b.demo = payload.Demo
	}
}

// NextPage advances the session by one page.
func (b *Browser) NextPage(ctx context.Context) {
	b.mu.Lock()
	next := b.page + 1
	b.mu.Unlock()
	b.LoadPage(ctx, next)
}

// DismissError clears the error state so the session can be re-triggered.
func (b *Browser) DismissError() {
	b.mu.Lock()
	b.errMsg = ""
	b.mu.Unlock()
}

// State returns a snapshot of the session; the videos slice is a copy.
func (b *Browser) State() BrowserState {
	b.mu.Lock()
	defer b.mu.Unlock()

	videos := make([]model.Video, len(b.videos))
	copy(videos, b.videos)

	return BrowserState{
		Videos:     videos,
		Page:       b.page,
		TotalPages: b.totalPages,
		TotalCount: b.totalCount,
		IsLoading:  b.loading,
		Error:      b.errMsg,
		Demo:       b.demo,
	}
}

// totalPages computes ceil(total/pageSize), never less than 1.
func totalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}
