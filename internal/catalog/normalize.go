// Package catalog adapts raw gateway payloads into the normalized catalog
// shape and orchestrates the browse, search, and detail flows on top of it.
package catalog

import (
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/user/sevenxhub-go/internal/model"
)

// mockCatalogSize is the size of the placeholder catalog fabricated when
// the upstream is completely unreachable and demo fallback is enabled.
const mockCatalogSize = 10

// ToCatalogPage converts a raw list payload into the normalized page shape.
// When the payload is absent or malformed and demoFallback is set, a
// deterministic placeholder catalog is substituted and marked Demo so
// consumers can flag it; with the fallback off, the failure is surfaced as a
// non-OK page carrying the upstream message.
func ToCatalogPage(raw *model.ListPayload, demoFallback bool) *model.CatalogPage {
	if raw != nil && raw.Status == http.StatusOK && raw.Result.Files != nil {
		data := make([]model.Video, len(raw.Result.Files))
		copy(data, raw.Result.Files)
		return &model.CatalogPage{
			Result:     model.CatalogOK,
			Msg:        "Success",
			TotalCount: raw.TotalCount,
			Data:       data,
		}
	}

	if demoFallback {
		return &model.CatalogPage{
			Result:     model.CatalogOK,
			Msg:        "Success",
			TotalCount: mockCatalogSize,
			Data:       MockVideos(mockCatalogSize),
			Demo:       true,
		}
	}

	msg := "Error fetching videos"
	if raw != nil && raw.Msg != "" {
		msg = raw.Msg
	}
	return &model.CatalogPage{Msg: msg}
}

// NormalizeSearchResult fills per-field defaults on a dedicated-search item:
// missing length becomes "0", missing created becomes the current time.
// Views already decodes to zero when absent.
func NormalizeSearchResult(v model.Video) model.Video {
	if v.Length == "" {
		v.Length = "0"
	}
	if v.Size == "" {
		v.Size = "0"
	}
	if v.Created == "" {
		v.Created = time.Now().UTC().Format(time.RFC3339)
	}
	return v
}

// MockVideos fabricates a bounded placeholder catalog with predictable,
// non-colliding identifiers. It exists so a browse surface stays renderable
// with zero upstream connectivity; pages built from it are demo content.
func MockVideos(count int) []model.Video {
	now := time.Now()
	ts := now.UnixMilli()

	videos := make([]model.Video, count)
	for i := range videos {
		img := fmt.Sprintf("https://images.unsplash.com/photo-%d?ixlib=rb-1.2.1&auto=format&fit=crop&w=800&q=80", 1500000000+i*1000)
		videos[i] = model.Video{
			FileCode:    fmt.Sprintf("mock_%d_%d", i, ts),
			Title:       fmt.Sprintf("Sample Video %d", i+1),
			Length:      strconv.Itoa(rand.Intn(600)),
			SplashImg:   img,
			SingleImg:   img,
			Uploaded:    now.Add(-time.Duration(rand.Int63n(int64(115 * 24 * time.Hour)))).UTC().Format(time.RFC3339),
			Views:       model.ViewCount(rand.Intn(10000)),
			CanPlay:     1,
			DownloadURL: "#",
			FldID:       strconv.Itoa(i),
			Public:      "1",
		}
	}
	return videos
}

// DedupeByCode keeps the first occurrence of each file code, preserving
// order. Rendered collections must never hold two entries with the same key.
func DedupeByCode(videos []model.Video) []model.Video {
	seen := make(map[string]struct{}, len(videos))
	out := videos[:0:0]
	for _, v := range videos {
		if _, ok := seen[v.FileCode]; ok {
			continue
		}
		seen[v.FileCode] = struct{}{}
		out = append(out, v)
	}
	return out
}
