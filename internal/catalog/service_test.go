package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/user/sevenxhub-go/internal/config"
	"github.com/user/sevenxhub-go/internal/model"
)

// fakeGateway lets each test script the three endpoints independently.
type fakeGateway struct {
	listFn   func(page, perPage int) *model.ListPayload
	searchFn func(term string) *model.SearchPayload
	infoFn   func(code string) *model.InfoPayload

	listCalls   int
	searchCalls int
}

func (f *fakeGateway) ListFiles(ctx context.Context, page, perPage int) *model.ListPayload {
	f.listCalls++
	if f.listFn == nil {
		return &model.ListPayload{Status: 0, Msg: "Error fetching videos"}
	}
	return f.listFn(page, perPage)
}

func (f *fakeGateway) SearchVideos(ctx context.Context, term string) *model.SearchPayload {
	f.searchCalls++
	if f.searchFn == nil {
		return &model.SearchPayload{Status: 0, Msg: "Error searching videos", Result: []model.Video{}}
	}
	return f.searchFn(term)
}

func (f *fakeGateway) GetFileInfo(ctx context.Context, code string) *model.InfoPayload {
	if f.infoFn == nil {
		return &model.InfoPayload{Status: 0, Msg: "Error getting video info"}
	}
	return f.infoFn(code)
}

func testCatalogConfig(demo bool) *config.CatalogConfig {
	return &config.CatalogConfig{
		PageSize:        20,
		SearchScanLimit: 50,
		RelatedLimit:    15,
		DemoFallback:    demo,
	}
}

func listOf(total int, videos ...model.Video) *model.ListPayload {
	return &model.ListPayload{
		Status:     200,
		Msg:        "OK",
		TotalCount: total,
		Result:     model.FileList{Files: videos},
	}
}

func TestSearch_EmptyQuerySkipsNetwork(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw, testCatalogConfig(false))

	results, err := svc.Search(context.Background(), "")
	if err != nil {
		t.Fatalf("Search error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %+v, want empty", results)
	}
	if gw.searchCalls != 0 || gw.listCalls != 0 {
		t.Errorf("network calls = %d/%d, want none", gw.searchCalls, gw.listCalls)
	}
}

func TestSearch_DedicatedEndpointWins(t *testing.T) {
	gw := &fakeGateway{
		searchFn: func(term string) *model.SearchPayload {
			return &model.SearchPayload{
				Status: 200,
				Result: []model.Video{{FileCode: "hit1", Title: "Hit"}},
			}
		},
	}
	svc := NewService(gw, testCatalogConfig(false))

	results, err := svc.Search(context.Background(), "hit")
	if err != nil {
		t.Fatalf("Search error = %v", err)
	}
	if len(results) != 1 || results[0].FileCode != "hit1" {
		t.Fatalf("results = %+v, want one dedicated hit", results)
	}
	if results[0].Length != "0" {
		t.Errorf("Length = %q, want normalized default", results[0].Length)
	}
	if gw.listCalls != 0 {
		t.Errorf("listCalls = %d, want 0 (no fallback on success)", gw.listCalls)
	}
}

func TestSearch_EmptyDedicatedResultIsSuccessNotFallback(t *testing.T) {
	gw := &fakeGateway{
		searchFn: func(term string) *model.SearchPayload {
			return &model.SearchPayload{Status: 200, Result: []model.Video{}}
		},
	}
	svc := NewService(gw, testCatalogConfig(true))

	results, err := svc.Search(context.Background(), "nothing matches this")
	if err != nil {
		t.Fatalf("Search error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %+v, want empty", results)
	}
	if gw.listCalls != 0 {
		t.Errorf("listCalls = %d, want 0 (empty well-formed result is final)", gw.listCalls)
	}
}

func TestSearch_FallbackFiltersCaseInsensitive(t *testing.T) {
	gw := &fakeGateway{
		searchFn: func(term string) *model.SearchPayload {
			return &model.SearchPayload{Status: 0, Msg: "Error searching videos", Result: []model.Video{}}
		},
		listFn: func(page, perPage int) *model.ListPayload {
			if perPage != 50 {
				t.Errorf("fallback perPage = %d, want 50", perPage)
			}
			return listOf(3,
				model.Video{FileCode: "a", Title: "Beach Sunset"},
				model.Video{FileCode: "b", Title: "City Nights"},
				model.Video{FileCode: "c", Title: "SUNSET drive"},
			)
		},
	}
	svc := NewService(gw, testCatalogConfig(false))

	results, err := svc.Search(context.Background(), "sunset")
	if err != nil {
		t.Fatalf("Search error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v, want 2 substring matches", results)
	}
	if results[0].FileCode != "a" || results[1].FileCode != "c" {
		t.Errorf("results = %+v, want a and c in order", results)
	}
}

func TestSearch_FallbackNoMatchesIsEmptyNotError(t *testing.T) {
	gw := &fakeGateway{
		listFn: func(page, perPage int) *model.ListPayload {
			return listOf(1, model.Video{FileCode: "a", Title: "Something Else"})
		},
	}
	svc := NewService(gw, testCatalogConfig(false))

	results, err := svc.Search(context.Background(), "zzz-no-such-title")
	if err != nil {
		t.Fatalf("Search error = %v, want nil for zero matches", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %+v, want empty", results)
	}
}

func TestSearch_BothPathsFail(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw, testCatalogConfig(false))

	_, err := svc.Search(context.Background(), "anything")
	if !errors.Is(err, ErrSearchFailed) {
		t.Errorf("err = %v, want ErrSearchFailed", err)
	}
}

func TestVideoInfo_DirectHit(t *testing.T) {
	gw := &fakeGateway{
		infoFn: func(code string) *model.InfoPayload {
			return &model.InfoPayload{Status: 200, Msg: "OK", Result: &model.Video{FileCode: code, Title: "Found"}}
		},
	}
	svc := NewService(gw, testCatalogConfig(false))

	video, err := svc.VideoInfo(context.Background(), "abc")
	if err != nil {
		t.Fatalf("VideoInfo error = %v", err)
	}
	if video.Title != "Found" {
		t.Errorf("Title = %q, want Found", video.Title)
	}
}

func TestVideoInfo_FallsBackToListScan(t *testing.T) {
	gw := &fakeGateway{
		listFn: func(page, perPage int) *model.ListPayload {
			if perPage != 20 {
				t.Errorf("scan perPage = %d, want page size 20", perPage)
			}
			return listOf(2,
				model.Video{FileCode: "other", Title: "Other"},
				model.Video{FileCode: "abc", Title: "Scanned"},
			)
		},
	}
	svc := NewService(gw, testCatalogConfig(false))

	video, err := svc.VideoInfo(context.Background(), "abc")
	if err != nil {
		t.Fatalf("VideoInfo error = %v", err)
	}
	if video.Title != "Scanned" {
		t.Errorf("Title = %q, want Scanned", video.Title)
	}
}

func TestVideoInfo_NotFound(t *testing.T) {
	gw := &fakeGateway{
		listFn: func(page, perPage int) *model.ListPayload {
			return listOf(1, model.Video{FileCode: "other", Title: "Other"})
		},
	}
	svc := NewService(gw, testCatalogConfig(false))

	_, err := svc.VideoInfo(context.Background(), "missing")
	if !errors.Is(err, ErrVideoNotFound) {
		t.Errorf("err = %v, want ErrVideoNotFound", err)
	}
}

func TestVideoInfo_EmptyCode(t *testing.T) {
	svc := NewService(&fakeGateway{}, testCatalogConfig(false))

	_, err := svc.VideoInfo(context.Background(), "")
	if !errors.Is(err, ErrVideoNotFound) {
		t.Errorf("err = %v, want ErrVideoNotFound", err)
	}
}

func TestRelated_FiltersCurrentVideo(t *testing.T) {
	gw := &fakeGateway{
		listFn: func(page, perPage int) *model.ListPayload {
			if perPage != 15 {
				t.Errorf("related perPage = %d, want 15", perPage)
			}
			return listOf(3,
				model.Video{FileCode: "self"},
				model.Video{FileCode: "r1"},
				model.Video{FileCode: "r2"},
			)
		},
	}
	svc := NewService(gw, testCatalogConfig(false))

	related := svc.Related(context.Background(), "self")
	if len(related) != 2 {
		t.Fatalf("len(related) = %d, want 2", len(related))
	}
	for _, v := range related {
		if v.FileCode == "self" {
			t.Error("related contains the current video")
		}
	}
}

func TestRelated_EmptyOnFailure(t *testing.T) {
	svc := NewService(&fakeGateway{}, testCatalogConfig(false))

	related := svc.Related(context.Background(), "self")
	if related == nil || len(related) != 0 {
		t.Errorf("related = %+v, want empty non-nil", related)
	}
}
