package app_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"hotel_listings/internal/app"
	"hotel_listings/internal/domain"
)

func TestHotelCreate_NoUploadsNoRow_EmptyImages(t *testing.T) {
	repo := newFakeRepo()
	svc := app.NewHotelService(repo, &fakeImages{}, nil, 0)

	h, err := svc.Create(context.Background(), domain.Hotel{Slug: "a1", Title: ptr("Alpha")}, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h.Images == nil || len(h.Images) != 0 {
		t.Fatalf("expected empty images, got %#v", h.Images)
	}
}

func TestHotelCreate_UploadsWin(t *testing.T) {
	repo := newFakeRepo()
	svc := app.NewHotelService(repo, &fakeImages{}, nil, 0)

	up := []string{"/uploads/1-a.jpg", "/uploads/1-b.jpg"}
	h, err := svc.Create(context.Background(), domain.Hotel{Slug: "a1"}, up)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(h.Images) != 2 || h.Images[0] != up[0] || h.Images[1] != up[1] {
		t.Fatalf("unexpected images: %v", h.Images)
	}
	if repo.calls["HotelImages"] != 0 {
		t.Fatalf("fallback read should be skipped when files are uploaded")
	}
}

func TestHotelCreate_ExistingSlug_Fails(t *testing.T) {
	repo := newFakeRepo()
	repo.hotels["a1"] = domain.Hotel{Slug: "a1", Images: []string{"/uploads/old.jpg"}}
	svc := app.NewHotelService(repo, &fakeImages{}, nil, 0)

	if _, err := svc.Create(context.Background(), domain.Hotel{Slug: "a1"}, nil); err == nil {
		t.Fatalf("expected duplicate slug error")
	}
}

func TestHotelCreate_FallbackReadError(t *testing.T) {
	repo := newFakeRepo()
	repo.err = errors.New("db down")
	svc := app.NewHotelService(repo, &fakeImages{}, nil, 0)

	_, err := svc.Create(context.Background(), domain.Hotel{Slug: "a1"}, nil)
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestHotelUpdate_PreservesImagesWithoutUploads(t *testing.T) {
	repo := newFakeRepo()
	imgs := []string{"/uploads/2.jpg", "/uploads/1.jpg"}
	repo.hotels["a1"] = domain.Hotel{Slug: "a1", Images: imgs, Title: ptr("Alpha"), GuestCount: ptr(int64(2))}
	svc := app.NewHotelService(repo, &fakeImages{}, nil, 0)

	h, err := svc.Update(context.Background(), "a1", domain.Hotel{Title: ptr("Alpha Updated")}, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(h.Images) != 2 || h.Images[0] != imgs[0] || h.Images[1] != imgs[1] {
		t.Fatalf("images not preserved: %v", h.Images)
	}
	if h.GuestCount != nil {
		t.Fatalf("full replace expected, guest_count should be nil")
	}
	if h.Slug != "a1" {
		t.Fatalf("slug comes from the path, got %q", h.Slug)
	}
}

func TestHotelUpdate_MissingRow_NotFound(t *testing.T) {
	svc := app.NewHotelService(newFakeRepo(), &fakeImages{}, nil, 0)

	if _, err := svc.Update(context.Background(), "nope", domain.Hotel{}, nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "nope", domain.Hotel{}, []string{"/uploads/x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound with uploads, got %v", err)
	}
}

func TestHotelDelete_RemovesImagesBestEffort(t *testing.T) {
	repo := newFakeRepo()
	repo.hotels["a1"] = domain.Hotel{Slug: "a1", Images: []string{"/uploads/a", "/uploads/b", "/uploads/gone"}}
	imgs := &fakeImages{failOn: map[string]bool{"/uploads/gone": true}}
	svc := app.NewHotelService(repo, imgs, nil, 0)

	if _, err := svc.Delete(context.Background(), "a1"); err != nil {
		t.Fatalf("delete should not fail on missing file: %v", err)
	}
	sort.Strings(imgs.removed)
	if len(imgs.removed) != 2 || imgs.removed[0] != "/uploads/a" || imgs.removed[1] != "/uploads/b" {
		t.Fatalf("unexpected removals: %v", imgs.removed)
	}
	if _, err := svc.Get(context.Background(), "a1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := svc.Delete(context.Background(), "a1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestHotelGet_CacheMissThenHitThenInvalidate(t *testing.T) {
	repo := newFakeRepo()
	repo.hotels["a1"] = domain.Hotel{Slug: "a1", Images: []string{}, Title: ptr("Alpha")}
	cache := &fakeCache{}
	svc := app.NewHotelService(repo, &fakeImages{}, cache, 10*time.Minute)
	ctx := context.Background()

	// Miss (populates cache)
	if _, err := svc.Get(ctx, "a1"); err != nil {
		t.Fatalf("err: %v", err)
	}
	// Hit
	h, err := svc.Get(ctx, "a1")
	if err != nil || *h.Title != "Alpha" {
		t.Fatalf("unexpected: %+v %v", h, err)
	}
	if repo.calls["GetHotel"] != 1 {
		t.Fatalf("expected 1 repo read, got %d", repo.calls["GetHotel"])
	}

	// Writes evict
	if _, err := svc.Update(ctx, "a1", domain.Hotel{Title: ptr("Beta")}, nil); err != nil {
		t.Fatalf("update: %v", err)
	}
	h, _ = svc.Get(ctx, "a1")
	if *h.Title != "Beta" {
		t.Fatalf("expected fresh title after update, got %s", *h.Title)
	}
}

func TestHotelList_CacheInvalidatedByCreate(t *testing.T) {
	repo := newFakeRepo()
	cache := &fakeCache{}
	svc := app.NewHotelService(repo, &fakeImages{}, cache, time.Minute)
	ctx := context.Background()

	list, err := svc.List(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("unexpected: %v %v", list, err)
	}
	if _, err := svc.Create(ctx, domain.Hotel{Slug: "a1"}, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	list, _ = svc.List(ctx)
	if len(list) != 1 {
		t.Fatalf("expected list to see the new hotel, got %d", len(list))
	}
}

func TestHotelGet_CacheFailureFallsBackToRepo(t *testing.T) {
	repo := newFakeRepo()
	repo.hotels["a1"] = domain.Hotel{Slug: "a1", Images: []string{}}
	svc := app.NewHotelService(repo, &fakeImages{}, &fakeCache{fail: true}, time.Minute)

	if _, err := svc.Get(context.Background(), "a1"); err != nil {
		t.Fatalf("cache errors must not fail reads: %v", err)
	}
	if _, err := svc.Delete(context.Background(), "a1"); err != nil {
		t.Fatalf("cache errors must not fail writes: %v", err)
	}
}
