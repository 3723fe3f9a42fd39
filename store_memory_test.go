package main

import (
	"context"
	"errors"
	"testing"
)

func TestMemStoreCreateAssignsIncreasingIDs(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	seen := map[int]bool{}
	lastID := 0
	for i := 0; i < 5; i++ {
		item, err := store.CreateHeritageItem(ctx, HeritageItemPayload{
			Title:       "title",
			Description: "description",
			ImageURL:    "https://example.com/img.jpg",
			Category:    "art",
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if item.ID <= lastID {
			t.Fatalf("expected strictly increasing ids, got %d after %d", item.ID, lastID)
		}
		if seen[item.ID] {
			t.Fatalf("duplicate id %d", item.ID)
		}
		seen[item.ID] = true
		lastID = item.ID
	}
}

func TestMemStoreIndependentIDSequences(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	item, err := store.CreateHeritageItem(ctx, HeritageItemPayload{
		Title: "t", Description: "d", ImageURL: "u", Category: "art",
	})
	if err != nil {
		t.Fatalf("create heritage item failed: %v", err)
	}
	tpl, err := store.CreatePromptTemplate(ctx, PromptTemplatePayload{
		Title: "t", Text: "x", Category: "nature",
	})
	if err != nil {
		t.Fatalf("create prompt template failed: %v", err)
	}

	if item.ID != 1 || tpl.ID != 1 {
		t.Fatalf("expected both kinds to start at 1, got heritage=%d template=%d", item.ID, tpl.ID)
	}
}

func TestMemStoreRoundTrip(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	payload := HeritageItemPayload{
		Title:       "전통 미술",
		Description: "desc",
		ImageURL:    "https://example.com/a.jpg",
		Category:    "art",
	}
	created, err := store.CreateHeritageItem(ctx, payload)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := store.GetHeritageItemByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected item, got absent")
	}
	if *got != *created {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, created)
	}
	if got.Title != payload.Title || got.Category != payload.Category {
		t.Fatalf("payload fields lost: %+v", got)
	}
}

func TestMemStoreGetByIDAbsent(t *testing.T) {
	store := NewMemStore()

	item, err := store.GetHeritageItemByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item != nil {
		t.Fatalf("expected absent, got %+v", item)
	}
}

func TestMemStoreListPreservesInsertionOrder(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if _, err := store.CreatePromptTemplate(ctx, PromptTemplatePayload{
			Title: title, Text: "text", Category: "nature",
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	templates, err := store.ListPromptTemplates(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(templates) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(templates))
	}
	for i, want := range []string{"first", "second", "third"} {
		if templates[i].Title != want {
			t.Fatalf("order broken at %d: got %s, want %s", i, templates[i].Title, want)
		}
	}
}

func TestMemStoreListByCategoryExactMatch(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	categories := []string{"art", "music", "art", "Art"}
	for _, cat := range categories {
		if _, err := store.CreateHeritageItem(ctx, HeritageItemPayload{
			Title: "t", Description: "d", ImageURL: "u", Category: cat,
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	art, err := store.ListHeritageItemsByCategory(ctx, "art")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(art) != 2 {
		t.Fatalf("expected 2 exact matches for 'art' (case-sensitive), got %d", len(art))
	}
	for _, item := range art {
		if item.Category != "art" {
			t.Fatalf("filter returned wrong category: %s", item.Category)
		}
	}
}

func TestMemStoreListByCategoryUnknownIsEmpty(t *testing.T) {
	store := NewMemStore()

	items, err := store.ListHeritageItemsByCategory(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(items) != 0 {
		t.Fatalf("expected no matches, got %d", len(items))
	}
}

func TestMemStoreCreateValidation(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	_, err := store.CreateHeritageItem(ctx, HeritageItemPayload{
		Title: "", Description: "d", ImageURL: "u", Category: "art",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["title"]; !ok {
		t.Fatalf("expected title in failed fields, got %v", verr.Fields)
	}

	// Failed validation must not insert a record or consume an id.
	items, err := store.ListHeritageItems(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("store size changed after failed create: %d", len(items))
	}

	created, err := store.CreateHeritageItem(ctx, HeritageItemPayload{
		Title: "ok", Description: "d", ImageURL: "u", Category: "art",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("id sequence advanced by failed create: got %d", created.ID)
	}
}

func TestMemStoreCreateValidationWhitespaceOnly(t *testing.T) {
	store := NewMemStore()

	_, err := store.CreatePromptTemplate(context.Background(), PromptTemplatePayload{
		Title: "t", Text: "   ", Category: "nature",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for blank text, got %v", err)
	}
	if _, ok := verr.Fields["text"]; !ok {
		t.Fatalf("expected text in failed fields, got %v", verr.Fields)
	}
}

func TestMemStoreConcurrentCreates(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	const workers = 8
	const perWorker = 25

	done := make(chan error, workers)
	for w := 0; w < workers; w++ {
		go func() {
			for i := 0; i < perWorker; i++ {
				if _, err := store.CreatePromptTemplate(ctx, PromptTemplatePayload{
					Title: "t", Text: "x", Category: "nature",
				}); err != nil {
					done <- err
					return
				}
			}
			done <- nil
		}()
	}
	for w := 0; w < workers; w++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent create failed: %v", err)
		}
	}

	templates, err := store.ListPromptTemplates(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(templates) != workers*perWorker {
		t.Fatalf("expected %d templates, got %d", workers*perWorker, len(templates))
	}

	ids := map[int]bool{}
	for _, tpl := range templates {
		if ids[tpl.ID] {
			t.Fatalf("duplicate id assigned concurrently: %d", tpl.ID)
		}
		ids[tpl.ID] = true
	}
}
