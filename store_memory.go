package main

import (
	"context"
	"sync"
)

// MemStore keeps both collections in process memory. Used by tests and by
// local development without a database. A single mutex per store keeps
// id-assignment-plus-insert atomic for each entity kind.
type MemStore struct {
	mu sync.Mutex

	heritageItems  []HeritageItem
	heritageNextID int

	promptTemplates []PromptTemplate
	templateNextID  int
}

func NewMemStore() *MemStore {
	return &MemStore{heritageNextID: 1, templateNextID: 1}
}

func (s *MemStore) ListHeritageItems(_ context.Context) ([]HeritageItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]HeritageItem, len(s.heritageItems))
	copy(out, s.heritageItems)
	return out, nil
}

func (s *MemStore) GetHeritageItemByID(_ context.Context, id int) (*HeritageItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.heritageItems {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemStore) ListHeritageItemsByCategory(_ context.Context, category string) ([]HeritageItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]HeritageItem, 0)
	for _, item := range s.heritageItems {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *MemStore) CreateHeritageItem(_ context.Context, payload HeritageItemPayload) (*HeritageItem, error) {
	if verr := validateHeritagePayload(payload); verr != nil {
		return nil, verr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	item := HeritageItem{
		ID:          s.heritageNextID,
		Title:       payload.Title,
		Description: payload.Description,
		ImageURL:    payload.ImageURL,
		Category:    payload.Category,
	}
	s.heritageNextID++
	s.heritageItems = append(s.heritageItems, item)
	return &item, nil
}

func (s *MemStore) ListPromptTemplates(_ context.Context) ([]PromptTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PromptTemplate, len(s.promptTemplates))
	copy(out, s.promptTemplates)
	return out, nil
}

func (s *MemStore) GetPromptTemplateByID(_ context.Context, id int) (*PromptTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tpl := range s.promptTemplates {
		if tpl.ID == id {
			found := tpl
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemStore) ListPromptTemplatesByCategory(_ context.Context, category string) ([]PromptTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PromptTemplate, 0)
	for _, tpl := range s.promptTemplates {
		if tpl.Category == category {
			out = append(out, tpl)
		}
	}
	return out, nil
}

func (s *MemStore) CreatePromptTemplate(_ context.Context, payload PromptTemplatePayload) (*PromptTemplate, error) {
	if verr := validateTemplatePayload(payload); verr != nil {
		return nil, verr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tpl := PromptTemplate{
		ID:       s.templateNextID,
		Title:    payload.Title,
		Text:     payload.Text,
		Category: payload.Category,
	}
	s.templateNextID++
	s.promptTemplates = append(s.promptTemplates, tpl)
	return &tpl, nil
}
