package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// HeritageItem is a cultural heritage entry shown on the public site.
// Immutable once created; there is no update or delete path.
type HeritageItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
}

// PromptTemplate is a reusable image-generation prompt entry.
type PromptTemplate struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// HeritageItemPayload is the client-supplied part of a heritage item; the
// store assigns the id.
type HeritageItemPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
}

// PromptTemplatePayload is the client-supplied part of a prompt template.
type PromptTemplatePayload struct {
	Title    string `json:"title"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// ContentStore holds the two public content collections. Get methods return
// (nil, nil) for an unknown id; list methods never return nil slices and
// preserve insertion order. Create validates the payload and assigns the
// next id for that entity kind atomically.
type ContentStore interface {
	ListHeritageItems(ctx context.Context) ([]HeritageItem, error)
	GetHeritageItemByID(ctx context.Context, id int) (*HeritageItem, error)
	ListHeritageItemsByCategory(ctx context.Context, category string) ([]HeritageItem, error)
	CreateHeritageItem(ctx context.Context, payload HeritageItemPayload) (*HeritageItem, error)

	ListPromptTemplates(ctx context.Context) ([]PromptTemplate, error)
	GetPromptTemplateByID(ctx context.Context, id int) (*PromptTemplate, error)
	ListPromptTemplatesByCategory(ctx context.Context, category string) ([]PromptTemplate, error)
	CreatePromptTemplate(ctx context.Context, payload PromptTemplatePayload) (*PromptTemplate, error)
}

// ValidationError reports the missing or empty required fields of a create
// payload. Mapped to HTTP 400 with per-field details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid payload: %s", strings.Join(names, ", "))
}

func validateHeritagePayload(p HeritageItemPayload) *ValidationError {
	fields := map[string]string{}
	requireField(fields, "title", p.Title)
	requireField(fields, "description", p.Description)
	requireField(fields, "imageUrl", p.ImageURL)
	requireField(fields, "category", p.Category)
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateTemplatePayload(p PromptTemplatePayload) *ValidationError {
	fields := map[string]string{}
	requireField(fields, "title", p.Title)
	requireField(fields, "text", p.Text)
	requireField(fields, "category", p.Category)
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func requireField(fields map[string]string, name, value string) {
	if strings.TrimSpace(value) == "" {
		fields[name] = "is required"
	}
}
