package main

import (
	"context"
	"database/sql"
	"errors"
)

// PGStore serves both collections from PostgreSQL. SERIAL columns provide
// the per-kind monotonic id sequences, so concurrent creates cannot collide.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) ListHeritageItems(ctx context.Context) ([]HeritageItem, error) {
	return s.queryHeritageItems(ctx, `
		SELECT id, title, description, image_url, category
		FROM cultural_heritage_items
		ORDER BY id ASC
	`)
}

func (s *PGStore) ListHeritageItemsByCategory(ctx context.Context, category string) ([]HeritageItem, error) {
	return s.queryHeritageItems(ctx, `
		SELECT id, title, description, image_url, category
		FROM cultural_heritage_items
		WHERE category = $1
		ORDER BY id ASC
	`, category)
}

func (s *PGStore) queryHeritageItems(ctx context.Context, query string, args ...any) ([]HeritageItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]HeritageItem, 0)
	for rows.Next() {
		var item HeritageItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.ImageURL, &item.Category); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PGStore) GetHeritageItemByID(ctx context.Context, id int) (*HeritageItem, error) {
	var item HeritageItem
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, image_url, category
		FROM cultural_heritage_items
		WHERE id = $1
	`, id).Scan(&item.ID, &item.Title, &item.Description, &item.ImageURL, &item.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *PGStore) CreateHeritageItem(ctx context.Context, payload HeritageItemPayload) (*HeritageItem, error) {
	if verr := validateHeritagePayload(payload); verr != nil {
		return nil, verr
	}

	item := HeritageItem{
		Title:       payload.Title,
		Description: payload.Description,
		ImageURL:    payload.ImageURL,
		Category:    payload.Category,
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO cultural_heritage_items (title, description, image_url, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, payload.Title, payload.Description, payload.ImageURL, payload.Category).Scan(&item.ID)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *PGStore) ListPromptTemplates(ctx context.Context) ([]PromptTemplate, error) {
	return s.queryPromptTemplates(ctx, `
		SELECT id, title, text, category
		FROM prompt_templates
		ORDER BY id ASC
	`)
}

func (s *PGStore) ListPromptTemplatesByCategory(ctx context.Context, category string) ([]PromptTemplate, error) {
	return s.queryPromptTemplates(ctx, `
		SELECT id, title, text, category
		FROM prompt_templates
		WHERE category = $1
		ORDER BY id ASC
	`, category)
}

func (s *PGStore) queryPromptTemplates(ctx context.Context, query string, args ...any) ([]PromptTemplate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]PromptTemplate, 0)
	for rows.Next() {
		var tpl PromptTemplate
		if err := rows.Scan(&tpl.ID, &tpl.Title, &tpl.Text, &tpl.Category); err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

func (s *PGStore) GetPromptTemplateByID(ctx context.Context, id int) (*PromptTemplate, error) {
	var tpl PromptTemplate
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, text, category
		FROM prompt_templates
		WHERE id = $1
	`, id).Scan(&tpl.ID, &tpl.Title, &tpl.Text, &tpl.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &tpl, nil
}

func (s *PGStore) CreatePromptTemplate(ctx context.Context, payload PromptTemplatePayload) (*PromptTemplate, error) {
	if verr := validateTemplatePayload(payload); verr != nil {
		return nil, verr
	}

	tpl := PromptTemplate{
		Title:    payload.Title,
		Text:     payload.Text,
		Category: payload.Category,
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO prompt_templates (title, text, category)
		VALUES ($1, $2, $3)
		RETURNING id
	`, payload.Title, payload.Text, payload.Category).Scan(&tpl.ID)
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}
