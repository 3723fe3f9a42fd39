package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Content routes are a thin façade over the ContentStore: list (optionally
// filtered by exact category), get-by-id, and create. POST is the only
// mutating route and is deliberately not idempotent; repeated identical
// submissions create distinct rows.

func (a *App) listHeritageItemsHandler(c *gin.Context) {
	ctx := c.Request.Context()

	if category, ok := c.GetQuery("category"); ok {
		items, err := a.store.ListHeritageItemsByCategory(ctx, category)
		if err != nil {
			a.contentError(c, err, "Failed to fetch cultural heritage items")
			return
		}
		c.JSON(http.StatusOK, items)
		return
	}

	items, err := a.store.ListHeritageItems(ctx)
	if err != nil {
		a.contentError(c, err, "Failed to fetch cultural heritage items")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (a *App) getHeritageItemHandler(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	item, err := a.store.GetHeritageItemByID(c.Request.Context(), id)
	if err != nil {
		a.contentError(c, err, "Failed to fetch cultural heritage item")
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cultural heritage item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *App) createHeritageItemHandler(c *gin.Context) {
	var payload HeritageItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cultural heritage item data"})
		return
	}

	item, err := a.store.CreateHeritageItem(c.Request.Context(), payload)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cultural heritage item data", "details": verr.Fields})
			return
		}
		a.contentError(c, err, "Failed to create cultural heritage item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (a *App) listPromptTemplatesHandler(c *gin.Context) {
	ctx := c.Request.Context()

	if category, ok := c.GetQuery("category"); ok {
		templates, err := a.store.ListPromptTemplatesByCategory(ctx, category)
		if err != nil {
			a.contentError(c, err, "Failed to fetch prompt templates")
			return
		}
		c.JSON(http.StatusOK, templates)
		return
	}

	templates, err := a.store.ListPromptTemplates(ctx)
	if err != nil {
		a.contentError(c, err, "Failed to fetch prompt templates")
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (a *App) getPromptTemplateHandler(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	tpl, err := a.store.GetPromptTemplateByID(c.Request.Context(), id)
	if err != nil {
		a.contentError(c, err, "Failed to fetch prompt template")
		return
	}
	if tpl == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prompt template not found"})
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (a *App) createPromptTemplateHandler(c *gin.Context) {
	var payload PromptTemplatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prompt template data"})
		return
	}

	tpl, err := a.store.CreatePromptTemplate(c.Request.Context(), payload)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prompt template data", "details": verr.Fields})
			return
		}
		a.contentError(c, err, "Failed to create prompt template")
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

// intParam parses the :id path segment, writing a 400 response itself when
// the segment is not an integer.
func intParam(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return value, true
}

// contentError logs an unexpected store failure and answers with a stable
// message so internals never leak to the public site.
func (a *App) contentError(c *gin.Context, err error, message string) {
	a.log.Error("content store failure", "path", c.Request.URL.Path, "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
