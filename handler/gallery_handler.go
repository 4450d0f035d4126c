package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"mavryck/dto"
	"mavryck/model"
	"mavryck/utils"
)

type GalleryStore interface {
	Create(ctx context.Context, item *model.GalleryItem) error
	List(ctx context.Context) ([]*model.GalleryItem, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.GalleryItem, error)
	Delete(ctx context.Context, id string) error
}

type GalleryHandler struct {
	store GalleryStore
}

func NewGalleryHandler(store GalleryStore) *GalleryHandler {
	return &GalleryHandler{store: store}
}

func (h *GalleryHandler) Create(c *gin.Context) {
	var req dto.CreateGalleryItem
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	item := &model.GalleryItem{
		Title:       utils.SanitizeInput(req.Title),
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Description: utils.SanitizeInput(req.Description),
	}

	if err := h.store.Create(c.Request.Context(), item); err != nil {
		respondRecordError(c, err)
		return
	}

	utils.TrackRecordOperation("create", "gallery_items")
	utils.Created(c, item)
}

func (h *GalleryHandler) List(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		logListFailure("gallery_items", err)
		items = []*model.GalleryItem{}
	}
	if items == nil {
		items = []*model.GalleryItem{}
	}
	utils.Success(c, items)
}

func (h *GalleryHandler) Update(c *gin.Context) {
	var req dto.UpdateGalleryItem
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	fields := req.Fields()
	if len(fields) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	item, err := h.store.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondRecordError(c, err)
		return
	}

	utils.TrackRecordOperation("update", "gallery_items")
	utils.Success(c, item)
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondRecordError(c, err)
		return
	}

	utils.TrackRecordOperation("delete", "gallery_items")
	utils.Success(c, gin.H{"message": "Gallery item deleted"})
}
