package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"mavryck/dto"
	"mavryck/model"
	"mavryck/utils"
)

type ProductsStore interface {
	Create(ctx context.Context, product *model.Product) error
	List(ctx context.Context) ([]*model.Product, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductsHandler struct {
	store ProductsStore
}

func NewProductsHandler(store ProductsStore) *ProductsHandler {
	return &ProductsHandler{store: store}
}

func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProduct
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	product := &model.Product{
		Name:        utils.SanitizeInput(req.Name),
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Description: utils.SanitizeInput(req.Description),
		Available:   req.Available,
	}

	if err := h.store.Create(c.Request.Context(), product); err != nil {
		respondRecordError(c, err)
		return
	}

	utils.TrackRecordOperation("create", "products")
	utils.Created(c, product)
}

func (h *ProductsHandler) List(c *gin.Context) {
	products, err := h.store.List(c.Request.Context())
	if err != nil {
		logListFailure("products", err)
		products = []*model.Product{}
	}
	if products == nil {
		products = []*model.Product{}
	}
	utils.Success(c, products)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	var req dto.UpdateProduct
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	fields := req.Fields()
	if len(fields) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	product, err := h.store.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondRecordError(c, err)
		return
	}

	utils.TrackRecordOperation("update", "products")
	utils.Success(c, product)
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondRecordError(c, err)
		return
	}

	utils.TrackRecordOperation("delete", "products")
	utils.Success(c, gin.H{"message": "Product deleted"})
}
