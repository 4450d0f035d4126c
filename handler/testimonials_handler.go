package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"mavryck/dto"
	"mavryck/model"
	"mavryck/utils"
)

type TestimonialsStore interface {
	Create(ctx context.Context, testimonial *model.Testimonial) error
	List(ctx context.Context) ([]*model.Testimonial, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Testimonial, error)
	Delete(ctx context.Context, id string) error
}

type TestimonialsHandler struct {
	store TestimonialsStore
}

func NewTestimonialsHandler(store TestimonialsStore) *TestimonialsHandler {
	return &TestimonialsHandler{store: store}
}

func (h *TestimonialsHandler) Create(c *gin.Context) {
	var req dto.CreateTestimonial
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	testimonial := &model.Testimonial{
		Name:      utils.SanitizeInput(req.Name),
		EventType: req.EventType,
		Rating:    req.Rating,
		Message:   utils.SanitizeInput(req.Message),
		ImageURL:  req.ImageURL,
	}

	if err := h.store.Create(c.Request.Context(), testimonial); err != nil {
		respondRecordError(c, err)
		return
	}

	utils.TrackRecordOperation("create", "testimonials")
	utils.Created(c, testimonial)
}

func (h *TestimonialsHandler) List(c *gin.Context) {
	testimonials, err := h.store.List(c.Request.Context())
	if err != nil {
		logListFailure("testimonials", err)
		testimonials = []*model.Testimonial{}
	}
	if testimonials == nil {
		testimonials = []*model.Testimonial{}
	}
	utils.Success(c, testimonials)
}

func (h *TestimonialsHandler) Update(c *gin.Context) {
	var req dto.UpdateTestimonial
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	fields := req.Fields()
	if len(fields) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	testimonial, err := h.store.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondRecordError(c, err)
		return
	}

	utils.TrackRecordOperation("update", "testimonials")
	utils.Success(c, testimonial)
}

func (h *TestimonialsHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondRecordError(c, err)
		return
	}

	utils.TrackRecordOperation("delete", "testimonials")
	utils.Success(c, gin.H{"message": "Testimonial deleted"})
}
