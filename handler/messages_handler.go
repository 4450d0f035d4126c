package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"mavryck/dto"
	"mavryck/model"
	"mavryck/utils"
)

type MessagesStore interface {
	Create(ctx context.Context, message *model.ContactMessage) error
	List(ctx context.Context) ([]*model.ContactMessage, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

type MessagesHandler struct {
	store MessagesStore
}

func NewMessagesHandler(store MessagesStore) *MessagesHandler {
	return &MessagesHandler{store: store}
}

// Create accepts contact-form submissions from the public site.
func (h *MessagesHandler) Create(c *gin.Context) {
	var req dto.CreateContactMessage
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	message := &model.ContactMessage{
		Name:    utils.SanitizeInput(req.Name),
		Email:   utils.NormalizeEmail(req.Email),
		Phone:   utils.SanitizeInput(req.Phone),
		Subject: utils.SanitizeInput(req.Subject),
		Message: utils.SanitizeInput(req.Message),
	}

	if err := h.store.Create(c.Request.Context(), message); err != nil {
		respondRecordError(c, err)
		return
	}

	utils.TrackRecordOperation("create", "contact_messages")
	utils.Created(c, message)
}

func (h *MessagesHandler) List(c *gin.Context) {
	messages, err := h.store.List(c.Request.Context())
	if err != nil {
		logListFailure("contact_messages", err)
		messages = []*model.ContactMessage{}
	}
	if messages == nil {
		messages = []*model.ContactMessage{}
	}
	utils.Success(c, messages)
}

func (h *MessagesHandler) Update(c *gin.Context) {
	var req dto.UpdateContactMessage
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	fields := req.Fields()
	if len(fields) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	message, err := h.store.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondRecordError(c, err)
		return
	}

	utils.TrackRecordOperation("update", "contact_messages")
	utils.Success(c, message)
}

func (h *MessagesHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondRecordError(c, err)
		return
	}

	utils.TrackRecordOperation("delete", "contact_messages")
	utils.Success(c, gin.H{"message": "Contact message deleted"})
}
