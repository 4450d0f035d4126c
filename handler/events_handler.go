package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"mavryck/dto"
	"mavryck/model"
	"mavryck/utils"
)

type EventsStore interface {
	Create(ctx context.Context, event *model.EventRequest) error
	List(ctx context.Context) ([]*model.EventRequest, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.EventRequest, error)
	Delete(ctx context.Context, id string) error
}

type EventsHandler struct {
	store EventsStore
}

func NewEventsHandler(store EventsStore) *EventsHandler {
	return &EventsHandler{store: store}
}

// Create accepts planning enquiries from the public site, so it sits
// outside the session guard.
func (h *EventsHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	event := &model.EventRequest{
		Name:       utils.SanitizeInput(req.Name),
		Email:      utils.NormalizeEmail(req.Email),
		Phone:      utils.SanitizeInput(req.Phone),
		EventType:  req.EventType,
		EventDate:  req.EventDate,
		GuestCount: req.GuestCount,
		Location:   utils.SanitizeInput(req.Location),
		Message:    utils.SanitizeInput(req.Message),
	}

	if err := h.store.Create(c.Request.Context(), event); err != nil {
		respondRecordError(c, err)
		return
	}

	utils.TrackRecordOperation("create", "event_requests")
	utils.Created(c, event)
}

func (h *EventsHandler) List(c *gin.Context) {
	events, err := h.store.List(c.Request.Context())
	if err != nil {
		logListFailure("event_requests", err)
		events = []*model.EventRequest{}
	}
	if events == nil {
		events = []*model.EventRequest{}
	}
	utils.Success(c, events)
}

func (h *EventsHandler) Update(c *gin.Context) {
	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	fields := req.Fields()
	if len(fields) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	event, err := h.store.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondRecordError(c, err)
		return
	}

	utils.TrackRecordOperation("update", "event_requests")
	utils.Success(c, event)
}

func (h *EventsHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondRecordError(c, err)
		return
	}

	utils.TrackRecordOperation("delete", "event_requests")
	utils.Success(c, gin.H{"message": "Event request deleted"})
}
