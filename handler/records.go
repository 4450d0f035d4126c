package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"mavryck/repository"
	"mavryck/utils"
)

// respondRecordError maps a normalized repository error onto the HTTP
// envelope. Anything unrecognized surfaces as a 500 with the message
// preserved.
func respondRecordError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.NotFound(c, "Record not found")
	case errors.Is(err, repository.ErrPermissionDenied):
		utils.Forbidden(c, "Permission denied")
	default:
		utils.InternalError(c, err.Error())
	}
}

// logListFailure records a degraded read. List endpoints always answer
// with an empty collection so the dashboards keep rendering.
func logListFailure(collection string, err error) {
	utils.TrackError("records", "list_failed")
	log.Printf("Warning: listing %s failed, returning empty result: %v", collection, err)
}
