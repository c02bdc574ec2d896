package v1

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "chatstore/internal/domain/attachment"
	"chatstore/internal/infrastructure/auth"
	"chatstore/internal/interfaces/httpserver/handlers"
	"chatstore/internal/utils/platformerrors"
)

type attachmentResponse struct {
	ID      string          `json:"id" example:"att_4c19d7"`
	Payload json.RawMessage `json:"payload" swaggertype:"object"`
}

type saveAttachmentRequest struct {
	Payload json.RawMessage `json:"payload" swaggertype:"object"`
}

func registerAttachmentRoutes(router gin.IRoutes, handler *handlers.AttachmentHandler, log zerolog.Logger) {
	router.GET("/attachments/:attachment_id", getAttachment(handler, log))
	router.PUT("/attachments/:attachment_id", putAttachment(handler, log))
	router.DELETE("/attachments/:attachment_id", deleteAttachment(handler, log))
}

// getAttachment godoc
// @Summary      Load attachment metadata
// @Tags         attachments
// @Produce      json
// @Param        attachment_id  path  string  true  "attachment id"
// @Success      200  {object}  attachmentResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/attachments/{attachment_id} [get]
func getAttachment(handler *handlers.AttachmentHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, err := handler.Get(c.Request.Context(), c.Param("attachment_id"), auth.OwnerID(c))
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, attachmentResponse{ID: a.ID, Payload: a.Payload})
	}
}

// putAttachment godoc
// @Summary      Save attachment metadata
// @Description  Creates or replaces the attachment record. The blob itself lives in external storage.
// @Tags         attachments
// @Accept       json
// @Produce      json
// @Param        attachment_id  path  string                 true  "attachment id"
// @Param        request        body  saveAttachmentRequest  true  "attachment document"
// @Success      200  {object}  attachmentResponse
// @Failure      400  {object}  errorResponse
// @Router       /v1/attachments/{attachment_id} [put]
func putAttachment(handler *handlers.AttachmentHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req saveAttachmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			platformerrors.WriteValidationError(c, "invalid request body: "+err.Error())
			return
		}

		a := &domain.Attachment{
			ID:      c.Param("attachment_id"),
			Payload: req.Payload,
		}
		if err := handler.Put(c.Request.Context(), a, auth.OwnerID(c)); err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, attachmentResponse{ID: a.ID, Payload: a.Payload})
	}
}

// deleteAttachment godoc
// @Summary      Delete attachment metadata
// @Description  Removes the attachment record. Deleting an absent attachment succeeds.
// @Tags         attachments
// @Produce      json
// @Param        attachment_id  path  string  true  "attachment id"
// @Success      204  "deleted"
// @Router       /v1/attachments/{attachment_id} [delete]
func deleteAttachment(handler *handlers.AttachmentHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := handler.Delete(c.Request.Context(), c.Param("attachment_id"), auth.OwnerID(c)); err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
