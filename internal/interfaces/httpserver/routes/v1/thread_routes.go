package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "chatstore/internal/domain/thread"
	"chatstore/internal/infrastructure/auth"
	"chatstore/internal/interfaces/httpserver/handlers"
	"chatstore/internal/utils/platformerrors"
)

type threadResponse struct {
	ID        string          `json:"id" example:"th_8f4e2a"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload" swaggertype:"object"`
}

type saveThreadRequest struct {
	CreatedAt *time.Time      `json:"created_at,omitempty"`
	Payload   json.RawMessage `json:"payload" swaggertype:"object"`
}

type threadPageResponse struct {
	Data    []threadResponse `json:"data"`
	HasMore bool             `json:"has_more"`
	After   string           `json:"after,omitempty"`
}

func newThreadResponse(t *domain.Thread) threadResponse {
	return threadResponse{
		ID:        t.ID,
		CreatedAt: t.CreatedAt,
		Payload:   t.Payload,
	}
}

func registerThreadRoutes(router gin.IRoutes, handler *handlers.ThreadHandler, log zerolog.Logger) {
	router.GET("/threads", listThreads(handler, log))
	router.GET("/threads/:thread_id", getThread(handler, log))
	router.PUT("/threads/:thread_id", putThread(handler, log))
	router.DELETE("/threads/:thread_id", deleteThread(handler, log))
}

// listThreads godoc
// @Summary      List threads
// @Description  Pages through the caller's threads ordered by creation time.
// @Tags         threads
// @Produce      json
// @Param        limit  query  int     false  "page size"
// @Param        after  query  string  false  "cursor: id of the last thread of the previous page"
// @Param        order  query  string  false  "asc or desc"
// @Success      200  {object}  threadPageResponse
// @Failure      400  {object}  errorResponse
// @Router       /v1/threads [get]
func listThreads(handler *handlers.ThreadHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := parsePagination(c)
		if err != nil {
			platformerrors.WriteValidationError(c, err.Error())
			return
		}

		page, err := handler.List(c.Request.Context(), auth.OwnerID(c), p)
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}

		resp := threadPageResponse{
			Data:    make([]threadResponse, 0, len(page.Data)),
			HasMore: page.HasMore,
			After:   page.After,
		}
		for _, t := range page.Data {
			resp.Data = append(resp.Data, newThreadResponse(t))
		}
		c.JSON(http.StatusOK, resp)
	}
}

// getThread godoc
// @Summary      Load a thread
// @Tags         threads
// @Produce      json
// @Param        thread_id  path  string  true  "thread id"
// @Success      200  {object}  threadResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/threads/{thread_id} [get]
func getThread(handler *handlers.ThreadHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := handler.Get(c.Request.Context(), c.Param("thread_id"), auth.OwnerID(c))
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, newThreadResponse(t))
	}
}

// putThread godoc
// @Summary      Save a thread
// @Description  Creates or replaces the thread document. Saving the same id twice replaces the payload in place.
// @Tags         threads
// @Accept       json
// @Produce      json
// @Param        thread_id  path  string             true  "thread id"
// @Param        request    body  saveThreadRequest  true  "thread document"
// @Success      200  {object}  threadResponse
// @Failure      400  {object}  errorResponse
// @Router       /v1/threads/{thread_id} [put]
func putThread(handler *handlers.ThreadHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req saveThreadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			platformerrors.WriteValidationError(c, "invalid request body: "+err.Error())
			return
		}

		t := &domain.Thread{
			ID:      c.Param("thread_id"),
			Payload: req.Payload,
		}
		if req.CreatedAt != nil {
			t.CreatedAt = req.CreatedAt.UTC()
		}

		if err := handler.Put(c.Request.Context(), t, auth.OwnerID(c)); err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, newThreadResponse(t))
	}
}

// deleteThread godoc
// @Summary      Delete a thread
// @Description  Removes the thread and every item that belongs to it. Deleting an absent thread succeeds.
// @Tags         threads
// @Produce      json
// @Param        thread_id  path  string  true  "thread id"
// @Success      204  "deleted"
// @Router       /v1/threads/{thread_id} [delete]
func deleteThread(handler *handlers.ThreadHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := handler.Delete(c.Request.Context(), c.Param("thread_id"), auth.OwnerID(c)); err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
