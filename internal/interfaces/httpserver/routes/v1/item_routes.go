package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "chatstore/internal/domain/item"
	"chatstore/internal/infrastructure/auth"
	"chatstore/internal/interfaces/httpserver/handlers"
	"chatstore/internal/utils/platformerrors"
)

type itemResponse struct {
	ID        string          `json:"id" example:"msg_01fe93"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload" swaggertype:"object"`
}

type saveItemRequest struct {
	CreatedAt *time.Time      `json:"created_at,omitempty"`
	Payload   json.RawMessage `json:"payload" swaggertype:"object"`
}

type itemPageResponse struct {
	Data    []itemResponse `json:"data"`
	HasMore bool           `json:"has_more"`
	After   string         `json:"after,omitempty"`
}

func newItemResponse(it *domain.Item) itemResponse {
	return itemResponse{
		ID:        it.ID,
		CreatedAt: it.CreatedAt,
		Payload:   it.Payload,
	}
}

func registerItemRoutes(router gin.IRoutes, handler *handlers.ItemHandler, log zerolog.Logger) {
	router.GET("/threads/:thread_id/items", listItems(handler, log))
	router.GET("/threads/:thread_id/items/:item_id", getItem(handler, log))
	router.PUT("/threads/:thread_id/items/:item_id", putItem(handler, log))
	router.DELETE("/threads/:thread_id/items/:item_id", deleteItem(handler, log))
}

// listItems godoc
// @Summary      List thread items
// @Description  Pages through a thread's items ordered by creation time.
// @Tags         items
// @Produce      json
// @Param        thread_id  path   string  true   "thread id"
// @Param        limit      query  int     false  "page size"
// @Param        after      query  string  false  "cursor: id of the last item of the previous page"
// @Param        order      query  string  false  "asc or desc"
// @Success      200  {object}  itemPageResponse
// @Failure      400  {object}  errorResponse
// @Router       /v1/threads/{thread_id}/items [get]
func listItems(handler *handlers.ItemHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := parsePagination(c)
		if err != nil {
			platformerrors.WriteValidationError(c, err.Error())
			return
		}

		page, err := handler.List(c.Request.Context(), c.Param("thread_id"), auth.OwnerID(c), p)
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}

		resp := itemPageResponse{
			Data:    make([]itemResponse, 0, len(page.Data)),
			HasMore: page.HasMore,
			After:   page.After,
		}
		for _, it := range page.Data {
			resp.Data = append(resp.Data, newItemResponse(it))
		}
		c.JSON(http.StatusOK, resp)
	}
}

// getItem godoc
// @Summary      Load an item
// @Tags         items
// @Produce      json
// @Param        thread_id  path  string  true  "thread id"
// @Param        item_id    path  string  true  "item id"
// @Success      200  {object}  itemResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/threads/{thread_id}/items/{item_id} [get]
func getItem(handler *handlers.ItemHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		it, err := handler.Get(c.Request.Context(), c.Param("thread_id"), c.Param("item_id"), auth.OwnerID(c))
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, newItemResponse(it))
	}
}

// putItem godoc
// @Summary      Save an item
// @Description  Creates or replaces the item document under the thread.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        thread_id  path  string           true  "thread id"
// @Param        item_id    path  string           true  "item id"
// @Param        request    body  saveItemRequest  true  "item document"
// @Success      200  {object}  itemResponse
// @Failure      400  {object}  errorResponse
// @Router       /v1/threads/{thread_id}/items/{item_id} [put]
func putItem(handler *handlers.ItemHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req saveItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			platformerrors.WriteValidationError(c, "invalid request body: "+err.Error())
			return
		}

		it := &domain.Item{
			ID:      c.Param("item_id"),
			Payload: req.Payload,
		}
		if req.CreatedAt != nil {
			it.CreatedAt = req.CreatedAt.UTC()
		}

		if err := handler.Put(c.Request.Context(), c.Param("thread_id"), it, auth.OwnerID(c)); err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, newItemResponse(it))
	}
}

// deleteItem godoc
// @Summary      Delete an item
// @Description  Removes a single item. Deleting an absent item succeeds.
// @Tags         items
// @Produce      json
// @Param        thread_id  path  string  true  "thread id"
// @Param        item_id    path  string  true  "item id"
// @Success      204  "deleted"
// @Router       /v1/threads/{thread_id}/items/{item_id} [delete]
func deleteItem(handler *handlers.ItemHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := handler.Delete(c.Request.Context(), c.Param("thread_id"), c.Param("item_id"), auth.OwnerID(c)); err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
