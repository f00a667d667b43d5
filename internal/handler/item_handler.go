package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shareit-rentals/service-booking/internal/application"
	"github.com/shareit-rentals/service-booking/pkg/middleware"
	"github.com/shareit-rentals/service-booking/pkg/response"
)

// ItemHandler handles HTTP requests for items and comments.
type ItemHandler struct {
	service *application.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *application.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// RegisterRoutes registers item routes.
func (h *ItemHandler) RegisterRoutes(r gin.IRouter) {
	items := r.Group("/items")
	items.Use(middleware.CallerIDMiddleware())
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListOwnItems)
		items.GET("/search", h.Search)
		items.GET("/:id", h.GetItem)
		items.PATCH("/:id", h.UpdateItem)
		items.POST("/:id/comment", h.AddComment)
	}
}

// CreateItem handles POST /items.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateItem(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateItem handles PATCH /items/:id.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id", "item")
	if !ok {
		return
	}

	var req application.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateItem(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetItem handles GET /items/:id.
func (h *ItemHandler) GetItem(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id", "item")
	if !ok {
		return
	}

	result, err := h.service.GetItem(c.Request.Context(), userID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListOwnItems handles GET /items.
func (h *ItemHandler) ListOwnItems(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.service.ListOwnItems(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Search handles GET /items/search?text=.
func (h *ItemHandler) Search(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.service.Search(c.Request.Context(), userID, c.Query("text"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AddComment handles POST /items/:id/comment.
func (h *ItemHandler) AddComment(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id", "item")
	if !ok {
		return
	}

	var req application.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddComment(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
