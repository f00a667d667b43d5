package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shareit-rentals/service-booking/internal/application"
	bookingDomain "github.com/shareit-rentals/service-booking/internal/domain/booking"
	"github.com/shareit-rentals/service-booking/pkg/middleware"
	"github.com/shareit-rentals/service-booking/pkg/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
	clock   bookingDomain.Clock
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService, clock bookingDomain.Clock) *BookingHandler {
	return &BookingHandler{service: service, clock: clock}
}

// RegisterRoutes registers all booking routes on the given router.
func (h *BookingHandler) RegisterRoutes(r gin.IRouter) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.CallerIDMiddleware())
	{
		bookings.POST("", h.AddBooking)
		bookings.GET("", h.ListForBooker)
		bookings.GET("/owner", h.ListForOwner)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.Decide)
	}
}

// AddBooking handles POST /bookings.
func (h *BookingHandler) AddBooking(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// Wire timestamps carry whole seconds.
	now := h.clock.Now().Truncate(time.Second)
	if req.Start.Before(now) {
		response.BadRequest(c, "start must be in the present or future")
		return
	}
	if !req.End.After(now) {
		response.BadRequest(c, "end must be in the future")
		return
	}

	result, err := h.service.AddBooking(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Decide handles PATCH /bookings/:id?approved=true|false.
func (h *BookingHandler) Decide(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id", "booking")
	if !ok {
		return
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.BadRequest(c, "approved must be true or false")
		return
	}

	result, err := h.service.Decide(c.Request.Context(), userID, bookingID, approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBooking handles GET /bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id", "booking")
	if !ok {
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListForBooker handles GET /bookings?state=&from=&size=.
func (h *BookingHandler) ListForBooker(c *gin.Context) {
	h.list(c, bookingDomain.RoleBooker)
}

// ListForOwner handles GET /bookings/owner?state=&from=&size=.
func (h *BookingHandler) ListForOwner(c *gin.Context) {
	h.list(c, bookingDomain.RoleOwner)
}

func (h *BookingHandler) list(c *gin.Context, role bookingDomain.Role) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}

	result, err := h.service.ListBookings(c.Request.Context(), userID, role, c.DefaultQuery("state", string(bookingDomain.StateAll)), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
