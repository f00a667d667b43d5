package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	bookingDomain "github.com/shareit-rentals/service-booking/internal/domain/booking"
	"github.com/shareit-rentals/service-booking/pkg/middleware"
	"github.com/shareit-rentals/service-booking/pkg/response"
)

// pathID parses a UUID path parameter, writing a 400 on failure.
func pathID(c *gin.Context, name, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid "+entity+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// callerID reads the id stored by CallerIDMiddleware.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetCallerID(c)
	if !ok {
		response.BadRequest(c, "Required request header '"+middleware.CallerIDHeader+"' is not present")
	}
	return id, ok
}

// parsePage reads the optional from/size query parameters.
func parsePage(c *gin.Context) (*bookingDomain.Page, bool) {
	from, ok := optionalInt(c, "from")
	if !ok {
		return nil, false
	}
	size, ok := optionalInt(c, "size")
	if !ok {
		return nil, false
	}
	page, err := bookingDomain.NewPage(from, size)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return page, true
}

func optionalInt(c *gin.Context, key string) (*int, bool) {
	raw, present := c.GetQuery(key)
	if !present {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.BadRequest(c, key+" must be an integer")
		return nil, false
	}
	return &v, true
}
