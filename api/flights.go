package api

import (
	"context"
	"net/http"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/gin-gonic/gin"
)

type FlightSearcher interface {
	SearchFlights(ctx context.Context, origin, destination string) ([]domain.Flight, error)
}

type FlightHandler struct {
	service FlightSearcher
}

func NewFlightHandler(service FlightSearcher) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/flights", h.search)
}

// search godoc
// @Summary      Search flights by route
// @Tags         flights
// @Produce      json
// @Param        origin       query  string  true  "Origin city"
// @Param        destination  query  string  true  "Destination city"
// @Success      200  {array}   domain.Flight
// @Failure      400  {object}  errorResponse
// @Router       /flights [get]
func (h *FlightHandler) search(c *gin.Context) {
	flights, err := h.service.SearchFlights(c.Request.Context(), c.Query("origin"), c.Query("destination"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}
