package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/service/booking"
	"github.com/gin-gonic/gin"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type UserCounter interface {
	Count() int
}

type BookingHandler struct {
	service booking.BookingUseCase
	users   UserCounter
}

type createBookingRequest struct {
	FlightNumber  string `json:"flight_number"`
	CustomerName  string `json:"customer_name"`
	CustomerAge   int    `json:"customer_age"`
	CustomerEmail string `json:"customer_email"`
	CabinClass    string `json:"cabin_class"`
}

type bookingResponse struct {
	Ticket  domain.Ticket `json:"ticket"`
	Warning string        `json:"warning,omitempty"`
}

func NewBookingHandler(service booking.BookingUseCase, users UserCounter) *BookingHandler {
	return &BookingHandler{service: service, users: users}
}

// Register expects a router group guarded by BasicAuth.
func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/bookings", h.create)
	router.GET("/tickets", h.list)
	router.GET("/stats", h.stats)
}

// create godoc
// @Summary      Book a ticket
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        Idempotency-Key  header  string                false  "Client request key"
// @Param        request          body    createBookingRequest  true   "Booking request"
// @Success      201  {object}  bookingResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /bookings [post]
func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	class, err := domain.ParseCabinClass(req.CabinClass)
	if err != nil {
		writeError(c, err)
		return
	}

	ticket, err := h.service.BookTicket(c.Request.Context(), booking.BookTicketInput{
		FlightNumber:  req.FlightNumber,
		CustomerName:  req.CustomerName,
		CustomerAge:   req.CustomerAge,
		CustomerEmail: req.CustomerEmail,
		CabinClass:    class,
		RequestKey:    c.GetHeader(IdempotencyKeyHeader),
	})
	resp := bookingResponse{}
	switch {
	case err == nil:
	case ticket != nil && errors.Is(err, domain.ErrPersistenceWarning):
		resp.Warning = err.Error()
	default:
		writeError(c, err)
		return
	}
	resp.Ticket = *ticket

	c.JSON(http.StatusCreated, resp)
}

// list godoc
// @Summary      List tickets visible to the caller, highest priority first
// @Tags         bookings
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}   domain.Ticket
// @Failure      401  {object}  errorResponse
// @Router       /tickets [get]
func (h *BookingHandler) list(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		writeError(c, domain.ErrUnauthenticated)
		return
	}
	c.JSON(http.StatusOK, h.service.ListTickets(c.Request.Context(), caller))
}

// stats godoc
// @Summary      Flight, ticket and user counts
// @Tags         bookings
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  domain.Statistics
// @Failure      403  {object}  errorResponse
// @Router       /stats [get]
func (h *BookingHandler) stats(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		writeError(c, domain.ErrUnauthenticated)
		return
	}
	if !caller.Privileged {
		writeError(c, domain.ErrForbidden)
		return
	}
	c.JSON(http.StatusOK, h.service.Statistics(c.Request.Context(), h.users.Count()))
}
