package ginserver

import (
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stayhub/internal/app/commands"
	"stayhub/internal/app/dto"
	BookingApp "stayhub/internal/app/handlers/booking"
	"stayhub/internal/app/queries"
	domainbooking "stayhub/internal/domain/booking"
)

type BookingHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	Confirm(c *gin.Context)
	Reject(c *gin.Context)
	Cancel(c *gin.Context)
	Mine(c *gin.Context)
	Host(c *gin.Context)
	Statuses(c *gin.Context)
}

type BookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

type createBookingRequest struct {
	ListingID string    `json:"listing_id"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
}

func (h BookingHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	result, err := commands.Dispatch[BookingApp.RequestBookingCommand, dto.Booking](c.Request.Context(), h.Commands, BookingApp.RequestBookingCommand{
		CommandID: uuid.NewString(),
		ListingID: req.ListingID,
		GuestID:   user.ID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h BookingHandler) Get(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	result, err := queries.Ask[BookingApp.GetBookingQuery, dto.Booking](c.Request.Context(), h.Queries, BookingApp.GetBookingQuery{
		BookingID: c.Param("id"),
		ActorID:   user.ID,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Confirm(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	result, err := commands.Dispatch[BookingApp.ConfirmBookingCommand, dto.Booking](c.Request.Context(), h.Commands, BookingApp.ConfirmBookingCommand{
		BookingID: c.Param("id"),
		ActorID:   user.ID,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Reject(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	result, err := commands.Dispatch[BookingApp.RejectBookingCommand, dto.Booking](c.Request.Context(), h.Commands, BookingApp.RejectBookingCommand{
		BookingID: c.Param("id"),
		ActorID:   user.ID,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Cancel(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	result, err := commands.Dispatch[BookingApp.CancelBookingCommand, dto.Booking](c.Request.Context(), h.Commands, BookingApp.CancelBookingCommand{
		BookingID: c.Param("id"),
		ActorID:   user.ID,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Mine(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	result, err := queries.Ask[BookingApp.ListGuestBookingsQuery, dto.BookingCollection](c.Request.Context(), h.Queries, BookingApp.ListGuestBookingsQuery{GuestID: user.ID})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Host(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	result, err := queries.Ask[BookingApp.ListHostBookingsQuery, dto.BookingCollection](c.Request.Context(), h.Queries, BookingApp.ListHostBookingsQuery{OwnerID: user.ID})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Statuses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"choices": domainbooking.StatusChoices()})
}

var _ BookingHTTP = BookingHandler{}
