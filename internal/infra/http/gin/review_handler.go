package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stayhub/internal/app/commands"
	"stayhub/internal/app/dto"
	ReviewApp "stayhub/internal/app/handlers/reviews"
	"stayhub/internal/app/queries"
)

type ReviewHTTP interface {
	Create(c *gin.Context)
	Delete(c *gin.Context)
	ListForListing(c *gin.Context)
	Mine(c *gin.Context)
}

type ReviewHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

type createReviewRequest struct {
	ListingID string `json:"listing_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (h ReviewHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	result, err := commands.Dispatch[ReviewApp.SubmitReviewCommand, dto.Review](c.Request.Context(), h.Commands, ReviewApp.SubmitReviewCommand{
		ListingID: req.ListingID,
		AuthorID:  user.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h ReviewHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	if _, err := commands.Dispatch[ReviewApp.DeleteReviewCommand, struct{}](c.Request.Context(), h.Commands, ReviewApp.DeleteReviewCommand{
		ReviewID: c.Param("id"),
		ActorID:  user.ID,
	}); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h ReviewHandler) ListForListing(c *gin.Context) {
	result, err := queries.Ask[ReviewApp.ListListingReviewsQuery, dto.ReviewCollection](c.Request.Context(), h.Queries, ReviewApp.ListListingReviewsQuery{ListingID: c.Param("id")})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReviewHandler) Mine(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	result, err := queries.Ask[ReviewApp.ListAuthorReviewsQuery, dto.ReviewCollection](c.Request.Context(), h.Queries, ReviewApp.ListAuthorReviewsQuery{AuthorID: user.ID})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ ReviewHTTP = ReviewHandler{}
