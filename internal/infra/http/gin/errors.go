package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	authsvc "stayhub/internal/app/services/auth"
	"stayhub/internal/app/uow"
	domainavailability "stayhub/internal/domain/availability"
	domainbooking "stayhub/internal/domain/booking"
	domainlistings "stayhub/internal/domain/listings"
	domainreviews "stayhub/internal/domain/reviews"
	domainrange "stayhub/internal/domain/shared/daterange"
	domainuser "stayhub/internal/domain/user"
)

// respondError maps domain sentinel errors onto HTTP statuses. Anything
// unrecognized is a 500 and gets logged; the message never leaks.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case isValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, authsvc.ErrInvalidCredentials), errors.Is(err, authsvc.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
	case isPermissionError(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case isNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case isConflictError(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		if logger != nil {
			logger.Error("request failed", "error", err, "path", c.FullPath())
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func isValidationError(err error) bool {
	for _, candidate := range []error{
		domainrange.ErrInvalidRange,
		domainavailability.ErrCheckInPast,
		domainlistings.ErrTitleRequired,
		domainlistings.ErrAddressRequired,
		domainlistings.ErrRoomsCount,
		domainlistings.ErrNegativePrice,
		domainlistings.ErrPropertyType,
		domainbooking.ErrGuestRequired,
		domainbooking.ErrNegativePrice,
		domainreviews.ErrInvalidRating,
		domainreviews.ErrOwnListing,
		domainreviews.ErrNoConfirmedStay,
		domainuser.ErrEmailRequired,
		domainuser.ErrNameRequired,
		authsvc.ErrPasswordTooShort,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

func isPermissionError(err error) bool {
	for _, candidate := range []error{
		domainlistings.ErrNotOwner,
		domainbooking.ErrNotOwner,
		domainbooking.ErrNotGuest,
		domainbooking.ErrNotParticipant,
		domainreviews.ErrNotAuthor,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

func isNotFoundError(err error) bool {
	for _, candidate := range []error{
		domainlistings.ErrNotFound,
		domainbooking.ErrNotFound,
		domainreviews.ErrNotFound,
		domainuser.ErrNotFound,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

func isConflictError(err error) bool {
	for _, candidate := range []error{
		domainavailability.ErrDatesUnavailable,
		domainbooking.ErrInvalidState,
		domainbooking.ErrTooLateToCancel,
		domainlistings.ErrInactive,
		domainreviews.ErrAlreadyReviewed,
		domainuser.ErrEmailAlreadyUsed,
		uow.ErrConcurrentUpdate,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}
