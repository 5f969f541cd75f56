package ginserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

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

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		want int
	}{
		{domainrange.ErrInvalidRange, http.StatusBadRequest},
		{domainavailability.ErrCheckInPast, http.StatusBadRequest},
		{domainlistings.ErrTitleRequired, http.StatusBadRequest},
		{domainreviews.ErrInvalidRating, http.StatusBadRequest},
		{domainreviews.ErrOwnListing, http.StatusBadRequest},
		{domainreviews.ErrNoConfirmedStay, http.StatusBadRequest},
		{authsvc.ErrPasswordTooShort, http.StatusBadRequest},
		{authsvc.ErrInvalidCredentials, http.StatusUnauthorized},
		{authsvc.ErrInvalidToken, http.StatusUnauthorized},
		{domainlistings.ErrNotOwner, http.StatusForbidden},
		{domainbooking.ErrNotGuest, http.StatusForbidden},
		{domainreviews.ErrNotAuthor, http.StatusForbidden},
		{domainlistings.ErrNotFound, http.StatusNotFound},
		{domainbooking.ErrNotFound, http.StatusNotFound},
		{domainuser.ErrNotFound, http.StatusNotFound},
		{domainavailability.ErrDatesUnavailable, http.StatusConflict},
		{domainbooking.ErrInvalidState, http.StatusConflict},
		{domainbooking.ErrTooLateToCancel, http.StatusConflict},
		{domainreviews.ErrAlreadyReviewed, http.StatusConflict},
		{domainuser.ErrEmailAlreadyUsed, http.StatusConflict},
		{uow.ErrConcurrentUpdate, http.StatusConflict},
		{fmt.Errorf("save listing: %w", uow.ErrConcurrentUpdate), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", domainlistings.ErrInactive), http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			respondError(c, nil, tc.err)
			if recorder.Code != tc.want {
				t.Errorf("status = %d, want %d", recorder.Code, tc.want)
			}
		})
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	respondError(c, nil, errors.New("connection string postgres://secret"))
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", recorder.Code)
	}
	body := recorder.Body.String()
	if body == "" || body == "{}" {
		t.Fatal("empty body")
	}
	if want := `{"error":"internal error"}`; body != want {
		t.Errorf("body = %s, want %s", body, want)
	}
}
