package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stayhub/internal/app/dto"
	authsvc "stayhub/internal/app/services/auth"
	domainuser "stayhub/internal/domain/user"
)

type AuthHTTP interface {
	Signup(c *gin.Context)
	Signin(c *gin.Context)
	Signout(c *gin.Context)
	Me(c *gin.Context)
	UpdateMe(c *gin.Context)
}

type AuthHandler struct {
	Service *authsvc.Service
	Cookies Cookies
	Logger  *slog.Logger
}

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Description string `json:"description"`
}

func (h AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	result, err := h.Service.Register(c.Request.Context(), authsvc.RegisterParams{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Cookies.Write(c, result.Tokens)
	c.JSON(http.StatusCreated, dto.MapUser(result.User))
}

func (h AuthHandler) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	result, err := h.Service.Login(c.Request.Context(), authsvc.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Cookies.Write(c, result.Tokens)
	c.JSON(http.StatusOK, dto.MapUser(result.User))
}

// Signout clears the cookie pair. Tokens are stateless, so expiry does the
// rest.
func (h AuthHandler) Signout(c *gin.Context) {
	h.Cookies.Clear(c)
	c.Status(http.StatusNoContent)
}

func (h AuthHandler) Me(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	user, err := h.Service.Users.ByID(c.Request.Context(), domainuser.ID(p.ID))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapUser(user))
}

func (h AuthHandler) UpdateMe(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	user, err := h.Service.UpdateProfile(c.Request.Context(), domainuser.ID(p.ID), req.Description)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapUser(user))
}

var _ AuthHTTP = AuthHandler{}
