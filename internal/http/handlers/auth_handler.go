// Authentication and admin-account HTTP handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
	"github.com/jrcatalan/go-osca-backend/internal/http/middleware"
	"github.com/jrcatalan/go-osca-backend/internal/services"
)

// RegisterRequest is the JSON payload for creating an admin account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required" example:"clerk@osca.gov.ph"`
	Name     string `json:"name" binding:"required" example:"Maria Santos"`
	Role     string `json:"role" example:"staff"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the JSON payload for signing in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ListUsersResponse wraps a page of admin accounts.
type ListUsersResponse struct {
	Users      []domain.User `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

// Register godoc
// @ID          registerUser
// @Summary     Create an admin account
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.RegisterRequest  true  "Account payload"
// @Success     201  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Router      /auth/register [post]
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	out, err := h.users.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Role:     req.Role,
		Password: req.Password,
	}, middleware.ActorFrom(c))
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusCreated, out.Value)
}

// Login godoc
// @ID          login
// @Summary     Sign in and receive a bearer token
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.LoginRequest  true  "Credentials"
// @Success     200  {object}  services.Session
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	out, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == services.ErrInvalidCredentials {
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid email or password")
			return
		}
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, out.Value)
}

// Logout godoc
// @ID          logout
// @Summary     Sign out the current session
// @Tags        Auth
// @Produce     json
// @Security    BearerAuth
// @Success     204  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /auth/logout [post]
func (h *Handlers) Logout(c *gin.Context) {
	if _, err := h.users.Logout(c.Request.Context(), middleware.ActorFrom(c)); err != nil {
		if err == services.ErrInvalidCredentials {
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not signed in")
			return
		}
		svcFail(c, err)
		return
	}
	noContent(c)
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List admin accounts (paginated)
// @Tags        Auth
// @Produce     json
// @Security    BearerAuth
// @Param       search     query  string  false  "Substring match on email or name"
// @Param       role       query  string  false  "Filter by role"
// @Param       page       query  int     false  "Page number"
// @Param       page_size  query  int     false  "Items per page"
// @Success     200  {object}  handlers.ListUsersResponse
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	p := listParams(c, "role")
	items, total, err := h.users.ListPage(c.Request.Context(), p)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, ListUsersResponse{
		Users:      items,
		Pagination: newPagination(p.Page, p.PageSize, total),
	})
}
