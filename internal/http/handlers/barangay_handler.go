// Barangay HTTP handlers.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
	"github.com/jrcatalan/go-osca-backend/internal/http/middleware"
	"github.com/jrcatalan/go-osca-backend/internal/services"
)

// BarangayRequest is the JSON payload for creating or updating a barangay.
type BarangayRequest struct {
	Name    string `json:"name" binding:"required" example:"Poblacion"`
	Captain string `json:"captain" example:"R. Ramos"`
}

// ListBarangaysResponse wraps a page of barangays.
type ListBarangaysResponse struct {
	Barangays  []domain.Barangay `json:"barangays"`
	Pagination Pagination        `json:"pagination"`
}

// CreateBarangay godoc
// @ID          createBarangay
// @Summary     Add a barangay
// @Tags        Barangays
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.BarangayRequest  true  "Barangay payload"
// @Success     201  {object}  domain.Barangay
// @Failure     409  {object}  handlers.ErrorResponse
// @Router      /barangays [post]
func (h *Handlers) CreateBarangay(c *gin.Context) {
	var req BarangayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	out, err := h.barangays.Create(c.Request.Context(),
		services.BarangayInput{Name: req.Name, Captain: req.Captain},
		middleware.ActorFrom(c))
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusCreated, out.Value)
}

// ListBarangays godoc
// @ID          listBarangays
// @Summary     List barangays (paginated)
// @Tags        Barangays
// @Produce     json
// @Param       search     query  string  false  "Substring match on name"
// @Param       page       query  int     false  "Page number"
// @Param       page_size  query  int     false  "Items per page"
// @Success     200  {object}  handlers.ListBarangaysResponse
// @Router      /barangays [get]
func (h *Handlers) ListBarangays(c *gin.Context) {
	p := listParams(c)
	items, total, err := h.barangays.ListPage(c.Request.Context(), p)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, ListBarangaysResponse{
		Barangays:  items,
		Pagination: newPagination(p.Page, p.PageSize, total),
	})
}

// ListBarangayNames godoc
// @ID          listBarangayNames
// @Summary     List all barangay names
// @Description Unpaginated name list for dropdowns and broadcast targeting.
// @Tags        Barangays
// @Produce     json
// @Success     200  {object}  map[string][]string
// @Router      /barangays/names [get]
func (h *Handlers) ListBarangayNames(c *gin.Context) {
	names, err := h.barangays.Names(c.Request.Context())
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"names": names})
}

// GetBarangay godoc
// @ID          getBarangay
// @Summary     Fetch one barangay
// @Tags        Barangays
// @Produce     json
// @Param       id  path  int  true  "Barangay ID"
// @Success     200  {object}  domain.Barangay
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /barangays/{id} [get]
func (h *Handlers) GetBarangay(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}
	b, err := h.barangays.Get(c.Request.Context(), id)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, b)
}

// UpdateBarangay godoc
// @ID          updateBarangay
// @Summary     Update a barangay
// @Tags        Barangays
// @Accept      json
// @Produce     json
// @Param       id    path  int                       true  "Barangay ID"
// @Param       body  body  handlers.BarangayRequest  true  "New state"
// @Success     200  {object}  domain.Barangay
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse
// @Router      /barangays/{id} [put]
func (h *Handlers) UpdateBarangay(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}
	var req BarangayRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required")
		return
	}
	out, err := h.barangays.Update(c.Request.Context(), id,
		services.BarangayInput{Name: req.Name, Captain: req.Captain},
		middleware.ActorFrom(c))
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, out.Value)
}

// DeleteBarangay godoc
// @ID          deleteBarangay
// @Summary     Delete a barangay
// @Tags        Barangays
// @Param       id  path  int  true  "Barangay ID"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /barangays/{id} [delete]
func (h *Handlers) DeleteBarangay(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}
	if _, err := h.barangays.Delete(c.Request.Context(), id, middleware.ActorFrom(c)); err != nil {
		svcFail(c, err)
		return
	}
	noContent(c)
}
