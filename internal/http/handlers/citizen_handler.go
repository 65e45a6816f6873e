// Senior-citizen HTTP handlers, including the recycle-bin lifecycle.
//
//   - POST   /citizens                 (register, multipart form)
//   - GET    /citizens                 (list active, paginated)
//   - GET    /citizens/{id}            (fetch one)
//   - PUT    /citizens/{id}            (update, multipart form)
//   - DELETE /citizens/{id}            (move to recycle bin)
//   - GET    /citizens/recycle-bin     (list deleted, paginated)
//   - POST   /citizens/{id}/restore    (bring back from the bin)
//   - DELETE /citizens/{id}/purge      (permanent removal)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
	"github.com/jrcatalan/go-osca-backend/internal/http/middleware"
	"github.com/jrcatalan/go-osca-backend/internal/services"
)

// ListCitizensResponse wraps a page of senior citizens.
type ListCitizensResponse struct {
	Citizens   []domain.SeniorCitizen `json:"citizens"`
	Pagination Pagination             `json:"pagination"`
}

func citizenInput(c *gin.Context) (services.CitizenInput, bool) {
	photo, okUp := photoUpload(c, "photo")
	if !okUp {
		return services.CitizenInput{}, false
	}
	return services.CitizenInput{
		OscaID:        c.PostForm("osca_id"),
		LastName:      c.PostForm("last_name"),
		FirstName:     c.PostForm("first_name"),
		MiddleName:    c.PostForm("middle_name"),
		Suffix:        c.PostForm("suffix"),
		BirthDate:     c.PostForm("birth_date"),
		Gender:        c.PostForm("gender"),
		CivilStatus:   c.PostForm("civil_status"),
		Barangay:      c.PostForm("barangay"),
		Purok:         c.PostForm("purok"),
		ContactNumber: c.PostForm("contact_number"),
		Status:        c.PostForm("status"),
		Photo:         photo,
		RemovePhoto:   formBool(c, "remove_photo"),
	}, true
}

// CreateCitizen godoc
// @ID          createCitizen
// @Summary     Register a senior citizen
// @Tags        Citizens
// @Accept      mpfd
// @Produce     json
// @Param       osca_id     formData  string  true   "OSCA ID (unique, including the recycle bin)"
// @Param       last_name   formData  string  true   "Last name"
// @Param       first_name  formData  string  true   "First name"
// @Param       photo       formData  file    false  "Photo"
// @Success     201  {object}  domain.SeniorCitizen
// @Failure     409  {object}  handlers.ErrorResponse
// @Router      /citizens [post]
func (h *Handlers) CreateCitizen(c *gin.Context) {
	in, okIn := citizenInput(c)
	if !okIn {
		return
	}
	out, err := h.citizens.Create(c.Request.Context(), in, middleware.ActorFrom(c))
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusCreated, out.Value)
}

// ListCitizens godoc
// @ID          listCitizens
// @Summary     List active senior citizens (paginated)
// @Tags        Citizens
// @Produce     json
// @Param       search     query  string  false  "Substring match on names and OSCA ID"
// @Param       barangay   query  string  false  "Filter by barangay (All matches everything)"
// @Param       gender     query  string  false  "Filter by gender"
// @Param       status     query  string  false  "Filter by status"
// @Param       sort       query  string  false  "Sort key"
// @Param       dir        query  string  false  "asc or desc"
// @Param       page       query  int     false  "Page number"
// @Param       page_size  query  int     false  "Items per page"
// @Success     200  {object}  handlers.ListCitizensResponse
// @Router      /citizens [get]
func (h *Handlers) ListCitizens(c *gin.Context) {
	p := listParams(c, "barangay", "gender", "status")
	items, total, err := h.citizens.ListPage(c.Request.Context(), p)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, ListCitizensResponse{
		Citizens:   items,
		Pagination: newPagination(p.Page, p.PageSize, total),
	})
}

// GetCitizen godoc
// @ID          getCitizen
// @Summary     Fetch one senior citizen
// @Tags        Citizens
// @Produce     json
// @Param       id  path  int  true  "Citizen ID"
// @Success     200  {object}  domain.SeniorCitizen
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /citizens/{id} [get]
func (h *Handlers) GetCitizen(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}
	citizen, err := h.citizens.Get(c.Request.Context(), id)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, citizen)
}

// UpdateCitizen godoc
// @ID          updateCitizen
// @Summary     Update a senior citizen
// @Description Applies the submitted state. Omitting the photo keeps the
// @Description stored one; remove_photo=true clears it.
// @Tags        Citizens
// @Accept      mpfd
// @Produce     json
// @Param       id  path  int  true  "Citizen ID"
// @Success     200  {object}  domain.SeniorCitizen
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse
// @Router      /citizens/{id} [put]
func (h *Handlers) UpdateCitizen(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}
	in, okIn := citizenInput(c)
	if !okIn {
		return
	}
	out, err := h.citizens.Update(c.Request.Context(), id, in, middleware.ActorFrom(c))
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, out.Value)
}

// DeleteCitizen godoc
// @ID          deleteCitizen
// @Summary     Move a senior citizen to the recycle bin
// @Tags        Citizens
// @Param       id  path  int  true  "Citizen ID"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse  "Already in the recycle bin"
// @Router      /citizens/{id} [delete]
func (h *Handlers) DeleteCitizen(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}
	if _, err := h.citizens.SoftDelete(c.Request.Context(), id, middleware.ActorFrom(c)); err != nil {
		svcFail(c, err)
		return
	}
	noContent(c)
}

// ListRecycleBin godoc
// @ID          listRecycleBin
// @Summary     List recycle-bin citizens (paginated)
// @Tags        Citizens
// @Produce     json
// @Success     200  {object}  handlers.ListCitizensResponse
// @Router      /citizens/recycle-bin [get]
func (h *Handlers) ListRecycleBin(c *gin.Context) {
	p := listParams(c, "barangay", "gender", "status")
	items, total, err := h.citizens.ListRecycleBinPage(c.Request.Context(), p)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, ListCitizensResponse{
		Citizens:   items,
		Pagination: newPagination(p.Page, p.PageSize, total),
	})
}

// RestoreCitizen godoc
// @ID          restoreCitizen
// @Summary     Restore a senior citizen from the recycle bin
// @Tags        Citizens
// @Produce     json
// @Param       id  path  int  true  "Citizen ID"
// @Success     200  {object}  domain.SeniorCitizen
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse  "Not in the recycle bin"
// @Router      /citizens/{id}/restore [post]
func (h *Handlers) RestoreCitizen(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}
	out, err := h.citizens.Restore(c.Request.Context(), id, middleware.ActorFrom(c))
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, out.Value)
}

// PurgeCitizen godoc
// @ID          purgeCitizen
// @Summary     Permanently delete a recycle-bin citizen
// @Tags        Citizens
// @Param       id  path  int  true  "Citizen ID"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse  "Not in the recycle bin"
// @Router      /citizens/{id}/purge [delete]
func (h *Handlers) PurgeCitizen(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}
	if _, err := h.citizens.Purge(c.Request.Context(), id, middleware.ActorFrom(c)); err != nil {
		svcFail(c, err)
		return
	}
	noContent(c)
}
