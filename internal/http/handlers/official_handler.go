// Official HTTP handlers.
//
//   - POST   /officials        (create, multipart form with optional photo)
//   - GET    /officials        (list, paginated)
//   - GET    /officials/{id}   (fetch one)
//   - PUT    /officials/{id}   (update, multipart form)
//   - DELETE /officials/{id}   (delete)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
	"github.com/jrcatalan/go-osca-backend/internal/http/middleware"
	"github.com/jrcatalan/go-osca-backend/internal/services"
)

// ListOfficialsResponse wraps a page of officials.
type ListOfficialsResponse struct {
	Officials  []domain.Official `json:"officials"`
	Pagination Pagination        `json:"pagination"`
}

func officialInput(c *gin.Context) (services.OfficialInput, bool) {
	photo, okUp := photoUpload(c, "photo")
	if !okUp {
		return services.OfficialInput{}, false
	}
	return services.OfficialInput{
		Name:        c.PostForm("name"),
		Position:    c.PostForm("position"),
		Photo:       photo,
		RemoveImage: formBool(c, "remove_photo"),
	}, true
}

// CreateOfficial godoc
// @ID          createOfficial
// @Summary     Add an official
// @Tags        Officials
// @Accept      mpfd
// @Produce     json
// @Param       name      formData  string  true   "Full name"
// @Param       position  formData  string  true   "Position (head and vice are exclusive)"
// @Param       photo     formData  file    false  "Photo"
// @Success     201  {object}  domain.Official
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse
// @Router      /officials [post]
func (h *Handlers) CreateOfficial(c *gin.Context) {
	in, okIn := officialInput(c)
	if !okIn {
		return
	}
	out, err := h.officials.Create(c.Request.Context(), in, middleware.ActorFrom(c))
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusCreated, out.Value)
}

// ListOfficials godoc
// @ID          listOfficials
// @Summary     List officials (paginated)
// @Tags        Officials
// @Produce     json
// @Param       search     query  string  false  "Substring match on name"
// @Param       position   query  string  false  "Filter by position (All matches everything)"
// @Param       sort       query  string  false  "Sort key"
// @Param       dir        query  string  false  "asc or desc"
// @Param       page       query  int     false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false  "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListOfficialsResponse
// @Router      /officials [get]
func (h *Handlers) ListOfficials(c *gin.Context) {
	p := listParams(c, "position")
	items, total, err := h.officials.ListPage(c.Request.Context(), p)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, ListOfficialsResponse{
		Officials:  items,
		Pagination: newPagination(p.Page, p.PageSize, total),
	})
}

// GetOfficial godoc
// @ID          getOfficial
// @Summary     Fetch one official
// @Tags        Officials
// @Produce     json
// @Param       id  path  int  true  "Official ID"
// @Success     200  {object}  domain.Official
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /officials/{id} [get]
func (h *Handlers) GetOfficial(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}
	o, err := h.officials.Get(c.Request.Context(), id)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, o)
}

// UpdateOfficial godoc
// @ID          updateOfficial
// @Summary     Update an official
// @Description Applies the submitted state. Omitting the photo keeps the
// @Description stored one; remove_photo=true clears it.
// @Tags        Officials
// @Accept      mpfd
// @Produce     json
// @Param       id            path      int     true   "Official ID"
// @Param       name          formData  string  true   "Full name"
// @Param       position      formData  string  true   "Position"
// @Param       photo         formData  file    false  "Replacement photo"
// @Param       remove_photo  formData  bool    false  "Clear the stored photo"
// @Success     200  {object}  domain.Official
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse
// @Router      /officials/{id} [put]
func (h *Handlers) UpdateOfficial(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}
	in, okIn := officialInput(c)
	if !okIn {
		return
	}
	out, err := h.officials.Update(c.Request.Context(), id, in, middleware.ActorFrom(c))
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, out.Value)
}

// DeleteOfficial godoc
// @ID          deleteOfficial
// @Summary     Delete an official
// @Tags        Officials
// @Param       id  path  int  true  "Official ID"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /officials/{id} [delete]
func (h *Handlers) DeleteOfficial(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}
	if _, err := h.officials.Delete(c.Request.Context(), id, middleware.ActorFrom(c)); err != nil {
		svcFail(c, err)
		return
	}
	noContent(c)
}
