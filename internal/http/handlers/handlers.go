// Handler wiring and shared request parsing.
package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jrcatalan/go-osca-backend/internal/repo"
	"github.com/jrcatalan/go-osca-backend/internal/services"
	"github.com/jrcatalan/go-osca-backend/internal/storage"
	"github.com/jrcatalan/go-osca-backend/internal/utils"
)

// maxPhotoBytes caps an individual uploaded photo.
const maxPhotoBytes = 5 << 20

// Handlers groups the HTTP endpoints for the admin API. It is transport-thin:
// parse input, call the service, translate the result.
type Handlers struct {
	officials *services.OfficialService
	barangays *services.BarangayService
	citizens  *services.CitizenService
	creds     *services.CredentialService
	users     *services.UserService
	sms       *services.SmsService
	audit     *services.AuditRecorder
}

// New constructs a Handlers instance bound to the given services.
func New(
	officials *services.OfficialService,
	barangays *services.BarangayService,
	citizens *services.CitizenService,
	creds *services.CredentialService,
	users *services.UserService,
	sms *services.SmsService,
	audit *services.AuditRecorder,
) *Handlers {
	return &Handlers{
		officials: officials,
		barangays: barangays,
		citizens:  citizens,
		creds:     creds,
		users:     users,
		sms:       sms,
		audit:     audit,
	}
}

// Pagination carries pagination metadata for list responses.
type Pagination = utils.PageMeta

func newPagination(page, pageSize int, total int64) Pagination {
	return utils.NewPageMeta(page, pageSize, total)
}

// listParams builds repository list parameters from the standard query
// surface: search, sort, dir, page, page_size, plus the named filters the
// endpoint declares (each read from a query param of the same name).
func listParams(c *gin.Context, filterNames ...string) repo.ListParams {
	p := repo.ListParams{
		Search:   c.Query("search"),
		SortKey:  c.Query("sort"),
		SortDir:  c.Query("dir"),
		Page:     utils.AtoiDefault(c.Query("page"), 1),
		PageSize: utils.AtoiDefault(c.Query("page_size"), repo.DefaultPageSize),
	}
	if len(filterNames) > 0 {
		p.Filters = make(map[string]string, len(filterNames))
		for _, name := range filterNames {
			p.Filters[name] = c.Query(name)
		}
	}
	p.Clamp()
	return p
}

// pathID parses the numeric :id path parameter, failing the request with a
// 400 when it is not a positive integer.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// photoUpload reads the named multipart file field into a storage.Upload.
// A missing field is not an error: (nil, true) means "no photo supplied".
func photoUpload(c *gin.Context, field string) (*storage.Upload, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, true // field absent
	}
	if fh.Size > maxPhotoBytes {
		fail(c, http.StatusBadRequest, ErrCodeUploadFailed, "photo exceeds the 5 MiB limit")
		return nil, false
	}
	up, ok := readUpload(c, fh)
	return up, ok
}

func readUpload(c *gin.Context, fh *multipart.FileHeader) (*storage.Upload, bool) {
	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeUploadFailed, "could not read uploaded file")
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxPhotoBytes+1))
	if err != nil || int64(len(data)) > maxPhotoBytes {
		fail(c, http.StatusBadRequest, ErrCodeUploadFailed, "could not read uploaded file")
		return nil, false
	}
	return &storage.Upload{
		Filename:    fh.Filename,
		Data:        data,
		ContentType: fh.Header.Get("Content-Type"),
	}, true
}

// formBool reads a form/query boolean flag ("1", "true", "yes" → true).
func formBool(c *gin.Context, field string) bool {
	switch c.PostForm(field) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
