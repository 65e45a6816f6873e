package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
)

// ListAuditLogsResponse wraps a page of audit-trail entries.
type ListAuditLogsResponse struct {
	Logs       []domain.AuditLog `json:"logs"`
	Pagination Pagination        `json:"pagination"`
}

// ListAuditLogs godoc
// @ID          listAuditLogs
// @Summary     List audit-trail entries (paginated)
// @Tags        Audit
// @Produce     json
// @Security    BearerAuth
// @Param       search     query  string  false  "Substring match on details"
// @Param       action     query  string  false  "Filter by action (CREATE, UPDATE, ...)"
// @Param       actor      query  string  false  "Filter by actor email"
// @Param       page       query  int     false  "Page number"
// @Param       page_size  query  int     false  "Items per page"
// @Success     200  {object}  handlers.ListAuditLogsResponse
// @Router      /audit-logs [get]
func (h *Handlers) ListAuditLogs(c *gin.Context) {
	p := listParams(c, "action", "actor")
	items, total, err := h.audit.ListPage(c.Request.Context(), p)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, ListAuditLogsResponse{
		Logs:       items,
		Pagination: newPagination(p.Page, p.PageSize, total),
	})
}
