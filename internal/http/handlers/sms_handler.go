// SMS broadcast HTTP handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
	"github.com/jrcatalan/go-osca-backend/internal/http/middleware"
)

// BroadcastRequest is the JSON payload for sending a broadcast.
type BroadcastRequest struct {
	Message  string `json:"message" binding:"required" example:"Pension release on Friday."`
	Barangay string `json:"barangay" example:"Poblacion"`
}

// BroadcastResponse carries the delivery-log entry plus any non-fatal
// warnings (e.g. the gateway rejected the batch but the attempt was logged).
type BroadcastResponse struct {
	Log      *domain.SmsLog `json:"log"`
	Warnings []string       `json:"warnings,omitempty"`
}

// ListSmsLogsResponse wraps a page of delivery-log entries.
type ListSmsLogsResponse struct {
	Logs       []domain.SmsLog `json:"logs"`
	Pagination Pagination      `json:"pagination"`
}

// Broadcast godoc
// @ID          broadcastSms
// @Summary     Send an SMS broadcast
// @Description Sends the message to every active citizen with a contact
// @Description number, optionally narrowed to one barangay. A gateway
// @Description failure is recorded in the delivery log, not raised.
// @Tags        SMS
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.BroadcastRequest  true  "Broadcast payload"
// @Success     202  {object}  handlers.BroadcastResponse
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Gateway not configured"
// @Router      /sms/broadcast [post]
func (h *Handlers) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	out, err := h.sms.Broadcast(c.Request.Context(), req.Message, req.Barangay, middleware.ActorFrom(c))
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusAccepted, BroadcastResponse{Log: out.Value, Warnings: out.Warnings})
}

// ListSmsLogs godoc
// @ID          listSmsLogs
// @Summary     List past broadcast attempts (paginated)
// @Tags        SMS
// @Produce     json
// @Param       search     query  string  false  "Substring match on message"
// @Param       status     query  string  false  "Filter by delivery status"
// @Param       page       query  int     false  "Page number"
// @Param       page_size  query  int     false  "Items per page"
// @Success     200  {object}  handlers.ListSmsLogsResponse
// @Router      /sms/logs [get]
func (h *Handlers) ListSmsLogs(c *gin.Context) {
	p := listParams(c, "status")
	items, total, err := h.sms.ListLogs(c.Request.Context(), p)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, ListSmsLogsResponse{
		Logs:       items,
		Pagination: newPagination(p.Page, p.PageSize, total),
	})
}
