// SMS-credential HTTP handlers. The stored API key is never echoed back in
// full: responses mask all but the last four characters.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jrcatalan/go-osca-backend/internal/http/middleware"
	"github.com/jrcatalan/go-osca-backend/internal/services"
)

// CredentialRequest is the JSON payload for saving gateway credentials.
type CredentialRequest struct {
	ApiKey     string `json:"api_key" binding:"required"`
	SenderName string `json:"sender_name" example:"OSCA"`
}

// CredentialResponse echoes the stored configuration with the key masked.
type CredentialResponse struct {
	ApiKey     string `json:"api_key" example:"****5678"`
	SenderName string `json:"sender_name"`
}

func maskApiKey(k string) string {
	if len(k) <= 4 {
		return strings.Repeat("*", len(k))
	}
	return "****" + k[len(k)-4:]
}

// GetCredential godoc
// @ID          getCredential
// @Summary     Fetch the SMS gateway configuration
// @Tags        SMS
// @Produce     json
// @Success     200  {object}  handlers.CredentialResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Not configured yet"
// @Router      /sms/credentials [get]
func (h *Handlers) GetCredential(c *gin.Context) {
	cred, err := h.creds.Get(c.Request.Context())
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, CredentialResponse{
		ApiKey:     maskApiKey(cred.ApiKey),
		SenderName: cred.SenderName,
	})
}

// SaveCredential godoc
// @ID          saveCredential
// @Summary     Create or replace the SMS gateway configuration
// @Tags        SMS
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CredentialRequest  true  "Credentials"
// @Success     200  {object}  handlers.CredentialResponse
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /sms/credentials [put]
func (h *Handlers) SaveCredential(c *gin.Context) {
	var req CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	out, err := h.creds.Save(c.Request.Context(),
		services.CredentialInput{ApiKey: req.ApiKey, SenderName: req.SenderName},
		middleware.ActorFrom(c))
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, CredentialResponse{
		ApiKey:     maskApiKey(out.Value.ApiKey),
		SenderName: out.Value.SenderName,
	})
}
