package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
)

type stubParser struct {
	actor *domain.Actor
	err   error
}

func (s stubParser) ParseToken(string) (*domain.Actor, error) { return s.actor, s.err }

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(p TokenParser) *gin.Engine {
		r := gin.New()
		r.Use(RequestID())
		r.Use(RequireAuth(p))
		r.GET("/me", func(c *gin.Context) {
			actor := ActorFrom(c)
			if actor == nil {
				t.Fatalf("actor missing after successful auth")
			}
			c.String(http.StatusOK, actor.Email)
		})
		return r
	}

	t.Run("valid token passes and stores the actor", func(t *testing.T) {
		r := newRouter(stubParser{actor: &domain.Actor{Email: "a@osca.gov.ph", Role: "admin"}})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer token")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK || w.Body.String() != "a@osca.gov.ph" {
			t.Fatalf("code=%d body=%q", w.Code, w.Body.String())
		}
	})

	t.Run("missing header is 401", func(t *testing.T) {
		r := newRouter(stubParser{actor: &domain.Actor{Email: "a@b"}})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("code = %d", w.Code)
		}
	})

	t.Run("non-bearer scheme is 401", func(t *testing.T) {
		r := newRouter(stubParser{actor: &domain.Actor{Email: "a@b"}})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("code = %d", w.Code)
		}
	})

	t.Run("rejected token is 401", func(t *testing.T) {
		r := newRouter(stubParser{err: errors.New("expired")})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer stale")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("code = %d", w.Code)
		}
	})
}

func TestActorFrom_NilWhenAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if ActorFrom(c) != nil {
		t.Fatalf("expected nil actor on bare context")
	}
}
