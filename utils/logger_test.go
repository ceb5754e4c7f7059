package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"itdocsapi/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.Validation("name", "required"), http.StatusBadRequest},
		{&apperr.UniquenessViolation{Entity: "vlan", Field: "tag", Value: 10}, http.StatusConflict},
		{&apperr.ReferentialIntegrityError{Entity: "site", Field: "client_id", RefEntity: "client", RefID: 9}, http.StatusUnprocessableEntity},
		{&apperr.ReferentialIntegrityError{Entity: "client", RefEntity: "site", RefID: 1}, http.StatusConflict},
		{fmt.Errorf("loading: %w", apperr.NotFound("pbx", 3)), http.StatusNotFound},
		{&apperr.AuthorizationError{Reason: "expired"}, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestErrorResponse_IncludesField(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorResponse(c, apperr.Validation("zip_code", "must be a number"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "zip_code", body["field"])
	assert.Contains(t, body["error"], "must be a number")
}

type stubVerifier map[string]string

func (s stubVerifier) VerifyToken(token string) (string, error) {
	if user, ok := s[token]; ok {
		return user, nil
	}
	return "", &apperr.AuthorizationError{Reason: "bad token"}
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(stubVerifier{"good": "admin"}))
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextAccountKey))
	})

	cases := map[string]int{
		"":             http.StatusUnauthorized,
		"Bearer ":      http.StatusUnauthorized,
		"Token good":   http.StatusUnauthorized,
		"Bearer wrong": http.StatusUnauthorized,
		"Bearer good":  http.StatusOK,
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, header)
		if want == http.StatusOK {
			assert.Equal(t, "admin", w.Body.String())
		}
	}
}
