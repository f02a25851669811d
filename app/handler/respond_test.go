package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"planpulse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("%w: project p1", service.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("%w: already decided", service.ErrConflict), http.StatusConflict},
		{"unauthorized", fmt.Errorf("%w: bad credentials", service.ErrUnauthorized), http.StatusUnauthorized},
		{"forbidden", fmt.Errorf("%w: not yours", service.ErrForbidden), http.StatusForbidden},
		{"invalid input", fmt.Errorf("%w: bad date", service.ErrInvalidInput), http.StatusBadRequest},
		{"plain error", fmt.Errorf("db exploded"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tc.err)
			assert.Equal(t, tc.want, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestTemplateDownload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewProgressHandler(nil)
	r := gin.New()
	r.GET("/template", h.Template)

	req := httptest.NewRequest(http.MethodGet, "/template", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "progress-template.csv")
	assert.Equal(t, "date,progress,planned,actual,status,milestone,description\n", w.Body.String())
}
