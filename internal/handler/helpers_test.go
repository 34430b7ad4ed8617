package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newEngine returns a bare engine with the caller middleware applied, so
// tests exercise routes the way the router mounts them.
func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(CallerAuth())
	return r
}

func perform(r http.Handler, method, path, caller, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if caller != "" {
		req.Header.Set("X-Caller-Id", caller)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
