package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stroyprombeton/internal/config"
	"github.com/stroyprombeton/internal/provider"

	"github.com/gin-gonic/gin"
)

func TestSetupRouterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{Server: config.ServerConfig{Mode: "debug"}}
	r := SetupRouter(cfg, &provider.Container{Config: cfg})

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"GET /api/v1/public/categories/:id",
		"GET /api/v1/public/categories/:id/tags/:tags",
		"POST /api/v1/public/categories/fetch-options",
		"GET /api/v1/public/series/:slug/tags/:tags",
		"GET /api/v1/public/autocomplete",
		"GET /api/v1/cart",
		"POST /api/v1/cart/change-count",
		"POST /api/v1/orders",
		"POST /api/v1/backcall",
		"POST /api/v1/price-request",
	} {
		if !registered[want] {
			t.Fatalf("route %s not registered", want)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/missing", nil))
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("unknown route status_code want 404 got %d", resp.StatusCode)
	}
}
