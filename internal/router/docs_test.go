package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-lost-found/internal/router"

	"github.com/go-chi/chi/v5"
)

// Toda ruta de la API tiene que aparecer en /swagger/doc.json.
func TestSwaggerDoc_ListsEveryRoute(t *testing.T) {
	h := router.NewRouter(router.Options{})

	routes, ok := h.(chi.Routes)
	if !ok {
		t.Fatalf("expected chi router, got %T", h)
	}

	ts := httptest.NewServer(h)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/swagger/doc.json")
	if err != nil {
		t.Fatalf("get doc.json: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 doc.json, got %d", resp.StatusCode)
	}

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode doc.json: %v", err)
	}

	walked := 0
	err = chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		switch {
		case route == "/health", route == "/metrics", strings.HasPrefix(route, "/swagger"):
			return nil
		}
		walked++
		path := strings.TrimSuffix(route, "/")
		ops, ok := doc.Paths[path]
		if !ok {
			t.Errorf("route %s %s missing from swagger doc", method, path)
			return nil
		}
		if _, ok := ops[strings.ToLower(method)]; !ok {
			t.Errorf("route %s %s has no swagger operation", method, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if walked == 0 {
		t.Fatalf("expected api routes to walk")
	}
}
