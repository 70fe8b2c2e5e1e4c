package inventory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"mealhub/pkg/database"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := NewService(NewRepo(database.OpenTest(t)), &fixedDays{})
	h := NewHandler(svc, nil)

	router := gin.New()
	h.RegisterRoutes(router.Group("/api"))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestInventoryHandler_LookaheadValidation(t *testing.T) {
	router := newTestRouter(t)

	if w := doJSON(t, router, http.MethodGet, "/api/inventory?lookahead=4", ""); w.Code != http.StatusBadRequest {
		t.Errorf("lookahead=4: status %d, want 400", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, "/api/inventory?lookahead=5", ""); w.Code != http.StatusOK {
		t.Errorf("lookahead=5: status %d, want 200", w.Code)
	}
	// absent lookahead defaults to 7
	w := doJSON(t, router, http.MethodGet, "/api/inventory", "")
	if w.Code != http.StatusOK {
		t.Fatalf("default lookahead: status %d, want 200", w.Code)
	}
	var view View
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Lookahead != 7 {
		t.Errorf("default lookahead = %d, want 7", view.Lookahead)
	}
}

func TestInventoryHandler_UpdateRequiresExactlyOneField(t *testing.T) {
	router := newTestRouter(t)

	if w := doJSON(t, router, http.MethodPut, "/api/inventory/Chicken", `{}`); w.Code != http.StatusBadRequest {
		t.Errorf("empty body: status %d, want 400", w.Code)
	}
	if w := doJSON(t, router, http.MethodPut, "/api/inventory/Chicken", `{"stock":2,"delta":1}`); w.Code != http.StatusBadRequest {
		t.Errorf("two fields: status %d, want 400", w.Code)
	}

	w := doJSON(t, router, http.MethodPut, "/api/inventory/Chicken", `{"stock":3}`)
	if w.Code != http.StatusOK {
		t.Fatalf("stock update: status %d, want 200; body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"stock":3`) {
		t.Errorf("expected stock 3 in response, got %s", w.Body.String())
	}
}

func TestInventoryHandler_NoPrepNullReverts(t *testing.T) {
	router := newTestRouter(t)

	if w := doJSON(t, router, http.MethodPut, "/api/inventory/Oats", `{"noPrep":false}`); w.Code != http.StatusOK {
		t.Fatalf("set override: status %d", w.Code)
	}
	w := doJSON(t, router, http.MethodPut, "/api/inventory/Oats", `{"noPrep":null}`)
	if w.Code != http.StatusOK {
		t.Fatalf("clear override: status %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "no_prep_override") {
		t.Errorf("override should be cleared, got %s", w.Body.String())
	}
}

func TestInventoryHandler_PinAndDelete(t *testing.T) {
	router := newTestRouter(t)

	if w := doJSON(t, router, http.MethodPost, "/api/inventory", `{"ingredient":"Banana","category":"fruit"}`); w.Code != http.StatusCreated {
		t.Fatalf("pin: status %d, want 201", w.Code)
	}
	if w := doJSON(t, router, http.MethodPost, "/api/inventory", `{"ingredient":"Banana","category":"junk"}`); w.Code != http.StatusBadRequest {
		t.Errorf("bad category: status %d, want 400", w.Code)
	}

	if w := doJSON(t, router, http.MethodDelete, "/api/inventory/Banana", ""); w.Code != http.StatusOK {
		t.Errorf("delete pinned: status %d, want 200", w.Code)
	}
	if w := doJSON(t, router, http.MethodDelete, "/api/inventory/Banana", ""); w.Code != http.StatusNotFound {
		t.Errorf("delete again: status %d, want 404", w.Code)
	}
}
