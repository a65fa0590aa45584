package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dovira-ua/dovira/backend/internal/models"
)

func TestFeedbackHandler_Submit(t *testing.T) {
	r, db := setupTestRouter(t)
	h := NewFeedbackHandler(db)
	r.POST("/api/public/submit", h.Submit)

	body, _ := json.Marshal(map[string]interface{}{
		"contact_name":         "Оксана Коваль",
		"contact_phone":        "+380501234567",
		"district_or_city":     "Львів",
		"incident_type":        "патрулювання",
		"rate_politeness":      4,
		"rate_professionalism": 5,
		"rate_effectiveness":   4,
		"rate_overall":         4,
		"comment":              "дякую за допомогу",
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/public/submit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Data["id"] == nil || resp.Data["id"].(float64) < 1 {
		t.Errorf("expected a feedback id in response, got %v", resp.Data)
	}

	var count int64
	db.Model(&models.Feedback{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 feedback row, got %d", count)
	}
}

func TestFeedbackHandler_Submit_MissingRatings(t *testing.T) {
	r, db := setupTestRouter(t)
	h := NewFeedbackHandler(db)
	r.POST("/api/public/submit", h.Submit)

	body, _ := json.Marshal(map[string]interface{}{
		"contact_phone": "+380501234567",
		"comment":       "без оцінок",
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/public/submit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing ratings, got %d", w.Code)
	}
}

func TestFeedbackHandler_GetByID_NotFound(t *testing.T) {
	r, db := setupTestRouter(t)
	h := NewFeedbackHandler(db)
	r.GET("/api/feedback/:id", h.GetByID)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/feedback/999", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown feedback, got %d", w.Code)
	}
}

func TestFeedbackHandler_InvalidID(t *testing.T) {
	r, db := setupTestRouter(t)
	h := NewFeedbackHandler(db)
	r.GET("/api/feedback/:id", h.GetByID)
	r.DELETE("/api/feedback/:id", h.Delete)

	for _, method := range []string{"GET", "DELETE"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(method, "/api/feedback/abc", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400 for non-numeric id, got %d", method, w.Code)
		}
	}
}
