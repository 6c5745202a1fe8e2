package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-lost-found/internal/router"
)

func TestHTTP_EndToEnd_LostFoundMatchLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"
	finderID := "finder-1"

	// 1) Dueño registra mascota y la reporta perdida
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":    "Max",
		"species": "dog",
		"breed":   "Golden Retriever",
	})

	lostID := createReport(t, ts.URL, "/lost", ownerID, map[string]any{
		"pet_id":             petID,
		"last_seen_location": "Central Park North",
		"last_seen_date":     "2025-03-01",
		"color":              "golden brown",
		"size":               "large",
		"description":        "Friendly, red collar",
	})

	// 2) Otra persona reporta un perro encontrado parecido
	foundID := createReport(t, ts.URL, "/found", finderID, map[string]any{
		"pet_type":       "dog",
		"breed":          "Golden Retriever",
		"color":          "golden brown",
		"size":           "large",
		"description":    "Found near the lake",
		"location_found": "Central Park South",
		"date_found":     "2025-03-04",
		"contact_phone":  "555-0101",
		"contact_email":  "finder@example.com",
	})

	// 3) Ambos ven el match con score 90
	var match struct {
		ID            string   `json:"id"`
		LostReportID  string   `json:"lost_report_id"`
		FoundReportID string   `json:"found_report_id"`
		MatchScore    float64  `json:"match_score"`
		MatchReasons  []string `json:"match_reasons"`
		Status        string   `json:"status"`
		IsConfirmed   bool     `json:"is_confirmed"`
	}
	for _, uid := range []string{ownerID, finderID} {
		st, body := doReq(t, ts.URL, "GET", "/matches", uid, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list matches for %s, got %d body=%s", uid, st, string(body))
		}
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil || len(items) != 1 {
			t.Fatalf("expected exactly 1 match for %s, body=%s", uid, string(body))
		}
		_ = json.Unmarshal(items[0], &match)
	}
	if match.LostReportID != lostID || match.FoundReportID != foundID {
		t.Fatalf("unexpected match pair: %+v", match)
	}
	if match.MatchScore != 90 {
		t.Fatalf("expected score 90, got %v reasons=%v", match.MatchScore, match.MatchReasons)
	}
	if match.Status != "pending_confirmation" {
		t.Fatalf("expected pending_confirmation, got %s", match.Status)
	}

	// 4) Los reportes quedan en matched y hay notificación para cada parte
	if st := reportStatus(t, ts.URL, "/lost/"+lostID, ownerID); st != "matched" {
		t.Fatalf("expected lost report matched, got %s", st)
	}
	if st := reportStatus(t, ts.URL, "/found/"+foundID, finderID); st != "matched" {
		t.Fatalf("expected found report matched, got %s", st)
	}
	for _, uid := range []string{ownerID, finderID} {
		st, body := doReq(t, ts.URL, "GET", "/notifications/unread-count", uid, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 unread count, got %d body=%s", st, string(body))
		}
		var resp struct {
			UnreadCount int `json:"unread_count"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.UnreadCount != 1 {
			t.Fatalf("expected 1 unread notification for %s, got %d", uid, resp.UnreadCount)
		}
	}

	// 5) Un tercero no puede tocar el match
	{
		st, _ := doReq(t, ts.URL, "POST", "/matches/"+match.ID+"/confirm", "stranger", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 confirm by stranger, got %d", st)
		}
	}

	// 6) No se puede resolver sin las dos confirmaciones
	{
		st, _ := doReq(t, ts.URL, "POST", "/matches/"+match.ID+"/resolve", ownerID, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 resolve before confirmation, got %d", st)
		}
	}

	// 7) Confirman ambos
	{
		st, body := doReq(t, ts.URL, "POST", "/matches/"+match.ID+"/confirm", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 confirm by owner, got %d body=%s", st, string(body))
		}
		st, body = doReq(t, ts.URL, "POST", "/matches/"+match.ID+"/confirm", finderID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 confirm by finder, got %d body=%s", st, string(body))
		}
		_ = json.Unmarshal(body, &match)
		if match.Status != "confirmed" || !match.IsConfirmed {
			t.Fatalf("expected confirmed match, got %+v", match)
		}
	}

	// 8) Resolver cierra también los dos reportes
	{
		st, body := doReq(t, ts.URL, "POST", "/matches/"+match.ID+"/resolve", finderID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 resolve, got %d body=%s", st, string(body))
		}
	}
	if st := reportStatus(t, ts.URL, "/lost/"+lostID, ownerID); st != "resolved" {
		t.Fatalf("expected lost report resolved, got %s", st)
	}
	if st := reportStatus(t, ts.URL, "/found/"+foundID, finderID); st != "resolved" {
		t.Fatalf("expected found report resolved, got %s", st)
	}

	// 9) Un match resuelto es final
	{
		st, _ := doReq(t, ts.URL, "POST", "/matches/"+match.ID+"/reject", ownerID, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 reject after resolve, got %d", st)
		}
	}
}

func TestHTTP_LostReport_Guards(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"
	petID := createPet(t, ts.URL, ownerID, map[string]any{"name": "Luna", "species": "cat"})

	payload := map[string]any{
		"pet_id":             petID,
		"last_seen_location": "Main Street",
		"last_seen_date":     "2025-05-10",
	}

	// sin usuario => 401
	{
		st, _ := doReq(t, ts.URL, "POST", "/lost", "", payload)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without user, got %d", st)
		}
	}

	// mascota ajena => 403
	{
		st, _ := doReq(t, ts.URL, "POST", "/lost", "someone-else", payload)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for another user's pet, got %d", st)
		}
	}

	createReport(t, ts.URL, "/lost", ownerID, payload)

	// segundo reporte activo de la misma mascota => 409
	{
		st, _ := doReq(t, ts.URL, "POST", "/lost", ownerID, payload)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate active lost report, got %d", st)
		}
	}

	// fecha inválida => 400
	{
		bad := map[string]any{"pet_id": petID, "last_seen_location": "Main Street", "last_seen_date": "10/05/2025"}
		st, _ := doReq(t, ts.URL, "POST", "/lost", ownerID, bad)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 invalid date, got %d", st)
		}
	}
}

func TestHTTP_FoundReport_RejectsOwnLostPet(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"
	petID := createPet(t, ts.URL, ownerID, map[string]any{"name": "Max", "species": "dog", "breed": "Beagle"})
	createReport(t, ts.URL, "/lost", ownerID, map[string]any{
		"pet_id":             petID,
		"last_seen_location": "River Side Park",
		"last_seen_date":     "2025-06-01",
		"color":              "brown white",
		"size":               "medium",
	})

	st, body := doReq(t, ts.URL, "POST", "/found", ownerID, map[string]any{
		"pet_type":       "dog",
		"breed":          "Beagle",
		"color":          "brown white",
		"size":           "medium",
		"description":    "beagle by the river",
		"location_found": "River Side Park",
		"date_found":     "2025-06-02",
		"contact_phone":  "555-0102",
		"contact_email":  "owner@example.com",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 when reporting own lost pet as found, got %d body=%s", st, string(body))
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected 200 ok, got %d body=%s", st, string(body))
	}
}

func createPet(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()
	return createReport(t, baseURL, "/pets", userID, payload)
}

// createReport hace POST y devuelve el id del recurso creado.
func createReport(t *testing.T, baseURL, path, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 POST %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("POST %s: missing id body=%s", path, string(body))
	}
	return resp.ID
}

func reportStatus(t *testing.T, baseURL, path, userID string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", path, userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 GET %s, got %d body=%s", path, st, string(body))
	}
	var resp struct {
		Status string `json:"status"`
	}
	_ = json.Unmarshal(body, &resp)
	return resp.Status
}

func doReq(t *testing.T, baseURL, method, path, userID string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}
