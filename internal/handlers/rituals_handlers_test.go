package handlers

import (
	"net/http"
	"testing"

	"github.com/ziyaarah/backend/internal/services"
)

func createTestRitual(t *testing.T, env *testEnv, token, tripID, title string) map[string]any {
	t.Helper()

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/trips/"+tripID+"/rituals", map[string]any{
		"title": title,
		"order": 1,
	}, authHeaders(token))
	assertStatus(t, resp, http.StatusCreated)

	return dataMap(t, decodeJSONMap(t, resp))
}

func TestRituals(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "Owner", "owner@test.com")
	_, strangerToken := createTestUser(t, env.db, "Stranger", "stranger@test.com")
	trip := createTestTrip(t, env, token, "Hajj 2025")
	tripID := trip["id"].(string)

	ritual := createTestRitual(t, env, token, tripID, "Tawaf")
	ritualID := ritual["id"].(string)

	t.Run("listing is member gated", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/trips/"+tripID+"/rituals", nil, authHeaders(token))
		assertStatus(t, resp, http.StatusOK)
		if rituals := dataList(t, decodeJSONMap(t, resp)); len(rituals) != 1 {
			t.Errorf("expected 1 ritual, got %d", len(rituals))
		}

		resp = performRequest(t, env.app, http.MethodGet, "/api/trips/"+tripID+"/rituals", nil, authHeaders(strangerToken))
		assertStatus(t, resp, http.StatusForbidden)
	})

	t.Run("update", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPut, "/api/rituals/"+ritualID, map[string]any{
			"description": "Seven circuits of the Kaaba",
		}, authHeaders(token))
		assertStatus(t, resp, http.StatusOK)
		data := dataMap(t, decodeJSONMap(t, resp))
		if data["description"] != "Seven circuits of the Kaaba" {
			t.Errorf("expected updated description, got %v", data["description"])
		}
		if data["title"] != "Tawaf" {
			t.Errorf("untouched title changed: %v", data["title"])
		}
	})

	t.Run("stranger cannot update", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPut, "/api/rituals/"+ritualID, map[string]any{
			"title": "Hijacked",
		}, authHeaders(strangerToken))
		assertStatus(t, resp, http.StatusForbidden)
	})
}

func TestRitualSteps(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "Owner", "owner@test.com")
	trip := createTestTrip(t, env, token, "Hajj 2025")
	tripID := trip["id"].(string)
	ritual := createTestRitual(t, env, token, tripID, "Tawaf")
	ritualID := ritual["id"].(string)

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/rituals/"+ritualID+"/steps", map[string]any{
		"title": "First circuit",
		"type":  "action",
		"order": 1,
	}, authHeaders(token))
	assertStatus(t, resp, http.StatusCreated)
	step := dataMap(t, decodeJSONMap(t, resp))
	stepID := step["id"].(string)
	if step["completed"] != false {
		t.Errorf("new steps start incomplete, got %v", step["completed"])
	}

	t.Run("complete a step", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPut, "/api/ritual-steps/"+stepID+"/complete", map[string]any{
			"completed": true,
		}, authHeaders(token))
		assertStatus(t, resp, http.StatusOK)
		if data := dataMap(t, decodeJSONMap(t, resp)); data["completed"] != true {
			t.Errorf("expected completed=true, got %v", data["completed"])
		}
	})

	t.Run("steps appear nested under their ritual", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/trips/"+tripID+"/rituals", nil, authHeaders(token))
		assertStatus(t, resp, http.StatusOK)
		rituals := dataList(t, decodeJSONMap(t, resp))
		first := rituals[0].(map[string]any)
		steps, ok := first["steps"].([]any)
		if !ok || len(steps) != 1 {
			t.Fatalf("expected 1 nested step, got %v", first["steps"])
		}
	})

	t.Run("deleting the ritual removes its steps", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodDelete, "/api/rituals/"+ritualID, nil, authHeaders(token))
		assertStatus(t, resp, http.StatusOK)

		resp = performJSONRequest(t, env.app, http.MethodPut, "/api/ritual-steps/"+stepID+"/complete", map[string]any{
			"completed": false,
		}, authHeaders(token))
		assertStatus(t, resp, http.StatusNotFound)
		assertEnvelopeError(t, decodeJSONMap(t, resp), services.ErrStepNotFound.Error())
	})
}
