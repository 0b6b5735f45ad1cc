package handlers

import (
	"net/http"
	"testing"

	"github.com/ziyaarah/backend/internal/services"
)

func createTestCheckpoint(t *testing.T, env *testEnv, token, tripID, title string) map[string]any {
	t.Helper()

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/trips/"+tripID+"/checkpoints", map[string]any{
		"title": title,
		"type":  "document",
	}, authHeaders(token))
	assertStatus(t, resp, http.StatusCreated)

	return dataMap(t, decodeJSONMap(t, resp))
}

func TestCreateCheckpoint(t *testing.T) {
	env := setupTestEnv(t)
	user, token := createTestUser(t, env.db, "Owner", "owner@test.com")
	_, strangerToken := createTestUser(t, env.db, "Stranger", "stranger@test.com")
	trip := createTestTrip(t, env, token, "Hajj 2025")
	tripID := trip["id"].(string)

	checkpoint := createTestCheckpoint(t, env, token, tripID, "Visa")
	if checkpoint["completed"] != false {
		t.Errorf("new checkpoints start incomplete, got %v", checkpoint["completed"])
	}
	if checkpoint["created_by"] != user.ID.String() {
		t.Errorf("expected created_by %s, got %v", user.ID, checkpoint["created_by"])
	}

	t.Run("rejects a missing type", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/trips/"+tripID+"/checkpoints", map[string]any{
			"title": "Typeless",
		}, authHeaders(token))
		assertStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/trips/"+tripID+"/checkpoints", map[string]any{
			"title": "Sneaky",
			"type":  "document",
		}, authHeaders(strangerToken))
		assertStatus(t, resp, http.StatusForbidden)
	})

	t.Run("unknown trip is NotFound before the membership check", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/trips/00000000-0000-0000-0000-000000000042/checkpoints", map[string]any{
			"title": "Orphan",
			"type":  "document",
		}, authHeaders(strangerToken))
		assertStatus(t, resp, http.StatusNotFound)
		assertEnvelopeError(t, decodeJSONMap(t, resp), services.ErrTripNotFound.Error())
	})
}

func TestCheckpointCompletion(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "Owner", "owner@test.com")
	trip := createTestTrip(t, env, token, "Hajj 2025")
	checkpoint := createTestCheckpoint(t, env, token, trip["id"].(string), "Visa")
	checkpointID := checkpoint["id"].(string)

	resp := performJSONRequest(t, env.app, http.MethodPut, "/api/checkpoints/"+checkpointID+"/complete", map[string]any{
		"completed": true,
	}, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)
	if data := dataMap(t, decodeJSONMap(t, resp)); data["completed"] != true {
		t.Errorf("expected completed=true, got %v", data["completed"])
	}

	// Completion toggles both ways.
	resp = performJSONRequest(t, env.app, http.MethodPut, "/api/checkpoints/"+checkpointID+"/complete", map[string]any{
		"completed": false,
	}, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)
	if data := dataMap(t, decodeJSONMap(t, resp)); data["completed"] != false {
		t.Errorf("expected completed=false, got %v", data["completed"])
	}
}

func TestDeleteCheckpoint(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "Owner", "owner@test.com")
	_, memberToken := createTestUser(t, env.db, "Member", "member@test.com")
	trip := createTestTrip(t, env, token, "Hajj 2025")
	checkpoint := createTestCheckpoint(t, env, token, trip["id"].(string), "Visa")
	checkpointID := checkpoint["id"].(string)
	joinTrip(t, env, memberToken, trip["group_code"].(string))

	// Any member may delete a checkpoint, not only its creator.
	resp := performRequest(t, env.app, http.MethodDelete, "/api/checkpoints/"+checkpointID, nil, authHeaders(memberToken))
	assertStatus(t, resp, http.StatusOK)

	resp = performRequest(t, env.app, http.MethodGet, "/api/checkpoints/"+checkpointID, nil, authHeaders(token))
	assertStatus(t, resp, http.StatusNotFound)
	assertEnvelopeError(t, decodeJSONMap(t, resp), services.ErrCheckpointNotFound.Error())
}
