package handlers

import (
	"net/http"
	"testing"

	"github.com/ziyaarah/backend/internal/services"
)

func joinTrip(t *testing.T, env *testEnv, token, code string) map[string]any {
	t.Helper()

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/trips/join", map[string]any{
		"group_code": code,
	}, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)

	return dataMap(t, decodeJSONMap(t, resp))
}

func TestJoinTrip(t *testing.T) {
	env := setupTestEnv(t)
	_, ownerToken := createTestUser(t, env.db, "Owner", "owner@test.com")
	_, joinerToken := createTestUser(t, env.db, "Joiner", "joiner@test.com")
	trip := createTestTrip(t, env, ownerToken, "Hajj 2025")
	code := trip["group_code"].(string)

	t.Run("joins with a valid code", func(t *testing.T) {
		result := joinTrip(t, env, joinerToken, code)
		if result["trip_id"] != trip["id"] {
			t.Errorf("expected trip %v, got %v", trip["id"], result["trip_id"])
		}
		if result["already_member"] != false {
			t.Errorf("first join should not report already_member: %+v", result)
		}
	})

	t.Run("repeat join is idempotent", func(t *testing.T) {
		result := joinTrip(t, env, joinerToken, code)
		if result["already_member"] != true {
			t.Errorf("repeat join should report already_member: %+v", result)
		}
	})

	t.Run("codes are normalized before lookup", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/trips/join", map[string]any{
			"group_code": "  " + code + "  ",
		}, authHeaders(ownerToken))
		assertStatus(t, resp, http.StatusOK)
	})

	t.Run("unknown code is NotFound", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/trips/join", map[string]any{
			"group_code": "ZIYAA19999999",
		}, authHeaders(joinerToken))
		assertStatus(t, resp, http.StatusNotFound)
		assertEnvelopeError(t, decodeJSONMap(t, resp), services.ErrInvalidGroupCode.Error())
	})

	t.Run("empty code is rejected", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/trips/join", map[string]any{}, authHeaders(joinerToken))
		assertStatus(t, resp, http.StatusBadRequest)
	})
}

func TestListMembers(t *testing.T) {
	env := setupTestEnv(t)
	owner, ownerToken := createTestUser(t, env.db, "Owner", "owner@test.com")
	_, memberToken := createTestUser(t, env.db, "Member", "member@test.com")
	_, strangerToken := createTestUser(t, env.db, "Stranger", "stranger@test.com")
	trip := createTestTrip(t, env, ownerToken, "Hajj 2025")
	tripID := trip["id"].(string)
	joinTrip(t, env, memberToken, trip["group_code"].(string))

	resp := performRequest(t, env.app, http.MethodGet, "/api/trips/"+tripID+"/members", nil, authHeaders(memberToken))
	assertStatus(t, resp, http.StatusOK)

	members := dataList(t, decodeJSONMap(t, resp))
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	first := members[0].(map[string]any)
	if first["role"] != "owner" {
		t.Errorf("expected the owner first in join order, got %v", first["role"])
	}
	user, ok := first["user"].(map[string]any)
	if !ok || user["email"] != owner.Email {
		t.Errorf("expected preloaded user details, got %v", first["user"])
	}

	resp = performRequest(t, env.app, http.MethodGet, "/api/trips/"+tripID+"/members", nil, authHeaders(strangerToken))
	assertStatus(t, resp, http.StatusForbidden)
}

func TestAddMember(t *testing.T) {
	env := setupTestEnv(t)
	_, ownerToken := createTestUser(t, env.db, "Owner", "owner@test.com")
	invitee, _ := createTestUser(t, env.db, "Invitee", "invitee@test.com")
	_, strangerToken := createTestUser(t, env.db, "Stranger", "stranger@test.com")
	trip := createTestTrip(t, env, ownerToken, "Hajj 2025")
	tripID := trip["id"].(string)

	t.Run("adds a member directly", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/trips/"+tripID+"/members", map[string]any{
			"user_id": invitee.ID.String(),
		}, authHeaders(ownerToken))
		assertStatus(t, resp, http.StatusCreated)

		data := dataMap(t, decodeJSONMap(t, resp))
		if data["role"] != "member" {
			t.Errorf("expected member role by default, got %v", data["role"])
		}
	})

	t.Run("second add conflicts", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/trips/"+tripID+"/members", map[string]any{
			"user_id": invitee.ID.String(),
		}, authHeaders(ownerToken))
		assertStatus(t, resp, http.StatusConflict)
		assertEnvelopeError(t, decodeJSONMap(t, resp), services.ErrAlreadyMember.Error())
	})

	t.Run("owner role cannot be granted", func(t *testing.T) {
		other, _ := createTestUser(t, env.db, "Other", "other@test.com")
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/trips/"+tripID+"/members", map[string]any{
			"user_id": other.ID.String(),
			"role":    "owner",
		}, authHeaders(ownerToken))
		assertStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("non-member requester is forbidden", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/trips/"+tripID+"/members", map[string]any{
			"user_id": invitee.ID.String(),
		}, authHeaders(strangerToken))
		assertStatus(t, resp, http.StatusForbidden)
	})

	t.Run("unknown user is NotFound", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/trips/"+tripID+"/members", map[string]any{
			"user_id": "00000000-0000-0000-0000-000000000042",
		}, authHeaders(ownerToken))
		assertStatus(t, resp, http.StatusNotFound)
	})
}

func TestRemoveMember(t *testing.T) {
	env := setupTestEnv(t)
	owner, ownerToken := createTestUser(t, env.db, "Owner", "owner@test.com")
	member, memberToken := createTestUser(t, env.db, "Member", "member@test.com")
	trip := createTestTrip(t, env, ownerToken, "Hajj 2025")
	tripID := trip["id"].(string)
	joinTrip(t, env, memberToken, trip["group_code"].(string))

	t.Run("members may not remove", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodDelete, "/api/trips/"+tripID+"/members/"+owner.ID.String(), nil, authHeaders(memberToken))
		assertStatus(t, resp, http.StatusForbidden)
		assertEnvelopeError(t, decodeJSONMap(t, resp), services.ErrNotAuthorized.Error())
	})

	t.Run("owner cannot be removed, even by themselves", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodDelete, "/api/trips/"+tripID+"/members/"+owner.ID.String(), nil, authHeaders(ownerToken))
		assertStatus(t, resp, http.StatusForbidden)
		assertEnvelopeError(t, decodeJSONMap(t, resp), services.ErrCannotRemoveOwner.Error())
	})

	t.Run("owner removes a member", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodDelete, "/api/trips/"+tripID+"/members/"+member.ID.String(), nil, authHeaders(ownerToken))
		assertStatus(t, resp, http.StatusOK)

		// The removed member loses access immediately.
		resp = performRequest(t, env.app, http.MethodGet, "/api/trips/"+tripID, nil, authHeaders(memberToken))
		assertStatus(t, resp, http.StatusForbidden)
	})

	t.Run("removing a non-member is NotFound", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodDelete, "/api/trips/"+tripID+"/members/"+member.ID.String(), nil, authHeaders(ownerToken))
		assertStatus(t, resp, http.StatusNotFound)
	})
}
