package app

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroups_Create(t *testing.T) {
	s := newTestServer(t)
	_, token := s.signUp("caller")
	master := s.createUser("master@test.com", "master", "testPassword")

	group := s.createGroup(token, id(master), "testTable")

	assert.Equal(t, "testTable", group["name"])
	assert.Equal(t, "testDescription", group["description"])
	assert.Equal(t, "testSchedule", group["schedule"])
	assert.Equal(t, "testLocation", group["location"])
	assert.Equal(t, "testChronicle", group["chronicle"])
	assert.Equal(t, id(master), num(group["master"]))

	players, ok := group["players"].([]any)
	require.True(t, ok, group)
	require.Len(t, players, 1)
	assert.Equal(t, id(master), id(players[0].(map[string]any)))
}

func TestGroups_CreateValidation(t *testing.T) {
	s := newTestServer(t)
	_, token := s.signUp("caller")

	status, out := s.do(http.MethodPost, "/groups", token, body{})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "BAD_REQUEST", out["code"])
	assert.EqualValues(t, http.StatusUnprocessableEntity, out["status"])

	status, _ = s.do(http.MethodPost, "/groups", token, body{
		"name": "n", "description": "d", "schedule": "s", "location": "l", "chronicle": "c", "master": 9999,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = s.do(http.MethodPost, "/groups", "", body{})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestGroups_Get(t *testing.T) {
	s := newTestServer(t)
	caller, token := s.signUp("caller")
	group := s.createGroup(token, id(caller), "testTable")

	status, out := s.do(http.MethodGet, fmt.Sprintf("/groups/%d", id(group)), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "testTable", obj(out, "group")["name"])
	assert.Len(t, obj(out, "group")["players"], 1)

	status, out = s.do(http.MethodGet, "/groups/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "resource not found", out["message"])
}

func TestHealthAndDocs(t *testing.T) {
	s := newTestServer(t)

	status, out := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", out["status"])

	status, out = s.do(http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2.0", out["swagger"])

	status, out = s.do(http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "BAD_REQUEST", out["code"])
}
