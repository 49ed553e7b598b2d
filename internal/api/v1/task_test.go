package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTasksRequireToken(t *testing.T) {
	app := newTestApp()

	resp := doJSON(t, app, "GET", "/api/tasks", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, "GET", "/api/tasks", "not-a-real-token", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateAndFetchTask(t *testing.T) {
	app := newTestApp()
	token, userID := registerAndLogin(t, app, uniqueName("creator"), "taskpass")

	resp := doJSON(t, app, "POST", "/api/tasks", token, map[string]string{
		"title":       "Write report",
		"description": "Quarterly numbers",
		"status":      "pending",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	assert.Equal(t, "Write report", created["title"])
	assert.Equal(t, "Quarterly numbers", created["description"])
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, float64(userID), created["userId"])

	resp = doJSON(t, app, "GET", "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tasks := decodeTasks(t, resp)
	require.Len(t, tasks, 1)
	assert.Equal(t, created["id"], tasks[0]["id"])
	assert.Equal(t, "Write report", tasks[0]["title"])
}

func TestCreateTaskMissingFields(t *testing.T) {
	app := newTestApp()
	token, _ := registerAndLogin(t, app, uniqueName("strict"), "taskpass")

	resp := doJSON(t, app, "POST", "/api/tasks", token, map[string]string{
		"status": "pending",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, "POST", "/api/tasks", token, map[string]string{
		"title": "No status",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, "POST", "/api/tasks", token, map[string]string{
		"title":  "Weird status",
		"status": "doing",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestUpdateTask(t *testing.T) {
	app := newTestApp()
	token, _ := registerAndLogin(t, app, uniqueName("updater"), "taskpass")

	resp := doJSON(t, app, "POST", "/api/tasks", token, map[string]string{
		"title":  "Walk the dog",
		"status": "pending",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	taskID := int(decodeBody(t, resp)["id"].(float64))

	resp = doJSON(t, app, "PUT", fmt.Sprintf("/api/tasks/%d", taskID), token, map[string]string{
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Task updated successfully", decodeBody(t, resp)["message"])

	resp = doJSON(t, app, "GET", "/api/tasks", token, nil)
	tasks := decodeTasks(t, resp)
	require.Len(t, tasks, 1)
	// Hanya status yang berubah
	assert.Equal(t, "completed", tasks[0]["status"])
	assert.Equal(t, "Walk the dog", tasks[0]["title"])
}

func TestUpdateTaskInvalidID(t *testing.T) {
	app := newTestApp()
	token, _ := registerAndLogin(t, app, uniqueName("badid"), "taskpass")

	resp := doJSON(t, app, "PUT", "/api/tasks/abc", token, map[string]string{
		"status": "completed",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, "PUT", "/api/tasks/999999", token, map[string]string{
		"status": "completed",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestUpdateTaskInvalidStatus(t *testing.T) {
	app := newTestApp()
	token, _ := registerAndLogin(t, app, uniqueName("badstatus"), "taskpass")

	resp := doJSON(t, app, "POST", "/api/tasks", token, map[string]string{
		"title":  "Read book",
		"status": "pending",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	taskID := int(decodeBody(t, resp)["id"].(float64))

	resp = doJSON(t, app, "PUT", fmt.Sprintf("/api/tasks/%d", taskID), token, map[string]string{
		"status": "archived",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// Task milik user lain tidak boleh terlihat atau tersentuh; semua akses
// lintas user dilaporkan sebagai 404.
func TestCrossUserIsolation(t *testing.T) {
	app := newTestApp()
	tokenA, _ := registerAndLogin(t, app, uniqueName("user_a"), "passA")
	tokenB, _ := registerAndLogin(t, app, uniqueName("user_b"), "passB")

	resp := doJSON(t, app, "POST", "/api/tasks", tokenB, map[string]string{
		"title":  "B's secret task",
		"status": "pending",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	taskID := int(decodeBody(t, resp)["id"].(float64))

	// A tidak melihat task milik B
	resp = doJSON(t, app, "GET", "/api/tasks", tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, task := range decodeTasks(t, resp) {
		assert.NotEqual(t, float64(taskID), task["id"])
	}

	// A tidak bisa mengubah atau menghapus task milik B
	resp = doJSON(t, app, "PUT", fmt.Sprintf("/api/tasks/%d", taskID), tokenA, map[string]string{
		"title": "hijacked",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, "DELETE", fmt.Sprintf("/api/tasks/%d", taskID), tokenA, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Task milik B masih utuh
	resp = doJSON(t, app, "GET", "/api/tasks", tokenB, nil)
	tasks := decodeTasks(t, resp)
	require.Len(t, tasks, 1)
	assert.Equal(t, "B's secret task", tasks[0]["title"])
}

func TestDeleteTaskTwice(t *testing.T) {
	app := newTestApp()
	token, _ := registerAndLogin(t, app, uniqueName("deleter"), "taskpass")

	resp := doJSON(t, app, "POST", "/api/tasks", token, map[string]string{
		"title":  "Throwaway",
		"status": "pending",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	taskID := int(decodeBody(t, resp)["id"].(float64))

	resp = doJSON(t, app, "DELETE", fmt.Sprintf("/api/tasks/%d", taskID), token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, "DELETE", fmt.Sprintf("/api/tasks/%d", taskID), token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestEndToEndScenario(t *testing.T) {
	app := newTestApp()
	username := uniqueName("alice")

	resp := doJSON(t, app, "POST", "/api/auth/register", "", map[string]string{
		"username": username,
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	aliceID := int(decodeBody(t, resp)["userId"].(float64))

	resp = doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"username": username,
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := decodeBody(t, resp)["token"].(string)
	require.NotEmpty(t, token)

	resp = doJSON(t, app, "POST", "/api/tasks", token, map[string]string{
		"title":  "Buy milk",
		"status": "pending",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	assert.Equal(t, float64(aliceID), created["userId"])

	resp = doJSON(t, app, "GET", "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tasks := decodeTasks(t, resp)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0]["title"])
	assert.Equal(t, "pending", tasks[0]["status"])
	assert.Nil(t, tasks[0]["description"])
}
