package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"boardify-backend/internal/api"
	"boardify-backend/internal/api/routes"
	"boardify-backend/internal/config"
	"boardify-backend/internal/storage"
	"boardify-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db := testutil.OpenDB(t)
	blobs, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{JWTSecret: "test-secret", Port: "0"}
	app := api.NewServer()
	routes.Register(app, db, blobs, cfg)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func doJSONList(t *testing.T, app *fiber.App, method, path, token string) (*http.Response, []map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)

	var decoded []map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func register(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": "s3cret",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// TestBoardCollaborationFlow walks two users through creating a board,
// inviting, building lists and cards, and completing work.
func TestBoardCollaborationFlow(t *testing.T) {
	app := newTestApp(t)

	tokenA := register(t, app, "alice")
	tokenB := register(t, app, "bob")

	// Alice creates a board.
	resp, board := doJSON(t, app, fiber.MethodPost, "/api/v1/boards", tokenA, fiber.Map{"title": "Sprint"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	boardID, _ := board["id"].(string)
	require.NotEmpty(t, boardID)

	// Bob has no relation to it yet.
	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/v1/boards/"+boardID, tokenB, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Alice invites Bob.
	resp, member := doJSON(t, app, fiber.MethodPost, "/api/v1/boards/"+boardID+"/members", tokenA, fiber.Map{"username": "bob"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "member", member["role"])

	// Bob builds lists; positions append in creation order.
	resp, todo := doJSON(t, app, fiber.MethodPost, "/api/v1/lists", tokenB, fiber.Map{"title": "Todo", "board_id": boardID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 0, todo["position"])

	resp, done := doJSON(t, app, fiber.MethodPost, "/api/v1/lists", tokenB, fiber.Map{"title": "Done", "board_id": boardID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 1, done["position"])

	// Alice adds a card to Todo.
	resp, card := doJSON(t, app, fiber.MethodPost, "/api/v1/cards", tokenA, fiber.Map{
		"title": "Fix bug", "list_id": todo["id"],
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 0, card["position"])
	cardID, _ := card["id"].(string)

	// Bob completes it.
	resp, updated := doJSON(t, app, fiber.MethodPut, "/api/v1/cards/"+cardID, tokenB, fiber.Map{"completed": true})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, updated["completed"])

	// The feed narrates it, newest first.
	resp, feed := doJSONList(t, app, fiber.MethodGet, "/api/v1/boards/"+boardID+"/activities", tokenA)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotEmpty(t, feed)
	assert.Equal(t, "completed", feed[0]["action"])
	assert.Equal(t, "completed card 'Fix bug'", feed[0]["description"])

	// Unauthenticated requests are rejected outright.
	resp, body := doJSON(t, app, fiber.MethodGet, "/api/v1/boards/"+boardID, "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestLoginFlow(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "alice")

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"username": "alice", "password": "s3cret",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	resp, me := doJSON(t, app, fiber.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", me["username"])
	_, hasHash := me["password_hash"]
	assert.False(t, hasHash, "password hash must never be serialized")

	resp, body = doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"username": "alice", "password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid username or password", body["error"])
}

func TestUploadSizeCap(t *testing.T) {
	app := newTestApp(t)
	token := register(t, app, "alice")

	resp, board := doJSON(t, app, fiber.MethodPost, "/api/v1/boards", token, fiber.Map{"title": "Sprint"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp, list := doJSON(t, app, fiber.MethodPost, "/api/v1/lists", token, fiber.Map{"title": "Todo", "board_id": board["id"]})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp, card := doJSON(t, app, fiber.MethodPost, "/api/v1/cards", token, fiber.Map{"title": "Fix bug", "list_id": list["id"]})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	cardID, _ := card["id"].(string)

	upload := func(size int) (*http.Response, map[string]any) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("file", "notes.txt")
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("a"), size))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(fiber.MethodPost, "/api/v1/cards/"+cardID+"/attachments", &buf)
		req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		resp, err := app.Test(req, 30000)
		require.NoError(t, err)

		var decoded map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&decoded)
		return resp, decoded
	}

	// One byte over the cap is rejected with the standard error shape.
	resp, body := upload(config.MaxUploadBytes + 1)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "file too large", body["error"])

	resp, attachment := upload(5)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 5, attachment["file_size"])
	assert.Equal(t, "notes.txt", attachment["filename"])
}

func TestErrorShapes(t *testing.T) {
	app := newTestApp(t)
	token := register(t, app, "alice")

	// Missing title -> 400 with an error body.
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/boards", token, fiber.Map{"title": ""})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "title is required", body["error"])

	// Unknown board -> 404.
	resp, body = doJSON(t, app, fiber.MethodGet,
		fmt.Sprintf("/api/v1/boards/%s", "11111111-2222-3333-4444-555555555555"), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "board not found", body["error"])

	// Malformed id -> 400.
	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/v1/boards/not-a-uuid", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
