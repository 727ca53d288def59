package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WunderTransportTechnologies/ultimate-todo/internal/auth"
	"github.com/WunderTransportTechnologies/ultimate-todo/internal/filter"
	"github.com/WunderTransportTechnologies/ultimate-todo/internal/model"
	"github.com/WunderTransportTechnologies/ultimate-todo/internal/repository"
	"github.com/WunderTransportTechnologies/ultimate-todo/internal/service"
)

var testSecret = []byte("test-secret")

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := repository.NewDB(dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	todos := repository.NewTodoRepository(db)

	authSvc := auth.NewService(users, categories, testSecret, time.Hour)
	srv := New(authSvc, service.NewTodoService(todos), service.NewCategoryService(categories), users, testSecret)
	return srv.Handler([]string{"*"})
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func signUp(t *testing.T, h http.Handler, email string) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": email, "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestSignUpAndSignInFlow(t *testing.T) {
	h := newTestHandler(t)

	token := signUp(t, h, "alice@example.com")

	rec := doJSON(t, h, http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "alice@example.com", me.Email)

	// Duplicate signup is a conflict with a distinct message.
	rec = doJSON(t, h, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "alice@example.com", "password": "hunter22",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already in use")

	rec = doJSON(t, h, http.MethodPost, "/auth/signin", "", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/auth/signin", "", map[string]string{
		"email": "alice@example.com", "password": "hunter22",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/auth/signout", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/todos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/todos", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTodoLifecycle(t *testing.T) {
	h := newTestHandler(t)
	token := signUp(t, h, "alice@example.com")

	rec := doJSON(t, h, http.MethodPost, "/todos", token, map[string]string{
		"title": "Buy Milk", "dueDate": "2026-09-15",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created model.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.StatusPending, created.Status)
	assert.Equal(t, model.PriorityMedium, created.Priority)
	require.NotNil(t, created.DueDate)

	// Empty title is rejected before the store.
	rec = doJSON(t, h, http.MethodPost, "/todos", token, map[string]string{"title": " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/todos/"+created.ID+"/status", token, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/todos?status=completed", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var completed []model.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &completed))
	require.Len(t, completed, 1)
	assert.Equal(t, created.ID, completed[0].ID)

	rec = doJSON(t, h, http.MethodDelete, "/todos/"+created.ID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/todos?status=all", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []model.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Empty(t, all)

	// Deleting again is still a success.
	rec = doJSON(t, h, http.MethodDelete, "/todos/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTodoSearchAndBoardView(t *testing.T) {
	h := newTestHandler(t)
	token := signUp(t, h, "alice@example.com")

	for _, title := range []string{"Buy Milk", "Walk dog", "Buy stamps"} {
		rec := doJSON(t, h, http.MethodPost, "/todos", token, map[string]string{"title": title})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, h, http.MethodGet, "/todos?q=buy", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var matched []model.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matched))
	assert.Len(t, matched, 2)

	rec = doJSON(t, h, http.MethodGet, "/todos?view=board", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var board filter.Partition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &board))
	assert.Len(t, board.Pending, 3)
	assert.Empty(t, board.InProgress)
	assert.Empty(t, board.Completed)
}

func TestTodoInvalidFilterRejected(t *testing.T) {
	h := newTestHandler(t)
	token := signUp(t, h, "alice@example.com")

	rec := doJSON(t, h, http.MethodGet, "/todos?status=done", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryEndpoints(t *testing.T) {
	h := newTestHandler(t)
	token := signUp(t, h, "alice@example.com")

	// Signup seeded the starter set.
	rec := doJSON(t, h, http.MethodGet, "/categories", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []model.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.Len(t, categories, 4)

	rec = doJSON(t, h, http.MethodPost, "/categories", token, map[string]string{"name": "Errands", "color": "#123456"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, h, http.MethodPatch, "/categories/"+created.ID, token, map[string]string{"color": "#654321"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/categories/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "#654321", got.Color)

	rec = doJSON(t, h, http.MethodDelete, "/categories/"+created.ID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/categories/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/categories", token, map[string]string{"name": " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUsersCannotTouchEachOthersTodos(t *testing.T) {
	h := newTestHandler(t)
	alice := signUp(t, h, "alice@example.com")
	bob := signUp(t, h, "bob@example.com")

	rec := doJSON(t, h, http.MethodPost, "/todos", alice, map[string]string{"title": "secret"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, h, http.MethodGet, "/todos", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var bobTodos []model.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bobTodos))
	assert.Empty(t, bobTodos)

	// Bob's update against Alice's id silently affects nothing.
	rec = doJSON(t, h, http.MethodPatch, "/todos/"+created.ID, bob, map[string]string{"title": "stolen"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/todos", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var aliceTodos []model.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &aliceTodos))
	require.Len(t, aliceTodos, 1)
	assert.Equal(t, "secret", aliceTodos[0].Title)
}

func TestLinkTelegramChat(t *testing.T) {
	h := newTestHandler(t)
	token := signUp(t, h, "alice@example.com")

	rec := doJSON(t, h, http.MethodPut, "/me/telegram", token, map[string]int64{"chatId": 4242})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, int64(4242), me.TelegramChatID)
}
