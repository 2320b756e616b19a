package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"warbler/internal/cache"
	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestApp wires a full server against an in-memory database and an
// in-process session store, with the real route table and auth middleware.
func setupTestApp(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sessions := session.NewStore(nil, time.Hour)
	middleware.InitAuth(sessions)

	cfg := &config.Config{Env: "test", SessionTTLHours: 1, Port: "0"}
	s, err := NewServerWithDeps(cfg, db, nil, sessions)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)
	return app, s, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	var payload map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload), "body: %s", raw)
	}
	return resp, payload
}

func signupUser(t *testing.T, app *fiber.App, username, email string) (token string, userID uint) {
	t.Helper()

	resp, payload := doJSON(t, app, http.MethodPost, "/signup", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "testuser",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "signup payload: %v", payload)

	token = payload["token"].(string)
	user := payload["user"].(map[string]any)
	return token, uint(user["id"].(float64))
}

func TestSignupLoginPostDeleteFlow(t *testing.T) {
	app, _, _ := setupTestApp(t)

	// Sign up and post as the new user.
	_, userID := signupUser(t, app, "testuser", "test@test.com")

	resp, payload := doJSON(t, app, http.MethodPost, "/login", "", map[string]string{
		"username": "testuser",
		"password": "testuser",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := payload["token"].(string)

	resp, payload = doJSON(t, app, http.MethodPost, "/messages/new", token, map[string]string{
		"text": "Hello",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "payload: %v", payload)
	message := payload["message"].(map[string]any)
	messageID := uint(message["id"].(float64))
	assert.Equal(t, "Hello", message["text"])
	assert.Equal(t, float64(userID), message["user_id"], "author must be the session user")

	// The message is readable.
	resp, payload = doJSON(t, app, http.MethodGet, fmt.Sprintf("/messages/%d", messageID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello", payload["message"].(map[string]any)["text"])

	// The author can delete it, and it is then gone.
	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/messages/%d/delete", messageID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/messages/%d", messageID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAnonymousMutationsRejected(t *testing.T) {
	app, _, db := setupTestApp(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/messages/new"},
		{http.MethodPost, "/users/follow/1"},
		{http.MethodPost, "/users/stop-following/1"},
		{http.MethodPost, "/users/add_like/1"},
		{http.MethodPost, "/users/delete"},
		{http.MethodPost, "/users/profile"},
		{http.MethodGet, "/home"},
		{http.MethodGet, "/users"},
	}

	for _, tt := range paths {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, payload := doJSON(t, app, tt.method, tt.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "Access unauthorized.", payload["error"])
			assert.Equal(t, "/", payload["redirect"])
		})
	}

	// no mutation happened
	var messageCount int64
	require.NoError(t, db.Model(&models.Message{}).Count(&messageCount).Error)
	assert.Zero(t, messageCount)
}

func TestNonAuthorCannotDeleteMessage(t *testing.T) {
	app, _, db := setupTestApp(t)

	authorToken, _ := signupUser(t, app, "author", "author@test.com")
	otherToken, _ := signupUser(t, app, "other", "other@test.com")

	_, payload := doJSON(t, app, http.MethodPost, "/messages/new", authorToken, map[string]string{
		"text": "keep your hands off",
	})
	messageID := uint(payload["message"].(map[string]any)["id"].(float64))

	resp, payload := doJSON(t, app, http.MethodPost, fmt.Sprintf("/messages/%d/delete", messageID), otherToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Access unauthorized.", payload["error"])

	// the message survives
	var count int64
	require.NoError(t, db.Model(&models.Message{}).Where("id = ?", messageID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFollowUnfollowSymmetry(t *testing.T) {
	app, _, _ := setupTestApp(t)

	aliceToken, aliceID := signupUser(t, app, "alice", "alice@test.com")
	bobToken, bobID := signupUser(t, app, "bob", "bob@test.com")

	resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/users/follow/%d", bobID), aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// visible from both directions
	_, payload := doJSON(t, app, http.MethodGet, fmt.Sprintf("/users/%d/following", aliceID), aliceToken, nil)
	following := payload["users"].([]any)
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].(map[string]any)["username"])

	_, payload = doJSON(t, app, http.MethodGet, fmt.Sprintf("/users/%d/followers", bobID), bobToken, nil)
	followers := payload["users"].([]any)
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].(map[string]any)["username"])

	// bob's posts appear in alice's home timeline
	_, _ = doJSON(t, app, http.MethodPost, "/messages/new", bobToken, map[string]string{"text": "bob's warble"})
	_, payload = doJSON(t, app, http.MethodGet, "/home", aliceToken, nil)
	timeline := payload["messages"].([]any)
	require.Len(t, timeline, 1)
	assert.Equal(t, "bob's warble", timeline[0].(map[string]any)["text"])

	// unfollow removes the edge from both views
	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/users/stop-following/%d", bobID), aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, payload = doJSON(t, app, http.MethodGet, fmt.Sprintf("/users/%d/following", aliceID), aliceToken, nil)
	assert.Empty(t, payload["users"])
	_, payload = doJSON(t, app, http.MethodGet, fmt.Sprintf("/users/%d/followers", bobID), bobToken, nil)
	assert.Empty(t, payload["users"])
}

func TestLikeUnlikeFlow(t *testing.T) {
	app, _, _ := setupTestApp(t)

	aliceToken, aliceID := signupUser(t, app, "alice", "alice@test.com")
	bobToken, _ := signupUser(t, app, "bob", "bob@test.com")

	_, payload := doJSON(t, app, http.MethodPost, "/messages/new", bobToken, map[string]string{"text": "likable"})
	messageID := uint(payload["message"].(map[string]any)["id"].(float64))

	// like twice; must not double-count
	for i := 0; i < 2; i++ {
		resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/users/add_like/%d", messageID), aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	_, payload = doJSON(t, app, http.MethodGet, fmt.Sprintf("/users/%d/likes", aliceID), aliceToken, nil)
	liked := payload["messages"].([]any)
	require.Len(t, liked, 1)
	assert.Equal(t, float64(1), liked[0].(map[string]any)["likes_count"])

	// liking a missing message fails
	resp, _ := doJSON(t, app, http.MethodPost, "/users/add_like/99999", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// unlike removes it
	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/users/remove_like/%d", messageID), aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, payload = doJSON(t, app, http.MethodGet, fmt.Sprintf("/users/%d/likes", aliceID), aliceToken, nil)
	assert.Empty(t, payload["messages"])
}

func TestMessageLengthBound(t *testing.T) {
	app, _, _ := setupTestApp(t)
	token, _ := signupUser(t, app, "testuser", "test@test.com")

	long := make([]byte, 141)
	for i := range long {
		long[i] = 'x'
	}
	resp, _ := doJSON(t, app, http.MethodPost, "/messages/new", token, map[string]string{"text": string(long)})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// exactly 140 is fine
	resp, _ = doJSON(t, app, http.MethodPost, "/messages/new", token, map[string]string{"text": string(long[:140])})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestProfileEditRequiresPassword(t *testing.T) {
	app, _, _ := setupTestApp(t)
	token, _ := signupUser(t, app, "alice", "alice@test.com")

	resp, payload := doJSON(t, app, http.MethodPost, "/users/profile", token, map[string]string{
		"bio":      "new bio",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Access unauthorized.", payload["error"])

	resp, payload = doJSON(t, app, http.MethodPost, "/users/profile", token, map[string]string{
		"bio":      "new bio",
		"location": "the aviary",
		"password": "testuser",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := payload["user"].(map[string]any)
	assert.Equal(t, "new bio", user["bio"])
	assert.Equal(t, "the aviary", user["location"])
}

func TestProfileEditWithWarmUserCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer cache.SetClient(nil)

	app, _, _ := setupTestApp(t)
	token, _ := signupUser(t, app, "alice", "alice@test.com")

	// warm the user cache; the stats lookup reads the user by ID
	resp, _ := doJSON(t, app, http.MethodGet, "/users/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// the password re-check must still succeed on a cache-served read
	resp, payload := doJSON(t, app, http.MethodPost, "/users/profile", token, map[string]string{
		"bio":      "served warm",
		"password": "testuser",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "payload: %v", payload)
	assert.Equal(t, "served warm", payload["user"].(map[string]any)["bio"])
}

func TestAccountDeleteCascades(t *testing.T) {
	app, _, db := setupTestApp(t)

	aliceToken, aliceID := signupUser(t, app, "alice", "alice@test.com")
	bobToken, bobID := signupUser(t, app, "bob", "bob@test.com")

	_, payload := doJSON(t, app, http.MethodPost, "/messages/new", aliceToken, map[string]string{"text": "going away"})
	messageID := uint(payload["message"].(map[string]any)["id"].(float64))

	_, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/users/follow/%d", aliceID), bobToken, nil)
	_, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/users/add_like/%d", messageID), bobToken, nil)

	resp, _ := doJSON(t, app, http.MethodPost, "/users/delete", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// her session is gone with her, bearer token included
	resp, _ = doJSON(t, app, http.MethodGet, "/home", aliceToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// the dead token cannot create messages for the deleted account
	resp, _ = doJSON(t, app, http.MethodPost, "/messages/new", aliceToken, map[string]string{"text": "ghost"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// profile 404s for other users
	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/users/%d", aliceID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var messages, likes, follows int64
	require.NoError(t, db.Model(&models.Message{}).Count(&messages).Error)
	require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)
	require.NoError(t, db.Model(&models.Follow{}).Count(&follows).Error)
	assert.Zero(t, messages)
	assert.Zero(t, likes)
	assert.Zero(t, follows)

	_ = bobID
}

func TestLogoutEndsSession(t *testing.T) {
	app, _, _ := setupTestApp(t)
	token, _ := signupUser(t, app, "alice", "alice@test.com")

	resp, payload := doJSON(t, app, http.MethodGet, "/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/login", payload["redirect"])

	resp, payload = doJSON(t, app, http.MethodGet, "/home", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Access unauthorized.", payload["error"])
}

func TestUserSearch(t *testing.T) {
	app, _, _ := setupTestApp(t)

	token, _ := signupUser(t, app, "alice", "alice@test.com")
	_, _ = signupUser(t, app, "alicia", "alicia@test.com")
	_, _ = signupUser(t, app, "bob", "bob@test.com")

	_, payload := doJSON(t, app, http.MethodGet, "/users?q=alic", token, nil)
	users := payload["users"].([]any)
	assert.Len(t, users, 2)

	_, payload = doJSON(t, app, http.MethodGet, "/users", token, nil)
	users = payload["users"].([]any)
	assert.Len(t, users, 3)
}

func TestUserProfileIncludesMessagesAndStats(t *testing.T) {
	app, _, _ := setupTestApp(t)

	aliceToken, aliceID := signupUser(t, app, "alice", "alice@test.com")
	bobToken, _ := signupUser(t, app, "bob", "bob@test.com")

	_, _ = doJSON(t, app, http.MethodPost, "/messages/new", aliceToken, map[string]string{"text": "warble one"})
	_, _ = doJSON(t, app, http.MethodPost, "/messages/new", aliceToken, map[string]string{"text": "warble two"})
	_, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/users/follow/%d", aliceID), bobToken, nil)

	resp, payload := doJSON(t, app, http.MethodGet, fmt.Sprintf("/users/%d", aliceID), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	user := payload["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.Len(t, user["messages"].([]any), 2)

	stats := payload["stats"].(map[string]any)
	assert.Equal(t, float64(2), stats["messages"])
	assert.Equal(t, float64(1), stats["followers"])
	assert.Equal(t, true, payload["is_following"])
}
