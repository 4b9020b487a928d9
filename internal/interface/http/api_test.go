package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"forum-api/internal/application"
	"forum-api/internal/infrastructure/memory"
	handlers "forum-api/internal/interface/http"
	"forum-api/internal/router"
	"forum-api/internal/router/modules"
	"forum-api/pkg/helpers"
	"forum-api/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

// envelope mirrors the response wrapper loosely so tests can poke at any
// endpoint's payload without one decode struct per route.
type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   map[string]any  `json:"error"`
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	store := memory.NewStore()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	hasher := helpers.NewHasher(bcrypt.MinCost)

	authSvc := application.NewAuthService(store.Users(), hasher, jwt, nil)
	courseSvc := application.NewCourseService(store.Courses(), nil)
	topicSvc := application.NewTopicService(store.Topics(), store.Users(), courseSvc, nil)
	statsSvc := application.NewStatsService(store.Topics(), store.Users(), store.Courses())

	engine := gin.New()
	reg := router.NewRegistry(engine)
	reg.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, nil)))
	reg.Add(modules.NewTopicModule(handlers.NewTopicHandler(topicSvc, nil), jwt))
	reg.Add(modules.NewStatsModule(handlers.NewStatsHandler(statsSvc)))
	reg.Add(modules.NewHealthModule(handlers.NewHealthHandler(nil)))
	reg.RegisterAll()
	return engine
}

func do(t *testing.T, engine *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
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
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func register(t *testing.T, engine *gin.Engine, username string) string {
	t.Helper()
	w, env := do(t, engine, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func createTopic(t *testing.T, engine *gin.Engine, token, title, course string) int64 {
	t.Helper()
	w, env := do(t, engine, http.MethodPost, "/api/topics", token, gin.H{
		"title":      title,
		"message":    "A long enough message body for a topic",
		"courseName": course,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var data struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.ID
}

func TestRegisterAndLoginFlow(t *testing.T) {
	engine := newTestServer(t)

	register(t, engine, "alice")

	// Same username again is a conflict.
	w, env := do(t, engine, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice",
		"email":    "other@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)

	w, env = do(t, engine, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.NotNil(t, env.Meta["expires_at"])

	w, _ = do(t, engine, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown user gets the same status as a bad password.
	w, _ = do(t, engine, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "nobody",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsInvalidPayload(t *testing.T) {
	engine := newTestServer(t)

	cases := []struct {
		name string
		body gin.H
	}{
		{"short username", gin.H{"username": "ab", "email": "a@b.com", "password": "password123"}},
		{"long username", gin.H{"username": "averyveryverylongname", "email": "a@b.com", "password": "password123"}},
		{"bad email", gin.H{"username": "alice", "email": "not-an-email", "password": "password123"}},
		{"short password", gin.H{"username": "alice", "email": "a@b.com", "password": "short"}},
		{"missing fields", gin.H{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := do(t, engine, http.MethodPost, "/api/auth/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestTopicRoutesRequireAuth(t *testing.T) {
	engine := newTestServer(t)

	w, _ := do(t, engine, http.MethodPost, "/api/topics", "", gin.H{
		"title": "A valid topic title", "message": "A long enough message", "courseName": "Go",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, engine, http.MethodGet, "/api/topics/my-topics", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, engine, http.MethodDelete, "/api/topics/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTopicLifecycle(t *testing.T) {
	engine := newTestServer(t)
	token := register(t, engine, "alice")

	id := createTopic(t, engine, token, "My first topic here", "Go Basics")

	// Public read, no token needed.
	w, env := do(t, engine, http.MethodGet, "/api/topics/"+itoa(id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var topic struct {
		Title          string `json:"title"`
		AuthorUsername string `json:"authorUsername"`
		CourseName     string `json:"courseName"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &topic))
	assert.Equal(t, "My first topic here", topic.Title)
	assert.Equal(t, "alice", topic.AuthorUsername)
	assert.Equal(t, "Go Basics", topic.CourseName)

	w, env = do(t, engine, http.MethodPut, "/api/topics/"+itoa(id), token, gin.H{
		"title": "My renamed topic here",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &topic))
	assert.Equal(t, "My renamed topic here", topic.Title)
	assert.Equal(t, "Go Basics", topic.CourseName)

	w, _ = do(t, engine, http.MethodDelete, "/api/topics/"+itoa(id), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, engine, http.MethodGet, "/api/topics/"+itoa(id), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTopicOwnershipEnforced(t *testing.T) {
	engine := newTestServer(t)
	aliceToken := register(t, engine, "alice")
	bobToken := register(t, engine, "bob")

	id := createTopic(t, engine, aliceToken, "Alice owns this topic", "Go")

	w, _ := do(t, engine, http.MethodPut, "/api/topics/"+itoa(id), bobToken, gin.H{
		"title": "Bob was here instead",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = do(t, engine, http.MethodDelete, "/api/topics/"+itoa(id), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Still intact for everyone to read.
	w, env := do(t, engine, http.MethodGet, "/api/topics/"+itoa(id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var topic struct {
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &topic))
	assert.Equal(t, "Alice owns this topic", topic.Title)
}

func TestListTopicsPaginationMeta(t *testing.T) {
	engine := newTestServer(t)
	token := register(t, engine, "alice")

	for i := 0; i < 7; i++ {
		createTopic(t, engine, token, "Paginated topic number "+itoa(int64(i)), "Go Basics")
	}

	w, env := do(t, engine, http.MethodGet, "/api/topics?page=1&size=3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 3)
	assert.EqualValues(t, 1, env.Meta["page"])
	assert.EqualValues(t, 7, env.Meta["total_items"])
	assert.EqualValues(t, 3, env.Meta["total_pages"])
	assert.Equal(t, false, env.Meta["is_first"])
	assert.Equal(t, false, env.Meta["is_last"])

	// courseName filter matches case-insensitively.
	w, env = do(t, engine, http.MethodGet, "/api/topics?size=50&courseName=go+basics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 7, env.Meta["total_items"])

	w, env = do(t, engine, http.MethodGet, "/api/topics?size=50&courseName=unknown", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, env.Meta["total_items"])
}

func TestMyTopicsAndByCourse(t *testing.T) {
	engine := newTestServer(t)
	aliceToken := register(t, engine, "alice")
	bobToken := register(t, engine, "bob")

	createTopic(t, engine, aliceToken, "Alice writes about Go", "Go Basics")
	createTopic(t, engine, bobToken, "Bob writes about SQL", "Databases")
	createTopic(t, engine, bobToken, "Bob also writes about Go", "go basics")

	w, env := do(t, engine, http.MethodGet, "/api/topics/my-topics", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []struct {
		AuthorUsername string `json:"authorUsername"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 2)
	for _, it := range items {
		assert.Equal(t, "bob", it.AuthorUsername)
	}

	w, env = do(t, engine, http.MethodGet, "/api/topics/course/Go%20Basics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var courseItems []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &courseItems))
	assert.Len(t, courseItems, 2)
}

func TestCreateTopicRejectsCourseNameBounds(t *testing.T) {
	engine := newTestServer(t)
	token := register(t, engine, "alice")

	for _, course := range []string{"X", strings.Repeat("x", 101)} {
		w, env := do(t, engine, http.MethodPost, "/api/topics", token, gin.H{
			"title":      "A valid topic title",
			"message":    "A long enough message body",
			"courseName": course,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotEmpty(t, env.Error)
	}
}

func TestInvalidTopicID(t *testing.T) {
	engine := newTestServer(t)

	w, _ := do(t, engine, http.MethodGet, "/api/topics/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, engine, http.MethodGet, "/api/topics/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatsEndpoints(t *testing.T) {
	engine := newTestServer(t)
	token := register(t, engine, "alice")
	createTopic(t, engine, token, "A topic about goroutines", "Go Basics")
	createTopic(t, engine, token, "A topic about channels", "Go Basics")

	w, env := do(t, engine, http.MethodGet, "/api/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var global struct {
		TotalTopics  int64 `json:"totalTopics"`
		TotalUsers   int64 `json:"totalUsers"`
		TotalCourses int64 `json:"totalCourses"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &global))
	assert.EqualValues(t, 2, global.TotalTopics)
	assert.EqualValues(t, 1, global.TotalUsers)
	assert.EqualValues(t, 1, global.TotalCourses)

	w, env = do(t, engine, http.MethodGet, "/api/stats/course/GO%20BASICS", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var course struct {
		CourseName  string `json:"courseName"`
		TotalTopics int64  `json:"totalTopics"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &course))
	assert.EqualValues(t, 2, course.TotalTopics)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

type failingPinger struct{}

func (failingPinger) Ping(ctx context.Context) error { return context.DeadlineExceeded }

func TestHealth(t *testing.T) {
	engine := newTestServer(t)

	w, env := do(t, engine, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	// A failing store turns the endpoint unhealthy.
	engine = gin.New()
	reg := router.NewRegistry(engine)
	reg.Add(modules.NewHealthModule(handlers.NewHealthHandler(failingPinger{})))
	reg.RegisterAll()

	w, env = do(t, engine, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, env.Success)
}
