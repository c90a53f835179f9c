package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jokeapi/src/app/http/dto"
	"jokeapi/src/app/http/response"
	"jokeapi/src/app/middleware"
	"jokeapi/src/core/domain"
	"jokeapi/src/infra/config"
	"jokeapi/src/infra/crypto"
	"jokeapi/src/infra/logger"
	"jokeapi/src/infra/memory"
)

type testEnv struct {
	router *gin.Engine
	keys   *memory.KeyRepository
	users  *memory.UserRepository
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		},
		Log: config.LogConfig{Level: "error", Format: "json"},
	}
}

func setupTestServer(t *testing.T, cfg *config.Config) (*Server, *testEnv) {
	t.Helper()
	env := &testEnv{
		keys:  memory.NewKeyRepository(),
		users: memory.NewUserRepository(),
	}
	srv := New(cfg, logger.Discard(), Dependencies{
		Jokes:  memory.NewJokeRepository(logger.Discard()),
		Keys:   env.keys,
		Users:  env.users,
		Hasher: crypto.Argon2Hasher{},
		KeyGen: crypto.HexKeyGenerator{},
	})
	env.router = srv.Router()
	return srv, env
}

func (e *testEnv) do(t *testing.T, method, path, key, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if key != "" {
		req.Header.Set(middleware.APIKeyHeader, key)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) issueKey(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/apikeys", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.APIKeyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.APIKey
}

func (e *testEnv) addJoke(t *testing.T, key, question, answer, genre string) int64 {
	t.Helper()
	body, err := json.Marshal(dto.AddJokeRequest{Question: question, Answer: answer, Genre: genre})
	require.NoError(t, err)
	w := e.do(t, http.MethodPost, "/jokes/add", key, string(body))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp dto.JokeAddedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body response.Error
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestScenario_IssueAddFilterDelete(t *testing.T) {
	_, env := setupTestServer(t, testConfig())

	key := env.issueKey(t)
	assert.Regexp(t, `^[0-9a-f]{32}$`, key)

	id := env.addJoke(t, key, "Q", "A", "g")

	w := env.do(t, http.MethodGet, "/jokes/genre/g", key, "")
	require.Equal(t, http.StatusOK, w.Code)
	var byGenre []domain.Joke
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &byGenre))
	assert.Equal(t, []domain.Joke{{ID: id, Question: "Q", Answer: "A", Genre: "g"}}, byGenre)

	w = env.do(t, http.MethodDelete, "/jokes/delete/"+itoa(id), key, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"joke deleted successfully"}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/jokes/genre/g", key, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = env.do(t, http.MethodGet, "/jokes/"+itoa(id), key, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJokeRoutes_RequireKey(t *testing.T) {
	_, env := setupTestServer(t, testConfig())
	key := env.issueKey(t)
	id := env.addJoke(t, key, "Q", "A", "g")

	routes := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/jokes", ""},
		{http.MethodGet, "/jokes/random", ""},
		{http.MethodGet, "/jokes/" + itoa(id), ""},
		{http.MethodGet, "/jokes/genre/g", ""},
		{http.MethodPost, "/jokes/add", `{"question":"Q","answer":"A","genre":"g"}`},
		{http.MethodPut, "/jokes/edit/" + itoa(id), `{"answer":"B"}`},
		{http.MethodDelete, "/jokes/delete/" + itoa(id), ""},
	}
	for _, r := range routes {
		for _, presented := range []string{"", "0123456789abcdef0123456789abcdef"} {
			t.Run(r.method+" "+r.path, func(t *testing.T) {
				w := env.do(t, r.method, r.path, presented, r.body)
				assert.Equal(t, http.StatusForbidden, w.Code)
				assert.Equal(t, "FORBIDDEN", errorCode(t, w))
			})
		}
	}

	// Nothing changed behind the gate.
	w := env.do(t, http.MethodGet, "/jokes", key, "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []domain.Joke
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Equal(t, []domain.Joke{{ID: id, Question: "Q", Answer: "A", Genre: "g"}}, all)
}

func TestJokeRoutes(t *testing.T) {
	_, env := setupTestServer(t, testConfig())
	key := env.issueKey(t)

	t.Run("list empty is an empty array", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/jokes", key, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("random on empty collection", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/jokes/random", key, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NO_JOKES", errorCode(t, w))
	})

	id := env.addJoke(t, key, "Why?", "Because.", "engracadas")

	t.Run("random", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/jokes/random", key, "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.RandomJokeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, id, resp.Joke.ID)
	})

	t.Run("get by id", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/jokes/"+itoa(id), key, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1,"question":"Why?","answer":"Because.","genre":"engracadas"}`, w.Body.String())
	})

	t.Run("get unknown and non numeric id", func(t *testing.T) {
		for _, p := range []string{"/jokes/99", "/jokes/abc", "/jokes/-1"} {
			w := env.do(t, http.MethodGet, p, key, "")
			assert.Equal(t, http.StatusNotFound, w.Code, p)
		}
	})

	t.Run("genre is case sensitive", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/jokes/genre/Engracadas", key, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("add with missing field", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/jokes/add", key, `{"question":"Q","answer":"A"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
	})

	t.Run("add with empty body", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/jokes/add", key, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
	})

	t.Run("add with malformed JSON", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/jokes/add", key, `{"question":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "BAD_REQUEST", errorCode(t, w))
	})

	t.Run("edit answer only", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/jokes/edit/"+itoa(id), key, `{"answer":"Just because."}`)
		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.JokeEditedResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, domain.Joke{ID: id, Question: "Why?", Answer: "Just because.", Genre: "engracadas"}, resp.Joke)

		w = env.do(t, http.MethodGet, "/jokes/"+itoa(id), key, "")
		assert.JSONEq(t, `{"id":1,"question":"Why?","answer":"Just because.","genre":"engracadas"}`, w.Body.String())
	})

	t.Run("edit with nothing to change", func(t *testing.T) {
		for _, body := range []string{"", `{}`, `{"question":""}`} {
			w := env.do(t, http.MethodPut, "/jokes/edit/"+itoa(id), key, body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
		}
	})

	t.Run("edit unknown id", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/jokes/edit/99", key, `{"answer":"B"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		w = env.do(t, http.MethodPut, "/jokes/edit/99", key, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete unknown id", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, "/jokes/delete/99", key, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		second := env.addJoke(t, key, "Q2", "A2", "g")
		third := env.addJoke(t, key, "Q3", "A3", "g")
		w := env.do(t, http.MethodDelete, "/jokes/delete/"+itoa(second), key, "")
		require.Equal(t, http.StatusOK, w.Code)

		fourth := env.addJoke(t, key, "Q4", "A4", "g")
		assert.Greater(t, fourth, third)
	})
}

func TestRegister(t *testing.T) {
	_, env := setupTestServer(t, testConfig())

	t.Run("json payload redirects to key page", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/register", "", `{"username":"ana","password":"secret"}`)
		require.Equal(t, http.StatusFound, w.Code)

		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "/get-api-key", loc.Path)
		key := loc.Query().Get("apiKey")
		assert.Regexp(t, `^[0-9a-f]{32}$`, key)

		// The key works on the gated routes.
		assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/jokes", key, "").Code)

		page := env.do(t, http.MethodGet, loc.String(), "", "")
		assert.Equal(t, http.StatusOK, page.Code)
		assert.Contains(t, page.Body.String(), key)
	})

	t.Run("form payload", func(t *testing.T) {
		form := url.Values{"username": {"bia"}, "password": {"pw"}}
		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusFound, w.Code)
	})

	t.Run("missing fields create nothing", func(t *testing.T) {
		ctx := context.Background()
		usersBefore, _ := env.users.Count(ctx)
		keysBefore, _ := env.keys.Count(ctx)

		for _, body := range []string{`{"username":"ana"}`, `{"password":"x"}`, `{"username":"","password":""}`, ""} {
			w := env.do(t, http.MethodPost, "/register", "", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
		}

		usersAfter, _ := env.users.Count(ctx)
		keysAfter, _ := env.keys.Count(ctx)
		assert.Equal(t, usersBefore, usersAfter)
		assert.Equal(t, keysBefore, keysAfter)
	})

	t.Run("register page", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/register", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="password"`)
	})

	t.Run("key page without key", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/get-api-key", "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Requests: 3, Window: time.Hour}
	_, env := setupTestServer(t, cfg)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health", "", "").Code)
	}
	w := env.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMITED", errorCode(t, w))
}

func TestRateLimit_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Requests: 2, Window: time.Hour}
	_, env := setupTestServer(t, cfg)

	codes := make(map[int]int)
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		req.Header.Set("X-Forwarded-For", "1.2.3."+strconv.Itoa(i))
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		codes[w.Code]++
	}

	assert.Equal(t, 2, codes[http.StatusOK])
	assert.Equal(t, 48, codes[http.StatusTooManyRequests])
}

func TestRateLimit_TrustedProxyForwardsClient(t *testing.T) {
	cfg := testConfig()
	cfg.Server.TrustedProxies = []string{"10.0.0.1"}
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Requests: 1, Window: time.Hour}
	_, env := setupTestServer(t, cfg)

	hit := func(forwardedFor string) int {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, hit("198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, hit("198.51.100.1"))
	assert.Equal(t, http.StatusOK, hit("198.51.100.2"))
}

func TestServiceLogsCarryComponent(t *testing.T) {
	cfg := testConfig()
	var buf bytes.Buffer
	srv := New(cfg, logger.NewWithWriter(config.LogConfig{Level: "info", Format: "json"}, &buf), Dependencies{
		Jokes:  memory.NewJokeRepository(logger.Discard()),
		Keys:   memory.NewKeyRepository(),
		Users:  memory.NewUserRepository(),
		Hasher: crypto.Argon2Hasher{},
		KeyGen: crypto.HexKeyGenerator{},
	})

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/apikeys", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, buf.String(), `"msg":"api key issued"`)
	assert.Contains(t, buf.String(), `"component":"keys"`)
}

func TestHealthAndNoRoute(t *testing.T) {
	_, env := setupTestServer(t, testConfig())

	w := env.do(t, http.MethodGet, "/health", "", "")
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/health/detailed", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"jokes":{"status":"healthy","records":0}`)

	w = env.do(t, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestRunAndShutdown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	cfg := testConfig()
	cfg.Server.Port = port
	srv, _ := setupTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.NoError(t, srv.WaitForReady(2*time.Second))
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
