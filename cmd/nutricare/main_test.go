package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/nutricare-client/internal/models"
	"github.com/pribylovaa/nutricare-client/internal/session"
)

type cli struct {
	backend     *http.ServeMux
	requests    atomic.Int32
	sessionPath string
}

// newCLI настраивает окружение запуска: фейковый бэкенд и файл сессии во временном каталоге.
func newCLI(t *testing.T) *cli {
	t.Helper()

	c := &cli{
		backend:     http.NewServeMux(),
		sessionPath: filepath.Join(t.TempDir(), "session.json"),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.requests.Add(1)
		c.backend.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV", "prod")
	t.Setenv("API_URL", srv.URL+"/api")
	t.Setenv("SESSION_BACKEND", "file")
	t.Setenv("SESSION_PATH", c.sessionPath)
	t.Setenv("SESSION_SECRET", "")

	return c
}

func (c *cli) run(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()

	var out, errOut bytes.Buffer
	args = append([]string{"--log-level", "error"}, args...)
	code = run(args, strings.NewReader(stdin), &out, &errOut)

	return code, out.String(), errOut.String()
}

func (c *cli) handleLogin(t *testing.T) {
	c.backend.HandleFunc("POST /api/users/login/{$}", func(w http.ResponseWriter, r *http.Request) {
		var in models.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in.Password != "s3cret" {
			reply(w, http.StatusUnauthorized, map[string]string{"detail": "No active account found with the given credentials"})
			return
		}
		reply(w, http.StatusOK, models.TokenPair{Access: "acc-1", Refresh: "ref-1"})
	})
	c.backend.HandleFunc("GET /api/users/me/{$}", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer acc-1" {
			reply(w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid"})
			return
		}
		reply(w, http.StatusOK, models.User{ID: "u-1", Email: "ann@example.com", FirstName: "Ann"})
	})
	c.backend.HandleFunc("GET /api/users/profile/{$}", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer acc-1" {
			reply(w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid"})
			return
		}
		reply(w, http.StatusOK, models.UserProfile{ID: "p-1", ActivityLevel: "moderate"})
	})
	c.backend.HandleFunc("POST /api/users/token/refresh/{$}", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired"})
	})
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestRun_Version(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"version"}, strings.NewReader(""), &out, &errOut)

	require.Zero(t, code, errOut.String())
	require.Contains(t, out.String(), "nutricare version dev")
}

func TestRun_LoginWhoamiLogout(t *testing.T) {
	c := newCLI(t)
	c.handleLogin(t)

	code, out, errOut := c.run(t, "", "login", "-e", "ann@example.com", "-p", "s3cret")
	require.Zero(t, code, errOut)

	var user models.User
	require.NoError(t, json.Unmarshal([]byte(out), &user))
	require.Equal(t, "u-1", user.ID)
	require.FileExists(t, c.sessionPath)

	code, out, errOut = c.run(t, "", "whoami", "-o", "yaml")
	require.Zero(t, code, errOut)
	require.Contains(t, out, "email: ann@example.com")

	code, out, _ = c.run(t, "", "session", "status")
	require.Zero(t, code)
	var st models.SessionStatus
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	require.True(t, st.Authenticated)
	require.NotContains(t, out, "acc-1", "токены в выводе редактируются")

	code, _, errOut = c.run(t, "", "logout")
	require.Zero(t, code, errOut)
	require.NoFileExists(t, c.sessionPath)

	code, _, errOut = c.run(t, "", "whoami")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "not logged in")
}

func TestRun_LoginPasswordFromStdin(t *testing.T) {
	c := newCLI(t)
	c.handleLogin(t)

	code, _, errOut := c.run(t, "s3cret\n", "login", "-e", "ann@example.com")
	require.Zero(t, code, errOut)
	require.Contains(t, errOut, "Password: ")
}

func TestRun_BadCredentials(t *testing.T) {
	c := newCLI(t)
	c.handleLogin(t)

	code, _, errOut := c.run(t, "", "login", "-e", "ann@example.com", "-p", "wrong")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "backend returned 401: No active account found")
	require.NotContains(t, errOut, "session expired", "401 на входе не запускает refresh")
	require.NoFileExists(t, c.sessionPath)
}

func TestRun_SessionExpired(t *testing.T) {
	c := newCLI(t)
	c.handleLogin(t)

	store := session.NewFileStore(c.sessionPath, "")
	require.NoError(t, store.Save(context.Background(), session.Credentials{AccessToken: "stale", RefreshToken: "revoked"}))

	code, out, errOut := c.run(t, "", "profile", "get")
	require.Equal(t, 1, code)
	require.Empty(t, out)
	require.Equal(t, 1, strings.Count(errOut, "session expired, run `nutricare login`"))
	require.NotContains(t, errOut, "Error:")
	require.NoFileExists(t, c.sessionPath)
}

func TestRun_BackendErrorDetail(t *testing.T) {
	c := newCLI(t)
	require.NoError(t, session.NewFileStore(c.sessionPath, "").Save(context.Background(),
		session.Credentials{AccessToken: "acc-1", RefreshToken: "ref-1"}))
	c.backend.HandleFunc("POST /api/marketplace/orders/create/{$}", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusBadRequest, map[string]string{"error": "Cart is empty"})
	})

	code, _, errOut := c.run(t, "", "orders", "create", "--address", "Thamel, Kathmandu")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "Error: backend returned 400: Cart is empty")
}

func TestRun_ValidationStaysLocal(t *testing.T) {
	c := newCLI(t)

	cases := [][]string{
		{"foods", "season", "monsoon"},
		{"meals", "generate", "--meal-type", "brunch"},
		{"plans", "create", "--days", "0"},
		{"cart", "add", "not-a-uuid"},
		{"orders", "create"},
	}
	for _, args := range cases {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			code, _, errOut := c.run(t, "", args...)
			require.Equal(t, 1, code)
			require.Contains(t, errOut, "Error:")
		})
	}

	require.Zero(t, c.requests.Load())
}

func TestRun_ListAndUpload(t *testing.T) {
	c := newCLI(t)
	require.NoError(t, session.NewFileStore(c.sessionPath, "").Save(context.Background(),
		session.Credentials{AccessToken: "acc-1", RefreshToken: "ref-1"}))

	c.backend.HandleFunc("GET /api/nutrition/foods/season/winter/{$}", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]any{"results": []models.Food{{ID: "f-1", Name: "Spinach"}}})
	})
	c.backend.HandleFunc("POST /api/medical/reports/upload/{$}", func(w http.ResponseWriter, r *http.Request) {
		_, hdr, err := r.FormFile("file")
		if assert.NoError(t, err) {
			assert.Equal(t, "labs.pdf", hdr.Filename)
		}
		assert.Equal(t, "blood_test", r.FormValue("report_type"))
		reply(w, http.StatusCreated, map[string]any{
			"report":  models.MedicalReport{ID: "r-1", Status: "pending"},
			"message": "Report uploaded successfully",
		})
	})

	code, out, errOut := c.run(t, "", "foods", "season", "winter", "-o", "yaml")
	require.Zero(t, code, errOut)
	require.Contains(t, out, "name: Spinach")

	file := filepath.Join(t.TempDir(), "labs.pdf")
	require.NoError(t, os.WriteFile(file, []byte("%PDF-1.4"), 0o600))

	code, out, errOut = c.run(t, "", "reports", "upload", file, "--type", "blood_test")
	require.Zero(t, code, errOut)
	require.Contains(t, out, `"id": "r-1"`)
}

func TestRun_UnknownOutputFormat(t *testing.T) {
	c := newCLI(t)

	code, _, errOut := c.run(t, "", "diseases", "-o", "xml")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, `unknown output format "xml"`)
	require.Zero(t, c.requests.Load())
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer

	l := setupLogger(envProd, &buf, "")
	_, isJSON := l.Handler().(*slog.JSONHandler)
	require.True(t, isJSON)
	require.False(t, l.Enabled(context.Background(), slog.LevelDebug))

	l = setupLogger(envLocal, &buf, "")
	_, isText := l.Handler().(*slog.TextHandler)
	require.True(t, isText)
	require.True(t, l.Enabled(context.Background(), slog.LevelDebug))

	l = setupLogger(envDev, &buf, "warn")
	require.False(t, l.Enabled(context.Background(), slog.LevelInfo))
}
