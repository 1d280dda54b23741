package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"terminfinder-api/core/cache"
	"terminfinder-api/core/config"
	"terminfinder-api/core/database/databasetest"
	"terminfinder-api/core/logger"

	"github.com/labstack/echo/v4"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		Server: config.ServerConfig{
			AllowOrigins: []string{"*"},
			BodyLimit:    "1M",
		},
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			SessionTTL: time.Hour,
		},
		RateLimit: config.RateLimitConfig{RPS: 1000, Burst: 1000},
		ShareLink: config.ShareLinkConfig{DefaultTTLDays: 7, MaxTTLDays: 365},
	}
	return New(cfg, databasetest.New(t), cache.NewMemoryCache())
}

func do(t *testing.T, e *echo.Echo, method, path, token, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, env
}

func login(t *testing.T, e *echo.Echo, code, password string) string {
	t.Helper()
	status, env := do(t, e, http.MethodPost, "/api/v1/groups/authenticate", "",
		`{"code": "`+code+`", "password": "`+password+`"}`)
	if status != http.StatusOK {
		t.Fatalf("authenticate %s: status %d (%s)", code, status, env.Message)
	}
	var data struct {
		Session struct {
			Token string `json:"token"`
		} `json:"session"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Session.Token == "" {
		t.Fatalf("authenticate %s: no session in %s", code, env.Data)
	}
	return data.Session.Token
}

func TestScheduleFlow(t *testing.T) {
	e := newTestServer(t)
	token := login(t, e, "team", "secret")

	status, env := do(t, e, http.MethodPut, "/api/v1/groups/team/availability/Alice", token,
		`{"availability": {"2024-03-01": ["morning", "afternoon"]}}`)
	if status != http.StatusOK || env.Message != "Availability saved successfully" {
		t.Fatalf("save Alice: %d %s", status, env.Message)
	}

	status, env = do(t, e, http.MethodGet, "/api/v1/groups/team/matches", token, "")
	if status != http.StatusOK {
		t.Fatalf("matches: %d", status)
	}
	var single struct {
		Status       string          `json:"status"`
		FullMatches  json.RawMessage `json:"full_matches"`
		Participants []string        `json:"participants"`
	}
	_ = json.Unmarshal(env.Data, &single)
	if single.Status != "insufficient_participants" || string(single.FullMatches) != "null" {
		t.Fatalf("single participant matches: %s", env.Data)
	}

	status, _ = do(t, e, http.MethodPut, "/api/v1/groups/team/availability/Bob", token,
		`{"availability": [{"date": "2024-03-01", "timeSlot": "Morning", "available": true}, {"date": "2024-03-01", "timeSlot": "evening", "available": false}]}`)
	if status != http.StatusOK {
		t.Fatalf("save Bob: %d", status)
	}

	status, env = do(t, e, http.MethodGet, "/api/v1/groups/team/matches", token, "")
	if status != http.StatusOK {
		t.Fatalf("matches: %d", status)
	}
	var matches struct {
		Status      string `json:"status"`
		FullMatches []struct {
			Date  string   `json:"date"`
			Slots []string `json:"slots"`
		} `json:"full_matches"`
		PartialMatches []struct {
			Date    string   `json:"date"`
			Slots   []string `json:"slots"`
			Present []string `json:"present"`
			Missing []string `json:"missing"`
		} `json:"partial_matches"`
	}
	if err := json.Unmarshal(env.Data, &matches); err != nil {
		t.Fatalf("decode matches: %v", err)
	}
	if matches.Status != "computed" || len(matches.FullMatches) != 1 || !reflect.DeepEqual(matches.FullMatches[0].Slots, []string{"morning"}) {
		t.Fatalf("full matches: %s", env.Data)
	}
	if len(matches.PartialMatches) != 1 ||
		!reflect.DeepEqual(matches.PartialMatches[0].Slots, []string{"afternoon"}) ||
		!reflect.DeepEqual(matches.PartialMatches[0].Missing, []string{"Bob"}) {
		t.Fatalf("partial matches: %s", env.Data)
	}

	status, env = do(t, e, http.MethodGet, "/api/v1/groups/team/availability/Bob", token, "")
	if status != http.StatusOK || !strings.Contains(string(env.Data), `"2024-03-01":["morning"]`) {
		t.Fatalf("Bob availability: %d %s", status, env.Data)
	}

	status, env = do(t, e, http.MethodPut, "/api/v1/groups/team/availability/Bob", token, `{"availability": {}}`)
	if status != http.StatusOK || env.Message != "All availabilities cleared for user" {
		t.Fatalf("clear Bob: %d %s", status, env.Message)
	}

	status, env = do(t, e, http.MethodGet, "/api/v1/groups/team/participants", token, "")
	if status != http.StatusOK || !strings.Contains(string(env.Data), `"participants":["Alice"]`) {
		t.Fatalf("participants: %d %s", status, env.Data)
	}
}

func TestAccessErrors(t *testing.T) {
	e := newTestServer(t)
	token := login(t, e, "team", "secret")
	login(t, e, "other", "secret")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		status int
		code   string
	}{
		{"wrong password", http.MethodPost, "/api/v1/groups/authenticate", "", `{"code": "team", "password": "nope"}`, http.StatusUnauthorized, "INVALID_PASSWORD"},
		{"missing fields", http.MethodPost, "/api/v1/groups/authenticate", "", `{"code": ""}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"no session", http.MethodGet, "/api/v1/groups/team/matches", "", "", http.StatusUnauthorized, "MISSING_AUTHORIZATION_HEADER"},
		{"garbage session", http.MethodGet, "/api/v1/groups/team/matches", "not-a-jwt", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"other group", http.MethodGet, "/api/v1/groups/other/matches", token, "", http.StatusForbidden, "FORBIDDEN"},
		{"invalid date", http.MethodPut, "/api/v1/groups/team/availability/Alice", token, `{"availability": {"2024-02-30": ["morning"]}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"invalid slot", http.MethodPut, "/api/v1/groups/team/availability/Alice", token, `{"availability": {"2024-02-01": ["brunch"]}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"malformed payload", http.MethodPut, "/api/v1/groups/team/availability/Alice", token, `{"availability": "monday"}`, http.StatusBadRequest, "INVALID_REQUEST_DATA"},
		{"unknown route", http.MethodGet, "/api/v1/nothing", "", "", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := do(t, e, tt.method, tt.path, tt.token, tt.body)
			if status != tt.status || env.Code != tt.code || env.Success {
				t.Fatalf("got %d %s (%s), want %d %s", status, env.Code, env.Message, tt.status, tt.code)
			}
		})
	}
}

func TestShareLinkFlow(t *testing.T) {
	e := newTestServer(t)
	login(t, e, "team", "secret")

	status, env := do(t, e, http.MethodPost, "/api/v1/groups/share-links", "",
		`{"code": "team", "password": "secret", "single_use": true}`)
	if status != http.StatusOK {
		t.Fatalf("create share link: %d %s", status, env.Message)
	}
	var link struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &link); err != nil || link.Token == "" {
		t.Fatalf("share link: %s", env.Data)
	}

	status, env = do(t, e, http.MethodPost, "/api/v1/groups/token-auth", "", `{"token": "`+link.Token+`"}`)
	if status != http.StatusOK {
		t.Fatalf("token auth: %d %s", status, env.Message)
	}
	var joined struct {
		GroupCode string `json:"group_code"`
		Session   struct {
			Token string `json:"token"`
		} `json:"session"`
	}
	if err := json.Unmarshal(env.Data, &joined); err != nil || joined.GroupCode != "team" {
		t.Fatalf("token auth data: %s", env.Data)
	}

	status, _ = do(t, e, http.MethodGet, "/api/v1/groups/team/data", joined.Session.Token, "")
	if status != http.StatusOK {
		t.Fatalf("group data with token session: %d", status)
	}

	status, env = do(t, e, http.MethodPost, "/api/v1/groups/token-auth", "", `{"token": "`+link.Token+`"}`)
	if status != http.StatusUnauthorized || env.Code != "TOKEN_USED" {
		t.Fatalf("second redemption: %d %s", status, env.Code)
	}
}

func TestHealth(t *testing.T) {
	e := newTestServer(t)
	status, env := do(t, e, http.MethodGet, "/health", "", "")
	if status != http.StatusOK || !env.Success {
		t.Fatalf("health: %d %+v", status, env)
	}
}
