package session_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"SteamShop/internal/session"
	"SteamShop/pkg/kit"
)

const secret = "0123456789abcdef0123456789abcdef"

type loginResp struct {
	AccessToken string          `json:"access_token"`
	Profile     session.Profile `json:"profile"`
}

func newSessionTS(t *testing.T) *httptest.Server {
	t.Helper()

	s := &session.Server{
		Log:   zaptest.NewLogger(t),
		Prefs: session.NewMemPrefs(),
		JWT:   session.NewTokenMaker(secret),
	}
	ts := httptest.NewServer(session.NewHandler(s, session.HTTPDeps{
		Log:     zaptest.NewLogger(t),
		Service: "session",
	}))
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string, headers map[string]string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func login(t *testing.T, ts *httptest.Server, body string) loginResp {
	t.Helper()

	resp := do(t, http.MethodPost, ts.URL+"/session/login", body, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out loginResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func bearer(tok string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + tok}
}

func TestLogin_NewUser(t *testing.T) {
	ts := newSessionTS(t)

	out := login(t, ts, "")
	assert.True(t, session.ValidUID(out.Profile.UID))
	assert.Equal(t, "user"+out.Profile.UID+"@steamshop.local", out.Profile.Email)
	assert.NotEmpty(t, out.AccessToken)

	c, err := session.NewTokenMaker(secret).Parse(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, out.Profile.UID, c.UserID)
}

func TestLogin_ExistingUID(t *testing.T) {
	ts := newSessionTS(t)

	out := login(t, ts, `{"uid":" abcd2345 "}`)
	assert.Equal(t, "ABCD2345", out.Profile.UID)

	resp := do(t, http.MethodPost, ts.URL+"/session/login", `{"uid":"nope"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, ts.URL+"/session/login", `{"uid":"ABCD2345","role":"admin"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWhoAmI_Logout(t *testing.T) {
	ts := newSessionTS(t)
	out := login(t, ts, `{"uid":"ABCD2345"}`)

	resp := do(t, http.MethodGet, ts.URL+"/session/whoami", "", bearer(out.AccessToken))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p session.Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.Equal(t, out.Profile, p)

	resp = do(t, http.MethodPost, ts.URL+"/session/logout", "", bearer(out.AccessToken))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/session/whoami", "", bearer(out.AccessToken))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/session/whoami", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/session/whoami", "", bearer("garbage"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDeviceModePrefs(t *testing.T) {
	ts := newSessionTS(t)
	user := map[string]string{kit.HeaderUserID: "ABCD2345"}

	get := func(width string) map[string]any {
		t.Helper()
		resp := do(t, http.MethodGet, ts.URL+"/prefs/device-mode?width="+width, "", user)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return out
	}

	assert.Equal(t, map[string]any{"mode": "auto", "mobile": true}, get("375"))
	assert.Equal(t, map[string]any{"mode": "auto", "mobile": false}, get("1280"))

	resp := do(t, http.MethodPut, ts.URL+"/prefs/device-mode", `{"mode":"mobile"}`, user)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, map[string]any{"mode": "mobile", "mobile": true}, get("1280"))

	resp = do(t, http.MethodPut, ts.URL+"/prefs/device-mode", `{"mode":"tablet"}`, user)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/prefs/device-mode?width=wide", "", user)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/prefs/device-mode", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_RateLimited(t *testing.T) {
	ts := newSessionTS(t)

	last := 0
	for i := 0; i < 12; i++ {
		resp := do(t, http.MethodPost, ts.URL+"/session/login", "", nil)
		last = resp.StatusCode
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestReadyz(t *testing.T) {
	ts := newSessionTS(t)
	resp := do(t, http.MethodGet, ts.URL+"/readyz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
