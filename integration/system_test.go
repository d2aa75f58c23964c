//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

func TestSystem_E2E_Purchase(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	var loginResp struct {
		AccessToken string `json:"access_token"`
		Profile     struct {
			UID string `json:"uid"`
		} `json:"profile"`
	}
	doJSON(t, http.MethodPost, baseURL+"/session/login", map[string]any{}, &loginResp, 200)
	if loginResp.AccessToken == "" {
		t.Fatalf("empty access_token")
	}
	token := loginResp.AccessToken

	var page struct {
		Count int              `json:"count"`
		Items []map[string]any `json:"items"`
	}
	doJSON(t, http.MethodGet, baseURL+"/listings?category=budget&sort=price-asc", nil, &page, 200)
	if len(page.Items) == 0 {
		t.Fatalf("expected budget listings")
	}

	code, _ := page.Items[0]["code"].(string)
	price, _ := page.Items[0]["price"].(float64)
	if code == "" {
		t.Fatalf("listing code missing in response: %#v", page.Items[0])
	}

	doJSONAuth(t, http.MethodPost, baseURL+"/cart/items", token, map[string]any{"code": code}, nil, 200)
	doJSONAuth(t, http.MethodPost, baseURL+"/wallet/topup", token, map[string]any{"amount": int64(price)}, nil, 200)

	var created map[string]any
	doJSONAuth(t, http.MethodPost, baseURL+"/orders", token, nil, &created, 201)

	orderID, _ := created["id"].(string)
	if orderID == "" {
		t.Fatalf("order id missing: %#v", created)
	}

	var got map[string]any
	doJSONAuth(t, http.MethodGet, baseURL+"/orders/"+orderID, token, nil, &got, 200)

	if os.Getenv("E2E_RESTART_CATALOG") == "1" {
		var before map[string]any
		doJSON(t, http.MethodGet, baseURL+"/listings/"+code, nil, &before, 200)

		restartContainer(t, ctx, "catalog")
		waitReady(t, ctx, baseURL+"/readyz")

		var after map[string]any
		doJSON(t, http.MethodGet, baseURL+"/listings/"+code, nil, &after, 200)
		if fmt.Sprint(before) != fmt.Sprint(after) {
			t.Fatalf("seeded catalog changed across restart: before=%v after=%v", before, after)
		}
	}
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, method, url string, body any, out any, want int) {
	t.Helper()
	doJSONAuth(t, method, url, "", body, out, want)
}

func doJSONAuth(t *testing.T, method, url, token string, body any, out any, want int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
