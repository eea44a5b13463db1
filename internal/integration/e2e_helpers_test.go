//go:build e2e

package integration

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// E2E environment
// =============================================================================
// Runs against a started server: E2E_BASE_URL points at it and
// E2E_MGMT_USER / E2E_MGMT_PASSWORD are the basic auth credentials for /mgmt.

const vendorContentType = "application/vnd.bose.streaming-v1.2+xml"

var baseURL = strings.TrimRight(getEnv("E2E_BASE_URL", "http://localhost:8080"), "/")

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// skipIfServerDown skips when the server is not reachable.
func skipIfServerDown(t *testing.T) {
	t.Helper()
	resp, err := doRequest(t, http.MethodGet, "/health", nil, "")
	if err != nil {
		t.Skipf("server unavailable (%s), skipping: %v", baseURL, err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Skipf("health check returned HTTP %d, skipping", resp.StatusCode)
	}
}

// uniqueSuffix keeps device and account ids distinct across runs.
func uniqueSuffix() string {
	return fmt.Sprintf("%X", time.Now().UnixNano()&0xFFFFFF)
}

func doRequest(t *testing.T, method, path string, body []byte, contentType string) (*http.Response, error) {
	t.Helper()
	return doRequestWithAuth(t, method, path, body, contentType, false)
}

func doMgmtRequest(t *testing.T, method, path string, body []byte) (*http.Response, error) {
	t.Helper()
	contentType := ""
	if body != nil {
		contentType = "application/json"
	}
	return doRequestWithAuth(t, method, path, body, contentType, true)
}

func doRequestWithAuth(t *testing.T, method, path string, body []byte, contentType string, mgmt bool) (*http.Response, error) {
	t.Helper()
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if mgmt {
		req.SetBasicAuth(getEnv("E2E_MGMT_USER", "admin"), getEnv("E2E_MGMT_PASSWORD", "change-me"))
	}

	client := &http.Client{Timeout: 30 * time.Second}
	return client.Do(req)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return string(b)
}
