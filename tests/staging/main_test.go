//go:build staging

package staging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

var (
	stagingURL string
	apiKey     string
	accountID  string
	client     *http.Client
)

func TestMain(m *testing.M) {
	stagingURL = os.Getenv("API_URL")
	if stagingURL == "" {
		stagingURL = "http://localhost:8080"
	}

	apiKey = os.Getenv("API_KEY")
	if apiKey == "" {
		apiKey = "test-api-key"
	}

	// Account the staging environment is seeded with
	accountID = os.Getenv("STAGING_ACCOUNT_ID")

	client = &http.Client{Timeout: 30 * time.Second}

	os.Exit(m.Run())
}

func requireAccount(t *testing.T) {
	t.Helper()
	if accountID == "" {
		t.Skip("STAGING_ACCOUNT_ID not set")
	}
}

// makeRequest sends one API request with the staging key attached
func makeRequest(t *testing.T, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	url := fmt.Sprintf("%s%s", stagingURL, path)
	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-API-Key", apiKey)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request to %s: %v", url, err)
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	return resp, respBody
}
