// Command smoke probes a running API instance and exits non-zero when any
// check fails. Meant for post-deploy verification, not CI.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "API base URL to probe")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	client := &http.Client{Timeout: 10 * time.Second}

	checks := []struct {
		path   string
		verify func(body []byte) error
	}{
		{"/health", func(body []byte) error {
			var resp map[string]string
			if err := json.Unmarshal(body, &resp); err != nil {
				return err
			}
			if resp["status"] != "ok" {
				return fmt.Errorf("unexpected status %q", resp["status"])
			}
			return nil
		}},
		{"/countries", func(body []byte) error {
			var resp []map[string]any
			return json.Unmarshal(body, &resp)
		}},
		{"/methodology", func(body []byte) error {
			var resp struct {
				Weights map[string]float64 `json:"weights"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return err
			}
			if len(resp.Weights) == 0 {
				return fmt.Errorf("weights missing")
			}
			return nil
		}},
		{"/compare?iso=EU&iso=IN", func(body []byte) error {
			var resp []map[string]any
			return json.Unmarshal(body, &resp)
		}},
	}

	failed := 0
	for _, check := range checks {
		if err := probe(ctx, client, *baseURL+check.path, check.verify); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", check.path, err)
			failed++
			continue
		}
		fmt.Printf("ok   %s\n", check.path)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func probe(ctx context.Context, client *http.Client, url string, verify func([]byte) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return verify(body)
}
