package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// apiPost sends a JSON body to the daemon and decodes the response into out.
// A nil body sends an empty JSON object; a nil out discards the response.
func apiPost(method, path string, body, out interface{}) error {
	if body == nil {
		body = map[string]interface{}{}
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequest(method, daemonAddr+path, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("call daemon: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return apiError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

// apiGet fetches a path from the daemon and decodes the response into out.
func apiGet(path string, out interface{}) error {
	resp, err := http.Get(daemonAddr + path)
	if err != nil {
		return fmt.Errorf("call daemon: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return apiError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// apiError turns an error response into a readable message.
func apiError(resp *http.Response) error {
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	data, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(data, &body); err != nil || body.Error == "" {
		return fmt.Errorf("daemon returned %s", resp.Status)
	}
	if body.Details != "" {
		return fmt.Errorf("%s: %s", body.Error, body.Details)
	}
	return fmt.Errorf("%s", body.Error)
}

func requireDaemon() error {
	if !isRunning() {
		return fmt.Errorf("daemon not running (run 'crucible start' first)")
	}
	return nil
}
