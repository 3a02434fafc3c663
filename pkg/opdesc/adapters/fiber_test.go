package adapters

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vexley/opdesc/pkg/opdesc"
)

func TestFiberAdapter_SuccessfulRequest(t *testing.T) {
	adapter := NewDefaultFiberAdapter()
	adapter.Mount(widgetDescription(), echoInvoker(nil, nil), nil)

	req := httptest.NewRequest("GET", "/widgets/7?format=CSV", nil)
	resp, err := adapter.App().Test(req)
	if err != nil {
		t.Fatalf("Test request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("Expected X-Request-ID header to be set")
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	config := body["config"].(map[string]any)
	if config["id"] != "7" {
		t.Errorf("Expected path param id=7, got %v", config["id"])
	}
	if config["format"] != "csv" {
		t.Errorf("Expected lowered query value, got %v", config["format"])
	}
}

func TestFiberAdapter_ValidationFailureReturns400(t *testing.T) {
	adapter := NewDefaultFiberAdapter()
	adapter.Mount(widgetDescription(), echoInvoker(nil, nil), nil)

	req := httptest.NewRequest("POST", "/widgets", nil)
	resp, err := adapter.App().Test(req)
	if err != nil {
		t.Fatalf("Test request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 400 {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}

	data, _ := io.ReadAll(resp.Body)
	var body struct {
		Command string   `json:"command"`
		Errors  []string `json:"errors"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if body.Command != "widget.create" {
		t.Errorf("Expected command widget.create, got %s", body.Command)
	}
	if len(body.Errors) != 1 || !strings.Contains(body.Errors[0], "name argument be supplied") {
		t.Errorf("Unexpected errors: %v", body.Errors)
	}
}

func TestFiberAdapter_NilResultReturns204(t *testing.T) {
	adapter := NewDefaultFiberAdapter()
	invoker := InvokerFunc(func(context.Context, *opdesc.Command, *opdesc.Config) (any, error) {
		return nil, nil
	})
	adapter.Mount(widgetDescription(), invoker, nil)

	req := httptest.NewRequest("GET", "/widgets/7", nil)
	resp, err := adapter.App().Test(req)
	if err != nil {
		t.Fatalf("Test request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 204 {
		t.Errorf("Expected status 204, got %d", resp.StatusCode)
	}
}
