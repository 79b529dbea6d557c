package providers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStabilityGenerateImages(t *testing.T) {
	pngBytes := []byte("\x89PNG fake image data")

	var got StabilityRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"artifacts": []map[string]interface{}{
				{"base64": base64.StdEncoding.EncodeToString(pngBytes), "finishReason": "SUCCESS"},
			},
		})
	}))
	defer server.Close()

	dir := t.TempDir()
	p := NewStabilityProvider(server.URL, dir, "https://blog.example/uploads", nil)

	urls, err := p.GenerateImages(context.Background(), "test-key", "a mountain", 1)
	if err != nil {
		t.Fatalf("GenerateImages: %v", err)
	}
	if len(urls) != 1 {
		t.Fatalf("got %d urls", len(urls))
	}

	if !strings.HasPrefix(urls[0], "https://blog.example/uploads/stability-") ||
		!strings.HasSuffix(urls[0], ".png") {
		t.Errorf("url = %q", urls[0])
	}

	filename := urls[0][strings.LastIndex(urls[0], "/")+1:]
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("read saved image: %v", err)
	}
	if string(data) != string(pngBytes) {
		t.Error("saved image bytes do not match artifact")
	}

	if got.CfgScale != 7 || got.Steps != 30 || got.Height != 1024 || got.Width != 1024 {
		t.Errorf("request params = %+v", got)
	}
	if got.StylePreset != "photographic" {
		t.Errorf("style_preset = %q", got.StylePreset)
	}
	if len(got.TextPrompts) != 1 || got.TextPrompts[0].Text != "a mountain" || got.TextPrompts[0].Weight != 1 {
		t.Errorf("text_prompts = %+v", got.TextPrompts)
	}
}

func TestStabilityGenerateImagesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "bad key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	p := NewStabilityProvider(server.URL, t.TempDir(), "https://blog.example/uploads", nil)
	if _, err := p.GenerateImages(context.Background(), "bad", "prompt", 1); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestStabilityGenerateImagesInvalidBase64(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"artifacts": []map[string]interface{}{{"base64": "not-base64!!!"}},
		})
	}))
	defer server.Close()

	p := NewStabilityProvider(server.URL, t.TempDir(), "https://blog.example/uploads", nil)
	if _, err := p.GenerateImages(context.Background(), "k", "prompt", 1); err == nil {
		t.Fatal("expected error for undecodable artifact")
	}
}

func TestStabilityRequiresKey(t *testing.T) {
	p := NewStabilityProvider("", t.TempDir(), "", nil)
	if _, err := p.GenerateImages(context.Background(), "", "prompt", 1); err == nil {
		t.Error("expected error for missing key")
	}
}
