package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/threadlingo/threadlingo/internal/config"
)

const blockKitDoc = `{
	"blocks": [
		{"type": "section", "text": {"type": "mrkdwn", "text": "안녕하세요"}},
		{"type": "divider"},
		{"type": "section", "fields": [
			{"type": "mrkdwn", "text": "🇺🇸 Hello"},
			{"type": "mrkdwn", "text": "🇹🇭 สวัสดี"}
		]}
	]
}`

func newTestClient(url string) *Client {
	return NewClient(config.TranslateConfig{
		APIURL:         url,
		APIToken:       "secret-token",
		Model:          "llama2",
		TimeoutSeconds: 5,
	})
}

func envelope(t *testing.T, inner string) []byte {
	t.Helper()
	data, err := json.Marshal(map[string]string{"response": inner})
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestTranslate_Success(t *testing.T) {
	var gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotBody, _ = req["prompt"].(string)
		if stream, ok := req["stream"].(bool); !ok || stream {
			t.Error("expected stream:false in request")
		}
		if req["model"] != "llama2" {
			t.Errorf("expected model llama2, got %v", req["model"])
		}
		w.Write(envelope(t, blockKitDoc))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	res, err := c.Translate(context.Background(), "안녕하세요")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if !strings.Contains(gotBody, "안녕하세요") {
		t.Error("prompt must embed the source text")
	}
	if len(res.Blocks.BlockSet) != 3 {
		t.Errorf("expected 3 blocks, got %d", len(res.Blocks.BlockSet))
	}
	if !strings.Contains(res.Text, "🇺🇸 Hello") || !strings.Contains(res.Text, "안녕하세요") {
		t.Errorf("fallback text must collect section texts, got %q", res.Text)
	}
}

func TestTranslate_FencedModelOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(envelope(t, "```json\n"+blockKitDoc+"\n```"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	res, err := c.Translate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Blocks.BlockSet) != 3 {
		t.Errorf("expected 3 blocks, got %d", len(res.Blocks.BlockSet))
	}
}

func TestTranslate_NoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write(envelope(t, blockKitDoc))
	}))
	defer srv.Close()

	c := NewClient(config.TranslateConfig{APIURL: srv.URL, Model: "llama2", TimeoutSeconds: 5})
	defer c.Close()

	if _, err := c.Translate(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("no Authorization header expected, got %q", gotAuth)
	}
}

func TestTranslate_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	_, err := c.Translate(context.Background(), "hello")
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError, got %T: %v", err, err)
	}
	if svcErr.Status != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", svcErr.Status)
	}
}

func TestTranslate_MalformedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	_, err := c.Translate(context.Background(), "hello")
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError, got %T: %v", err, err)
	}
}

func TestTranslate_EmptyModelResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(envelope(t, "   "))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	if _, err := c.Translate(context.Background(), "hello"); err == nil {
		t.Fatal("expected an error for an empty model response")
	}
}

func TestTranslate_ModelOutputWithoutBlocks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(envelope(t, `{"blocks": []}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	if _, err := c.Translate(context.Background(), "hello"); err == nil {
		t.Fatal("expected an error when the model output has no blocks")
	}
}

func TestTranslate_TransportError(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1") // nothing listens here
	defer c.Close()

	_, err := c.Translate(context.Background(), "hello")
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError, got %T: %v", err, err)
	}
	if svcErr.Status != 0 {
		t.Errorf("transport errors carry no HTTP status, got %d", svcErr.Status)
	}
	if svcErr.Unwrap() == nil {
		t.Error("transport error should carry its cause")
	}
}
