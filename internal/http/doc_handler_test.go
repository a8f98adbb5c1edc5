package http

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
)

func TestDocHandler_CRUD(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "a@example.com")

	rec := s.do(t, http.MethodPost, "/docs", token, map[string]any{
		"title":        "Groceries",
		"content_text": "milk and eggs",
		"content_json": map[string]any{"type": "doc"},
		"content_html": "<p>milk and eggs</p>",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	doc, _ := body["doc"].(map[string]any)
	id, _ := doc["id"].(string)
	if id == "" || body["error"] != nil {
		t.Fatalf("unexpected create body %s", rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/docs", token, nil)
	docs, _ := decodeBody(t, rec)["docs"].([]any)
	if rec.Code != http.StatusOK || len(docs) != 1 {
		t.Fatalf("list: expected one doc, got %d %s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/docs?search=milk", token, nil)
	docs, _ = decodeBody(t, rec)["docs"].([]any)
	if len(docs) != 1 {
		t.Fatalf("search: expected one match, got %s", rec.Body.String())
	}
	if hit, _ := docs[0].(map[string]any); hit["content_text"] != "milk and eggs" {
		t.Fatalf("search: expected content_text in result, got %v", hit)
	}

	rec = s.do(t, http.MethodPut, "/docs/"+id, token, map[string]any{"title": "Shopping", "content_text": "bread"})
	doc, _ = decodeBody(t, rec)["doc"].(map[string]any)
	if rec.Code != http.StatusOK || doc["title"] != "Shopping" {
		t.Fatalf("update: unexpected %d %s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/docs/"+id, token, nil)
	doc, _ = decodeBody(t, rec)["doc"].(map[string]any)
	if rec.Code != http.StatusOK || doc["content_text"] != "bread" {
		t.Fatalf("get: unexpected %d %s", rec.Code, rec.Body.String())
	}

	if rec := s.do(t, http.MethodDelete, "/docs/"+id, token, nil); rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodGet, "/docs/"+id, token, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", rec.Code)
	}
}

func TestDocHandler_NotFound(t *testing.T) {
	s := newTestServer(t)
	owner := s.login(t, "a@example.com")
	other := s.login(t, "b@example.com")

	rec := s.do(t, http.MethodPost, "/docs", owner, map[string]any{"title": "Private"})
	doc, _ := decodeBody(t, rec)["doc"].(map[string]any)
	id, _ := doc["id"].(string)

	paths := []string{
		"/docs/" + id,
		"/docs/" + uuid.NewString(),
		"/docs/not-a-uuid",
	}
	for _, path := range paths {
		rec := s.do(t, http.MethodGet, path, other, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, rec.Code)
		}
		body := decodeBody(t, rec)
		if body["doc"] != nil || body["error"] != "Document not found" {
			t.Fatalf("%s: unexpected body %s", path, rec.Body.String())
		}
	}

	if rec := s.do(t, http.MethodDelete, "/docs/"+id, other, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("delete by non-owner: expected 404, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodGet, "/docs", "", nil); rec.Code != http.StatusForbidden {
		t.Fatalf("anonymous list: expected 403, got %d", rec.Code)
	}
}
