package http

import (
	"errors"
	"net/http"
	"testing"

	"inkwell-api/internal/llm"
)

func TestPromptHandler(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "a@example.com")

	s.llm.Response = "The feline was seated."
	rec := s.do(t, http.MethodPost, "/prompt", token, map[string]string{"context": "the cat sat", "prompt": "make it formal"})
	if rec.Code != http.StatusOK || decodeBody(t, rec)["result"] != "The feline was seated." {
		t.Fatalf("expected result, got %d %s", rec.Code, rec.Body.String())
	}
	if s.llm.LastPrompt.User != "The selected text is: the cat sat" {
		t.Fatalf("unexpected prompt %+v", s.llm.LastPrompt)
	}

	s.llm.Err = &llm.APIError{StatusCode: 429, Message: "quota exceeded"}
	rec = s.do(t, http.MethodPost, "/prompt", token, map[string]string{"context": "x", "prompt": "y"})
	if rec.Code != http.StatusBadRequest || decodeBody(t, rec)["error"] != "quota exceeded" {
		t.Fatalf("expected upstream error as 400, got %d %s", rec.Code, rec.Body.String())
	}

	s.llm.Err = errors.New("connection refused")
	if rec := s.do(t, http.MethodPost, "/prompt", token, map[string]string{"context": "x", "prompt": "y"}); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on transport failure, got %d", rec.Code)
	}

	if rec := s.do(t, http.MethodPost, "/prompt", "", map[string]string{"context": "x", "prompt": "y"}); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without credentials, got %d", rec.Code)
	}
}
