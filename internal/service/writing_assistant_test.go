package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"inkwell-api/internal/llm"
)

func TestBuildRewritePrompt(t *testing.T) {
	p := BuildRewritePrompt("the cat sat", "make it formal")
	if !strings.Contains(p.System, "Your task is: make it formal") {
		t.Fatalf("task missing from system prompt: %q", p.System)
	}
	if !strings.Contains(p.System, "only exact 1 option") {
		t.Fatalf("single-option instruction missing: %q", p.System)
	}
	if p.User != "The selected text is: the cat sat" {
		t.Fatalf("unexpected user prompt %q", p.User)
	}
}

func TestWritingAssistant_Rewrite(t *testing.T) {
	mock := &llm.MockClient{Response: "The feline was seated."}
	a := NewWritingAssistant(mock)

	out, err := a.Rewrite(context.Background(), "the cat sat", "make it formal")
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if out != "The feline was seated." {
		t.Fatalf("unexpected result %q", out)
	}
	if mock.LastPrompt.User != "The selected text is: the cat sat" {
		t.Fatalf("prompt not forwarded, got %+v", mock.LastPrompt)
	}
}

func TestWritingAssistant_Errors(t *testing.T) {
	if _, err := NewWritingAssistant(&llm.MockClient{}).Rewrite(context.Background(), "x", " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	upstream := &llm.APIError{StatusCode: 429, Message: "quota exceeded"}
	_, err := NewWritingAssistant(&llm.MockClient{Err: upstream}).Rewrite(context.Background(), "x", "shorter")
	var apiErr *llm.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "quota exceeded" {
		t.Fatalf("expected upstream APIError, got %v", err)
	}
}
