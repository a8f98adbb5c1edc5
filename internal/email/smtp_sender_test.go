package email

import (
	"context"
	"strings"
	"testing"
)

func TestNewSMTPSender_Validation(t *testing.T) {
	if _, err := NewSMTPSender("", 587, "", "", "from@example.com", "", false); err == nil {
		t.Fatalf("expected error for empty host")
	}
	if _, err := NewSMTPSender("smtp.example.com", 587, "", "", " ", "", false); err == nil {
		t.Fatalf("expected error for empty from")
	}
	s, err := NewSMTPSender("smtp.example.com", 0, "", "", "from@example.com", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.port != 587 {
		t.Fatalf("expected default port 587, got %d", s.port)
	}
}

func TestSMTPSender_RejectsEmptyRecipient(t *testing.T) {
	s, err := NewSMTPSender("smtp.example.com", 587, "", "", "from@example.com", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SendVerificationCode(context.Background(), "  ", "123456"); err == nil {
		t.Fatalf("expected error for empty recipient")
	}
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("no-reply@example.com", "Inkwell", "a@example.com", "Your sign-in code", "code 123456\n")
	if !strings.HasPrefix(msg, "From: Inkwell <no-reply@example.com>\r\n") {
		t.Fatalf("unexpected from header: %q", msg)
	}
	if !strings.Contains(msg, "To: a@example.com\r\n") {
		t.Fatalf("missing to header: %q", msg)
	}
	if !strings.HasSuffix(msg, "\r\n\r\ncode 123456\n") {
		t.Fatalf("body not separated from headers: %q", msg)
	}

	plain := buildMessage("no-reply@example.com", "", "a@example.com", "s", "b")
	if !strings.HasPrefix(plain, "From: no-reply@example.com\r\n") {
		t.Fatalf("unexpected from header without name: %q", plain)
	}
}

func TestDisabledSender(t *testing.T) {
	err := NewDisabledSender("smtp not configured").SendVerificationCode(context.Background(), "a@example.com", "123456")
	if err == nil || err.Error() != "smtp not configured" {
		t.Fatalf("expected configured reason, got %v", err)
	}
	if err := NewDisabledSender("").SendVerificationCode(context.Background(), "a@example.com", "123456"); err == nil {
		t.Fatalf("expected default error")
	}
}
