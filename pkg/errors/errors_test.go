package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidMatrix, "bad unit %q", "H1")
	if !Is(err, ErrCodeInvalidMatrix) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("Is() = true for a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is() = true for a plain error")
	}
}

func TestIs_Wrapped(t *testing.T) {
	inner := New(ErrCodeStore, "connection refused")
	outer := fmt.Errorf("saving: %w", inner)
	if !Is(outer, ErrCodeStore) {
		t.Error("Is() does not unwrap fmt-wrapped errors")
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeStore, cause, "save matrix %s", "site-a")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error lost its cause")
	}
	if GetCode(err) != ErrCodeStore {
		t.Errorf("GetCode() = %q, want %q", GetCode(err), ErrCodeStore)
	}
	want := "STORE_ERROR: save matrix site-a: disk full"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestGetCode_PlainError(t *testing.T) {
	if code := GetCode(stderrors.New("plain")); code != "" {
		t.Errorf("GetCode() = %q, want empty", code)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "name cannot be empty")
	if got := UserMessage(err); got != "name cannot be empty" {
		t.Errorf("UserMessage() = %q", got)
	}
	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
