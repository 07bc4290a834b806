package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/deduce/pkg/adapters/memory"
	"github.com/aretw0/deduce/pkg/persistence/middleware"
)

func TestRedactMiddleware_Masking(t *testing.T) {
	underlyingStore := memory.NewStore()
	mw, err := middleware.NewRedactMiddleware([]string{`[\w.]+@[\w.]+`, `\d{3}-\d{4}`})
	if err != nil {
		t.Fatalf("NewRedactMiddleware failed: %v", err)
	}
	store := mw(underlyingStore)

	ctx := context.Background()
	report := newReport("pii", "fever, call me at 555-1234 or jdoe@example.com")

	if err := store.Save(ctx, report); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// The caller's report is not modified
	if report.Input != "fever, call me at 555-1234 or jdoe@example.com" {
		t.Error("Middleware modified original report in memory!")
	}

	stored, err := underlyingStore.Load(ctx, "pii")
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if want := "fever, call me at *** or ***"; stored.Input != want {
		t.Errorf("Expected %q, got %q", want, stored.Input)
	}
	if stored.UserFacts[0] != "fever" {
		t.Error("Facts shouldn't be masked")
	}
}

func TestRedactMiddleware_InvalidPattern(t *testing.T) {
	if _, err := middleware.NewRedactMiddleware([]string{"("}); err == nil {
		t.Error("Expected error for invalid pattern")
	}
}

func TestChain_Order(t *testing.T) {
	underlyingStore := memory.NewStore()
	redact, err := middleware.NewRedactMiddleware([]string{`secret`})
	if err != nil {
		t.Fatal(err)
	}
	encrypt, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	if err != nil {
		t.Fatal(err)
	}

	store := middleware.Chain(underlyingStore, redact, encrypt)
	ctx := context.Background()
	if err := store.Save(ctx, newReport("chain", "a secret cough")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx, "chain")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Input != "a *** cough" {
		t.Errorf("Expected redaction before encryption, got %q", loaded.Input)
	}
}
