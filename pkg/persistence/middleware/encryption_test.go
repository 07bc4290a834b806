package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"
	"time"

	"github.com/aretw0/deduce/pkg/adapters/memory"
	"github.com/aretw0/deduce/pkg/domain"
	"github.com/aretw0/deduce/pkg/persistence/middleware"
	"github.com/aretw0/deduce/pkg/ports"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func newReport(id, input string) *domain.Report {
	return &domain.Report{
		ID:        id,
		Catalog:   "symptoms",
		CreatedAt: time.Now().UTC(),
		Input:     input,
		UserFacts: []string{"fever"},
		Result: domain.Result{
			Facts:      []string{"fever"},
			Sweeps:     1,
			StopReason: domain.StopFixpoint,
		},
		Provenance: map[string]domain.Provenance{"fever": domain.ProvenanceUser},
	}
}

func encrypting(t *testing.T, next ports.ReportStore, cfg middleware.EncryptionConfig) ports.ReportStore {
	t.Helper()
	mw, err := middleware.NewEncryptionMiddleware(cfg)
	if err != nil {
		t.Fatalf("NewEncryptionMiddleware failed: %v", err)
	}
	return mw(next)
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlyingStore := memory.NewStore()
	secureStore := encrypting(t, underlyingStore, middleware.EncryptionConfig{ActiveKey: generateKey(t)})

	ctx := context.Background()
	original := newReport("r1", "my fever, since tuesday")

	// 1. Save
	if err := secureStore.Save(ctx, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 2. The backend only sees the envelope
	stored, err := underlyingStore.Load(ctx, "r1")
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if stored.Input != "" || len(stored.UserFacts) != 0 {
		t.Fatalf("Expected report body to be hidden, found input=%q facts=%v", stored.Input, stored.UserFacts)
	}
	if len(stored.Sealed) == 0 {
		t.Fatal("Expected sealed payload in envelope")
	}
	if stored.Catalog != "symptoms" {
		t.Errorf("Expected catalog to stay in clear, got %q", stored.Catalog)
	}

	// 3. Load via Middleware
	loaded, err := secureStore.Load(ctx, "r1")
	if err != nil {
		t.Fatalf("Load via middleware failed: %v", err)
	}
	if loaded.Input != original.Input {
		t.Errorf("Expected %q, got %q", original.Input, loaded.Input)
	}
	if loaded.ProvenanceOf("fever") != domain.ProvenanceUser {
		t.Errorf("Expected provenance to survive, got %v", loaded.ProvenanceOf("fever"))
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	secureStoreOld := encrypting(t, underlyingStore, middleware.EncryptionConfig{ActiveKey: oldKey})
	ctx := context.Background()

	// 1. Save with OLD key
	if err := secureStoreOld.Save(ctx, newReport("rot", "encrypted-with-old-key")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 2. Load with NEW key (Active) + OLD key (Fallback)
	secureStoreNew := encrypting(t, underlyingStore, middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})
	loaded, err := secureStoreNew.Load(ctx, "rot")
	if err != nil {
		t.Fatalf("Load with rotated key failed: %v", err)
	}
	if loaded.Input != "encrypted-with-old-key" {
		t.Errorf("Decryption with fallback key failed")
	}

	// 3. Save again with the NEW key
	loaded.Input = "encrypted-with-new-key"
	if err := secureStoreNew.Save(ctx, loaded); err != nil {
		t.Fatalf("Save with new key failed: %v", err)
	}

	// 4. The OLD key alone no longer opens it
	if _, err := secureStoreOld.Load(ctx, "rot"); err == nil {
		t.Error("Expected failure when loading new-key encryption with old-key middleware")
	}
}

func TestEncryptionMiddleware_RejectsPlainReport(t *testing.T) {
	underlyingStore := memory.NewStore()
	if err := underlyingStore.Save(context.Background(), newReport("plain", "")); err != nil {
		t.Fatal(err)
	}

	secureStore := encrypting(t, underlyingStore, middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	if _, err := secureStore.Load(context.Background(), "plain"); err == nil {
		t.Error("Expected an error for a report without envelope")
	}
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	if err != middleware.ErrKeySize {
		t.Errorf("Expected ErrKeySize, got %v", err)
	}
}

func TestEncryptionMiddleware_StoreContract(t *testing.T) {
	ports.RunReportStoreContract(t, encrypting(t, memory.NewStore(), middleware.EncryptionConfig{ActiveKey: generateKey(t)}))
}
