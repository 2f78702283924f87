package memory

import (
	"context"
	"errors"
	"testing"

	"storeflow/pkg/store"
)

func TestBackend(t *testing.T) {
	ctx := context.Background()
	b := New()
	if _, err := b.Load(ctx); !errors.Is(err, store.ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}

	doc := []byte(`{"categories":[]}`)
	if err := b.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	doc[0] = 'X'

	got, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"categories":[]}` {
		t.Fatalf("unexpected document %s", got)
	}
	got[0] = 'Y'
	if string(b.Bytes()) != `{"categories":[]}` {
		t.Fatal("stored document must not alias returned bytes")
	}
	if b.Saves() != 1 {
		t.Fatalf("expected 1 save, got %d", b.Saves())
	}
}

func TestNewWithDocument(t *testing.T) {
	b := NewWithDocument([]byte(`{}`))
	got, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{}` {
		t.Fatalf("unexpected document %s", got)
	}
	if b.Saves() != 0 {
		t.Fatalf("expected no saves, got %d", b.Saves())
	}
}
