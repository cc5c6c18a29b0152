package testutil

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"testing"

	apperrors "github.com/kbukum/fobstore/errors"
	"github.com/kbukum/fobstore/storage"
)

// RunBackendTests checks newBackend's backends against the storage.Backend
// contract. Each subtest gets a fresh, empty backend.
func RunBackendTests(t *testing.T, newBackend func(t *testing.T) storage.Backend) {
	t.Helper()
	ctx := context.Background()

	t.Run("PutGet", func(t *testing.T) {
		b := newBackend(t)
		data := []byte{0x00, 0xff, 'f', 'o', 'b'}
		if err := b.Put(ctx, "AAA-TEST.bin", data); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := b.Get(ctx, "AAA-TEST.bin")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("Get() = %v, want %v", got, data)
		}
	})

	t.Run("PutReplaces", func(t *testing.T) {
		b := newBackend(t)
		_ = b.Put(ctx, "item", []byte("first"))
		_ = b.Put(ctx, "item", []byte("second"))
		got, err := b.Get(ctx, "item")
		if err != nil || string(got) != "second" {
			t.Errorf("Get() = %q, %v; want %q", got, err, "second")
		}
	})

	t.Run("EmptyItem", func(t *testing.T) {
		b := newBackend(t)
		if err := b.Put(ctx, "empty", nil); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := b.Get(ctx, "empty")
		if err != nil || len(got) != 0 {
			t.Errorf("Get() = %v, %v; want empty", got, err)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		b := newBackend(t)
		_, err := b.Get(ctx, "missing")
		if !apperrors.IsNotFound(err) {
			t.Errorf("Get() error = %v, want NOT_FOUND", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		b := newBackend(t)
		_ = b.Put(ctx, "item", []byte("x"))
		if err := b.Delete(ctx, "item"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := b.Get(ctx, "item"); !apperrors.IsNotFound(err) {
			t.Errorf("Get() after Delete error = %v, want NOT_FOUND", err)
		}
		if err := b.Delete(ctx, "item"); err != nil {
			t.Errorf("Delete() of absent item error = %v", err)
		}
	})

	t.Run("ListPageOrderAndPrefix", func(t *testing.T) {
		b := newBackend(t)
		for _, name := range []string{"b-2", "a-1", "b-1", "c-1", "b-3"} {
			_ = b.Put(ctx, name, []byte(name))
		}
		page, err := b.ListPage(ctx, storage.PageRequest{Prefix: "b-", MaxKeys: 10})
		if err != nil {
			t.Fatalf("ListPage() error = %v", err)
		}
		if want := []string{"b-1", "b-2", "b-3"}; !slices.Equal(page.Names, want) {
			t.Errorf("Names = %v, want %v", page.Names, want)
		}
		if page.Truncated {
			t.Error("Truncated = true for a complete listing")
		}
	})

	t.Run("ListPageStartAfterAndMaxKeys", func(t *testing.T) {
		b := newBackend(t)
		for i := range 5 {
			_ = b.Put(ctx, fmt.Sprintf("item-%d", i), nil)
		}
		page, err := b.ListPage(ctx, storage.PageRequest{StartAfter: "item-1", MaxKeys: 2})
		if err != nil {
			t.Fatalf("ListPage() error = %v", err)
		}
		if want := []string{"item-2", "item-3"}; !slices.Equal(page.Names, want) {
			t.Errorf("Names = %v, want %v", page.Names, want)
		}
		if !page.Truncated {
			t.Error("Truncated = false with names remaining")
		}
	})

	t.Run("ListPageIgnoresSuffix", func(t *testing.T) {
		b := newBackend(t)
		for _, name := range []string{"a.bin", "a.bin.txt", "a.txt"} {
			_ = b.Put(ctx, name, nil)
		}
		page, err := b.ListPage(ctx, storage.PageRequest{Prefix: "a.bin", Suffix: ".bin", MaxKeys: 10})
		if err != nil {
			t.Fatalf("ListPage() error = %v", err)
		}
		if want := []string{"a.bin", "a.bin.txt"}; !slices.Equal(page.Names, want) {
			t.Errorf("Names = %v, want %v", page.Names, want)
		}
	})

	t.Run("ListPageEmpty", func(t *testing.T) {
		b := newBackend(t)
		page, err := b.ListPage(ctx, storage.PageRequest{Prefix: "none", MaxKeys: 10})
		if err != nil {
			t.Fatalf("ListPage() error = %v", err)
		}
		if len(page.Names) != 0 || page.Truncated {
			t.Errorf("ListPage() = %+v, want empty", page)
		}
	})

	t.Run("Available", func(t *testing.T) {
		if !newBackend(t).Available() {
			t.Error("Available() = false for a fresh backend")
		}
	})
}
