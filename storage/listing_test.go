package storage_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/kbukum/fobstore/storage"
	"github.com/kbukum/fobstore/storage/testutil"
)

func seeded(n int, format string) *testutil.Backend {
	b := testutil.NewBackend()
	for i := range n {
		b.Seed(fmt.Sprintf(format, i))
	}
	return b
}

func TestList_UnlimitedReturnsEverythingInOrder(t *testing.T) {
	b := seeded(2500, "item-%05d")
	names, err := storage.List(context.Background(), b, storage.ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 2500 {
		t.Fatalf("len(names) = %d, want 2500", len(names))
	}
	if !slices.IsSorted(names) {
		t.Error("names are not in ascending order")
	}
	if got := b.Calls(testutil.OpList); got != 3 {
		t.Errorf("ListPage calls = %d, want 3", got)
	}
}

func TestList_PageSize(t *testing.T) {
	tests := []struct {
		name string
		opts storage.ListOptions
		want int
	}{
		{"limit without suffix", storage.ListOptions{Limit: 5}, 5},
		{"limit with suffix", storage.ListOptions{Limit: 5, Suffix: ".json"}, storage.MaxPageSize},
		{"no limit", storage.ListOptions{}, storage.MaxPageSize},
		{"negative limit", storage.ListOptions{Limit: -1}, storage.MaxPageSize},
		{"limit above page size", storage.ListOptions{Limit: 5000}, storage.MaxPageSize},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := seeded(10, "x-%02d.json")
			if _, err := storage.List(context.Background(), b, tc.opts); err != nil {
				t.Fatalf("List() error = %v", err)
			}
			reqs := b.Requests()
			if len(reqs) == 0 {
				t.Fatal("no page requested")
			}
			if reqs[0].MaxKeys != tc.want {
				t.Errorf("MaxKeys = %d, want %d", reqs[0].MaxKeys, tc.want)
			}
		})
	}
}

func TestList_LimitStopsWithoutExtraPage(t *testing.T) {
	b := seeded(50, "n-%02d")
	names, err := storage.List(context.Background(), b, storage.ListOptions{Limit: 7})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if want := []string{"n-00", "n-01", "n-02", "n-03", "n-04", "n-05", "n-06"}; !slices.Equal(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}
	if got := b.Calls(testutil.OpList); got != 1 {
		t.Errorf("ListPage calls = %d, want 1", got)
	}
}

func TestList_SuffixIsRevalidated(t *testing.T) {
	b := testutil.NewBackend()
	b.Seed("AZ-HB0001-1-Y2016.json", "AZ-HB0001-1-Y2016.pdf", "AZ-HB0002-1-Y2016.json", "AZ-HB0002-1-Y2016.html")

	names, err := storage.List(context.Background(), b, storage.ListOptions{Prefix: "AZ-", Suffix: ".json"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if want := []string{"AZ-HB0001-1-Y2016.json", "AZ-HB0002-1-Y2016.json"}; !slices.Equal(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}
}

func TestList_SuffixPagesPastRejectedNames(t *testing.T) {
	b := seeded(1500, "doc-%04d.pdf")
	b.Seed("doc-9998.json", "doc-9999.json")

	names, err := storage.List(context.Background(), b, storage.ListOptions{Suffix: ".json", Limit: 1})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if want := []string{"doc-9998.json"}; !slices.Equal(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}

	reqs := b.Requests()
	if len(reqs) != 2 {
		t.Fatalf("ListPage calls = %d, want 2", len(reqs))
	}
	// The cursor moves to the last raw name even though it was rejected.
	if reqs[1].StartAfter != "doc-0999.pdf" {
		t.Errorf("second StartAfter = %q, want %q", reqs[1].StartAfter, "doc-0999.pdf")
	}
}

func TestList_AfterIsStrict(t *testing.T) {
	b := testutil.NewBackend()
	b.Seed("a", "b", "c", "d")
	names, err := storage.List(context.Background(), b, storage.ListOptions{After: "b"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if want := []string{"c", "d"}; !slices.Equal(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}
	if got := b.Requests()[0].StartAfter; got != "b" {
		t.Errorf("StartAfter = %q, want b", got)
	}
}

func TestList_ErrorReturnsPartial(t *testing.T) {
	b := seeded(1500, "p-%04d")
	boom := errors.New("connection reset")
	b.FailAfter(testutil.OpList, 1, boom)

	names, err := storage.List(context.Background(), b, storage.ListOptions{})
	if !errors.Is(err, boom) {
		t.Fatalf("List() error = %v, want %v", err, boom)
	}
	if len(names) != storage.MaxPageSize {
		t.Errorf("len(names) = %d, want %d", len(names), storage.MaxPageSize)
	}
}

func TestList_ContextCancelled(t *testing.T) {
	b := seeded(3, "c-%d")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	names, err := storage.List(ctx, b, storage.ListOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("List() error = %v, want context.Canceled", err)
	}
	if len(names) != 0 || b.Calls(testutil.OpList) != 0 {
		t.Errorf("List() = %v after %d calls, want nothing", names, b.Calls(testutil.OpList))
	}
}

// endlessBackend always claims more names follow.
type endlessBackend struct {
	testutil.Backend
	calls int
	empty bool
}

func (e *endlessBackend) ListPage(_ context.Context, req storage.PageRequest) (storage.Page, error) {
	e.calls++
	if e.empty {
		return storage.Page{Truncated: true}, nil
	}
	return storage.Page{Names: []string{fmt.Sprintf("e-%07d", e.calls)}, Truncated: true}, nil
}

func TestList_PageCap(t *testing.T) {
	b := &endlessBackend{}
	names, err := storage.List(context.Background(), b, storage.ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v, want nil at the page cap", err)
	}
	if b.calls != storage.MaxPages {
		t.Errorf("ListPage calls = %d, want %d", b.calls, storage.MaxPages)
	}
	if len(names) != storage.MaxPages {
		t.Errorf("len(names) = %d, want %d", len(names), storage.MaxPages)
	}
}

func TestList_EmptyPageStops(t *testing.T) {
	b := &endlessBackend{empty: true}
	names, err := storage.List(context.Background(), b, storage.ListOptions{})
	if err != nil || len(names) != 0 {
		t.Fatalf("List() = %v, %v", names, err)
	}
	if b.calls != 1 {
		t.Errorf("ListPage calls = %d, want 1", b.calls)
	}
}
