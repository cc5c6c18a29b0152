package storage

import "context"

// PageRequest asks a backend for one page of item names.
type PageRequest struct {
	// Prefix restricts names to those starting with it.
	Prefix string
	// Suffix is carried for information only. Backends return every
	// name under Prefix and List applies the suffix.
	Suffix string
	// StartAfter excludes names lexicographically <= it.
	StartAfter string
	// MaxKeys caps the number of names returned.
	MaxKeys int
}

// Page is one batch of item names in ascending order.
type Page struct {
	Names []string
	// Truncated reports that more names follow the last one in Names.
	Truncated bool
}

// Backend is the byte-level contract every storage substrate implements.
type Backend interface {
	// Name identifies the backend kind ("local", "s3", "minio").
	Name() string

	// Put stores data under name, replacing any existing item.
	Put(ctx context.Context, name string, data []byte) error

	// Get returns the item's content. An absent item yields an error
	// carrying errors.ErrCodeNotFound.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes the item. Deleting an absent item returns nil.
	Delete(ctx context.Context, name string) error

	// ListPage returns names matching req in ascending order.
	ListPage(ctx context.Context, req PageRequest) (Page, error)

	// Available reports false for a backend disabled during setup.
	Available() bool
}

// BucketDescriber is optionally implemented by backends and provider configs
// that are rooted in a bucket.
type BucketDescriber interface {
	GetBucket() string
}
