package storage

import (
	"context"
	"strings"
)

// Listing bounds.
const (
	// MaxPageSize is the most names requested from a backend per page.
	MaxPageSize = 1000
	// MaxPages caps the number of pages one List call may request.
	MaxPages = 999
	// DefaultLimit is the limit used by the naming-family helpers.
	DefaultLimit = 1000
)

// ListOptions filters a listing. Limit <= 0 means no limit.
type ListOptions struct {
	Prefix string
	Suffix string
	// After excludes names lexicographically <= it.
	After string
	Limit int
}

func (o ListOptions) accepts(name string) bool {
	if o.After != "" && name <= o.After {
		return false
	}
	return strings.HasPrefix(name, o.Prefix) && strings.HasSuffix(name, o.Suffix)
}

// pageSize is reduced to the limit only when no suffix is given, since a
// suffix may reject every name on a page.
func (o ListOptions) pageSize() int {
	if o.Limit > 0 && o.Suffix == "" && o.Limit < MaxPageSize {
		return o.Limit
	}
	return MaxPageSize
}

// List returns names from b in ascending order that start with Prefix, end
// with Suffix, and sort after After, up to Limit of them.
//
// Pages are requested from the cursor left by the last raw name of the
// previous page, whether or not that name was accepted. Listing stops at
// the limit, on an empty or final page, or after MaxPages pages. On a
// backend error the names gathered so far are returned with the error.
func List(ctx context.Context, b Backend, opts ListOptions) ([]string, error) {
	req := PageRequest{
		Prefix:     opts.Prefix,
		Suffix:     opts.Suffix,
		StartAfter: opts.After,
		MaxKeys:    opts.pageSize(),
	}

	var names []string
	for range MaxPages {
		if err := ctx.Err(); err != nil {
			return names, err
		}
		page, err := b.ListPage(ctx, req)
		if err != nil {
			return names, err
		}
		for _, name := range page.Names {
			if name > req.StartAfter {
				req.StartAfter = name
			}
			if !opts.accepts(name) {
				continue
			}
			names = append(names, name)
			if opts.Limit > 0 && len(names) >= opts.Limit {
				return names, nil
			}
		}
		if len(page.Names) == 0 || !page.Truncated {
			break
		}
	}
	return names, nil
}
