package storage

import (
	"context"
	"time"

	apperrors "github.com/kbukum/fobstore/errors"
	"github.com/kbukum/fobstore/logger"
	"github.com/kbukum/fobstore/storage/naming"
)

// FOB stores and recalls named items on one backend. Its methods never
// return errors or panic; failures are logged and reported through the
// return value.
type FOB struct {
	cfg     Config
	backend Backend
	log     *logger.Logger
}

func newFOB(cfg Config, b Backend, log *logger.Logger) *FOB {
	return &FOB{cfg: cfg, backend: b, log: log}
}

// Mode returns FILE or OBJECT.
func (f *FOB) Mode() string { return f.cfg.Mode }

// Provider returns the backend kind.
func (f *FOB) Provider() string { return f.backend.Name() }

// Available reports whether the backend is usable.
func (f *FOB) Available() bool { return f.backend.Available() }

// Backend returns the underlying backend.
func (f *FOB) Backend() Backend { return f.backend }

// --- item operations ---

// UploadBinary stores data under name.
func (f *FOB) UploadBinary(ctx context.Context, data []byte, name string) Result {
	r := resultOf(nil, f.backend.Put(ctx, name, data))
	f.logResult("upload", name, r)
	return r
}

// UploadText encodes text with codec (the configured default when empty)
// and stores it under name.
func (f *FOB) UploadText(ctx context.Context, text, name, codec string) Result {
	data, err := encodeText(text, f.codec(codec))
	if err != nil {
		r := Result{Status: StatusFailed, Err: err}
		f.logResult("upload text", name, r)
		return r
	}
	return f.UploadBinary(ctx, data, name)
}

// Fetch reads name and reports whether it was found, absent, or failed.
func (f *FOB) Fetch(ctx context.Context, name string) Result {
	r := resultOf(f.backend.Get(ctx, name))
	f.logResult("download", name, r)
	return r
}

// DownloadBinary returns the item's bytes, or an empty slice when it is
// absent or cannot be read.
func (f *FOB) DownloadBinary(ctx context.Context, name string) []byte {
	r := f.Fetch(ctx, name)
	if !r.OK() {
		return []byte{}
	}
	return r.Data
}

// DownloadText returns the item decoded with codec (the configured default
// when empty). Undecodable bytes become U+FFFD. An absent or unreadable item
// yields "".
func (f *FOB) DownloadText(ctx context.Context, name, codec string) string {
	r := f.Fetch(ctx, name)
	if !r.OK() {
		return ""
	}
	text, err := decodeText(r.Data, f.codec(codec))
	if err != nil {
		f.logResult("download text", name, Result{Status: StatusFailed, Err: err})
		return ""
	}
	return text
}

// Exists reports whether an item is stored under exactly name.
func (f *FOB) Exists(ctx context.Context, name string) bool {
	names, err := List(ctx, f.backend, ListOptions{Prefix: name, Limit: 1})
	if err != nil {
		f.logResult("exists", name, resultOf(nil, err))
		return false
	}
	return len(names) == 1 && names[0] == name
}

// Remove deletes name. Removing an absent item succeeds.
func (f *FOB) Remove(ctx context.Context, name string) Result {
	r := resultOf(nil, f.backend.Delete(ctx, name))
	f.logResult("remove", name, r)
	return r
}

// List returns matching names; see the package-level List. On a backend
// failure the names gathered before it are returned.
func (f *FOB) List(ctx context.Context, opts ListOptions) []string {
	names, err := List(ctx, f.backend, opts)
	if err != nil {
		f.logResult("list", opts.Prefix, resultOf(nil, err))
	}
	if names == nil {
		names = []string{}
	}
	return names
}

// --- naming families ---

// DatasetListItems lists dataset list names ending in .json.
func (f *FOB) DatasetListItems(ctx context.Context) []string {
	return f.List(ctx, ListOptions{Prefix: naming.DatasetListPrefix, Suffix: "." + naming.ExtJSON, Limit: DefaultLimit})
}

// DatasetListName returns the dataset list name for the given day.
func (f *FOB) DatasetListName(date time.Time) string { return naming.DatasetListName(date) }

// DatasetListSearch parses a dataset list name.
func (f *FOB) DatasetListSearch(name string) (naming.DatasetListMatch, bool) {
	return naming.DatasetListSearch(name)
}

// DatasetItems lists one state's dataset names ending in .json.
func (f *FOB) DatasetItems(ctx context.Context, state string) []string {
	return f.List(ctx, ListOptions{Prefix: naming.DatasetPrefix(state), Suffix: "." + naming.ExtJSON, Limit: DefaultLimit})
}

// DatasetName returns the dataset name for a state and dataset id.
func (f *FOB) DatasetName(state string, id int) string { return naming.DatasetName(state, id) }

// DatasetSearch parses a dataset name.
func (f *FOB) DatasetSearch(name string) (naming.DatasetMatch, bool) {
	return naming.DatasetSearch(name)
}

// BillTextItems lists one state's bill text names with the given extension.
func (f *FOB) BillTextItems(ctx context.Context, state, extension string) []string {
	return f.List(ctx, ListOptions{
		Prefix: naming.BillTextPrefix(state),
		Suffix: naming.BillTextName("", extension),
		Limit:  DefaultLimit,
	})
}

// BillTextKey builds the extension-less key for a bill document.
func (f *FOB) BillTextKey(state, billNumber string, sessionID, year int) string {
	return naming.BillTextKey(state, billNumber, sessionID, year)
}

// BillTextName appends an extension to a bill text key.
func (f *FOB) BillTextName(key, extension string) string { return naming.BillTextName(key, extension) }

// BillTextSearch parses a bill text name.
func (f *FOB) BillTextSearch(name string) (naming.BillTextMatch, bool) {
	return naming.BillTextSearch(name)
}

// --- helpers ---

func (f *FOB) codec(codec string) string {
	if codec == "" {
		return f.cfg.Codec
	}
	return codec
}

func (f *FOB) logResult(op, name string, r Result) {
	switch {
	case r.Status == StatusOK:
		return
	case r.Status == StatusAbsent, apperrors.IsUnavailable(r.Err):
		f.log.Debug(op+" skipped", logger.ErrorFields(op, name, r.Err))
	default:
		f.log.Error(op+" failed", logger.ErrorFields(op, name, r.Err))
	}
}
