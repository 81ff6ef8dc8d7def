package dictionary

import (
	"embed"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	perr "codemix/internal/platform/errors"
)

//go:embed dicts/*.json
var builtin embed.FS

// Defaults returns the embedded dictionaries as a snapshot
func Defaults() (*Set, error) {
	return LoadFS(builtin, "dicts")
}

// LoadFS reads every .json, .yaml and .yml document in dir
func LoadFS(fsys fs.FS, dir string) (*Set, error) {
	ents, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, loadErr(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read dictionary dir %q", dir), "path")
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(path.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, loadErr(perr.Newf(perr.ErrorCodeInvalidArgument, "no dictionaries in %q", dir), "path")
	}

	dicts := make([]*Dictionary, 0, len(names))
	for _, n := range names {
		data, err := fs.ReadFile(fsys, path.Join(dir, n))
		if err != nil {
			return nil, loadErr(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read %s", n), "path")
		}
		d, err := Parse(data, FormatOf(n))
		if err != nil {
			return nil, perr.Wrapf(err, perr.CodeOf(err), "%s", n)
		}
		dicts = append(dicts, d)
	}
	return NewSet(dicts...), nil
}

// Registry publishes the current snapshot. Reads are lock free; writers are
// serialized and swap a whole new Set.
type Registry struct {
	cur atomic.Pointer[Set]
	mu  sync.Mutex
}

// NewRegistry starts from initial, or an empty set when nil
func NewRegistry(initial *Set) *Registry {
	r := &Registry{}
	if initial == nil {
		initial = NewSet()
	}
	r.cur.Store(initial)
	return r
}

// Current is the snapshot to use for one analysis
func (r *Registry) Current() *Set { return r.cur.Load() }

// Load parses one dictionary and installs it under code. The document's own
// iso_code must agree with code when both are set.
func (r *Registry) Load(code string, rd io.Reader, f Format) (*Dictionary, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	d, err := Decode(rd, f)
	if err != nil {
		return nil, err
	}
	if code != "" && d.ISOCode != code {
		return nil, loadErr(perr.Newf(perr.ErrorCodeInvalidArgument, "document iso_code %q does not match %q", d.ISOCode, code), "iso_code")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.cur.Store(r.cur.Load().With(d))
	return d, nil
}

// Reload swaps in dictionaries from disk. A file replaces the one language it
// defines; a directory replaces the whole snapshot. On any error the current
// snapshot stays in place.
func (r *Registry) Reload(p string) (*Set, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, loadErr(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "stat %q", p), "path")
	}

	if info.IsDir() {
		next, err := LoadFS(os.DirFS(p), ".")
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.cur.Store(next)
		r.mu.Unlock()
		return next, nil
	}

	fh, err := os.Open(filepath.Clean(p))
	if err != nil {
		return nil, loadErr(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "open %q", p), "path")
	}
	defer fh.Close()
	d, err := Decode(fh, FormatOf(p))
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	next := r.cur.Load().With(d)
	r.cur.Store(next)
	return next, nil
}
