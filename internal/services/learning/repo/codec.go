// Package repo persists learning snapshots. Backends are interchangeable and
// only ever see whole snapshots.
package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	perr "codemix/internal/platform/errors"
	"codemix/internal/services/learning/domain"

	"github.com/vmihailenco/msgpack/v5"
)

// Storage loads and saves snapshots. Load returns (nil, nil) when nothing was
// saved yet.
type Storage interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, s *domain.Snapshot) error
	Kind() string
}

// Codec is the byte encoding of a snapshot
type Codec string

const (
	CodecJSON    Codec = "json"
	CodecMsgpack Codec = "msgpack"
)

// CodecOf picks a codec from a file extension, JSON by default
func CodecOf(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp", ".msgpack", ".mpk":
		return CodecMsgpack
	default:
		return CodecJSON
	}
}

// Encode marshals s
func (c Codec) Encode(s *domain.Snapshot) ([]byte, error) {
	if c == CodecMsgpack {
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetSortMapKeys(true)
		if err := enc.Encode(s); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "encode snapshot")
		}
		return buf.Bytes(), nil
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "encode snapshot")
	}
	return b, nil
}

// Decode unmarshals b and checks the layout version
func (c Codec) Decode(b []byte) (*domain.Snapshot, error) {
	var s domain.Snapshot
	var err error
	if c == CodecMsgpack {
		err = msgpack.Unmarshal(b, &s)
	} else {
		err = json.Unmarshal(b, &s)
	}
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "corrupt snapshot")
	}
	if s.Version != domain.SnapshotVersion {
		return nil, perr.Newf(perr.ErrorCodeJSON, "snapshot version %d, want %d", s.Version, domain.SnapshotVersion)
	}
	return &s, nil
}
