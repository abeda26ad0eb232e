package world

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"

	"github.com/blockvale/classic/block"
)

// Store is the level store contract named as an external collaborator in
// spec.md section 6 ("level file reading/writing... treated only at their
// interface"). A concrete default is provided here so the repo runs
// end-to-end, but nothing in the core simulation depends on this particular
// implementation -- only on the Store interface.
type Store interface {
	Save(w *World, path string) error
	Load(path string) (*World, error)
}

// sidecar is the JSON metadata file written alongside the gzip'd block
// array, per spec.md section 6.
type sidecar struct {
	Xs, Ys, Zs int
	Weather    Weather
	Rules      Rules
	PlayerData map[string]*PlayerData
	Checksum   uint64 // xxhash of the uncompressed block array
}

// GzipJSONStore is the default Store: a JSON sidecar (dimensions, weather,
// rules, player data, and an xxhash checksum of the block array) plus a
// gzip'd companion file holding the raw block array, matching the "gzipped
// block array + metadata sidecar" shape spec.md section 1 describes.
type GzipJSONStore struct{}

func (GzipJSONStore) Save(w *World, path string) error {
	side := sidecar{
		Xs: w.Xs, Ys: w.Ys, Zs: w.Zs,
		Weather:    w.Weather,
		Rules:      w.Rules,
		PlayerData: w.PlayerData,
		Checksum:   xxhash.Sum64(w.blocks),
	}
	meta, err := json.Marshal(side)
	if err != nil {
		return fmt.Errorf("world: marshal sidecar: %w", err)
	}
	if err := os.WriteFile(path+".json", meta, 0o644); err != nil {
		return fmt.Errorf("world: write sidecar: %w", err)
	}

	var buf bytes.Buffer
	gz, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return fmt.Errorf("world: new gzip writer: %w", err)
	}
	if _, err := gz.Write(w.blocks); err != nil {
		return fmt.Errorf("world: gzip block array: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("world: close gzip writer: %w", err)
	}
	if err := os.WriteFile(path+".blocks.gz", buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("world: write block array: %w", err)
	}
	return nil
}

func (GzipJSONStore) Load(path string) (*World, error) {
	meta, err := os.ReadFile(path + ".json")
	if err != nil {
		return nil, fmt.Errorf("world: read sidecar: %w", err)
	}
	var side sidecar
	if err := json.Unmarshal(meta, &side); err != nil {
		return nil, fmt.Errorf("world: unmarshal sidecar: %w", err)
	}

	raw, err := os.ReadFile(path + ".blocks.gz")
	if err != nil {
		return nil, fmt.Errorf("world: read block array: %w", err)
	}
	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("world: new gzip reader: %w", err)
	}
	defer gz.Close()
	blocks, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("world: ungzip block array: %w", err)
	}
	if xxhash.Sum64(blocks) != side.Checksum {
		return nil, fmt.Errorf("world: block array checksum mismatch, save may be truncated")
	}

	w, err := New(side.Xs, side.Ys, side.Zs, blocks)
	if err != nil {
		return nil, err
	}
	w.Weather = side.Weather
	w.Rules = side.Rules
	if side.PlayerData != nil {
		w.PlayerData = side.PlayerData
	}

	// Pre-seed awaitingUpdate with every index whose block needs an update
	// on place, so simulation (fluid spreading in particular) resumes
	// correctly after a reload, per spec.md section 6.
	for i, id := range w.blocks {
		if info := block.Get(id); info != nil && info.NeedsUpdateOnPlace {
			w.ScheduleAwaitingUpdate(i)
		}
	}
	return w, nil
}
