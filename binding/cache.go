package binding

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
)

// Key derives the cache key for one sdef document: the hex sha256 of the raw
// document bytes, so any edit to the dictionary invalidates the cached model.
func Key(sdefBytes []byte) string {
	sum := sha256.Sum256(sdefBytes)
	return hex.EncodeToString(sum[:])
}

// Save writes the model to dir/<key>.cbor, creating dir when needed.
func Save(dir, key string, m *Model) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	data, err := cbor.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode binding model: %w", err)
	}
	if err := os.WriteFile(cachePath(dir, key), data, 0o644); err != nil {
		return fmt.Errorf("write binding model cache: %w", err)
	}
	return nil
}

// Load reads a previously cached model. The second return value is false
// when no entry exists for the key.
func Load(dir, key string) (*Model, bool, error) {
	data, err := os.ReadFile(cachePath(dir, key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read binding model cache: %w", err)
	}
	var m Model
	if err := cbor.Unmarshal(data, &m); err != nil {
		return nil, false, fmt.Errorf("decode binding model cache: %w", err)
	}
	m.reindex()
	return &m, true, nil
}

func cachePath(dir, key string) string {
	return filepath.Join(dir, key+".cbor")
}
