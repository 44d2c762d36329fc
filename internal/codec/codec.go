// ABOUTME: Read-or-default codec for the protocol engine's record files
// ABOUTME: Any read failure (missing, truncated, corrupt) yields the type's documented default

package codec

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// ReadOrDefault opens and decodes the record at path. On any failure --
// missing file, truncated or corrupt content, shape mismatch -- it returns
// def() instead. This is a deliberate availability-over-strictness policy:
// the engine must always be able to start, even from a wiped cache file, at
// the cost of losing accumulated state.
func ReadOrDefault[T any](path string, def func() T) T {
	f, err := os.Open(path)
	if err != nil {
		return def()
	}
	defer f.Close()

	v := def()
	if err := msgpack.NewDecoder(f).Decode(&v); err != nil {
		return def()
	}
	return v
}

// Write encodes v to path via a temp file and rename, so a torn write can
// never leave a truncated record behind (the read side would silently
// discard it as corrupt).
func Write[T any](path string, v T) error {
	raw, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp record file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing record file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing record file: %w", err)
	}
	return nil
}
