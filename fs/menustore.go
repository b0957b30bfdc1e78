// Package fs provides file-based storage for menu data.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/menuboard"
)

// Ensure MenuStore implements menuboard.MenuStore at compile time.
var _ menuboard.MenuStore = (*MenuStore)(nil)

// MenuStore keeps each brand's menu as an indented JSON array in dir,
// named after Brand.FileName. Saves are atomic: records are written to a
// temporary file in the same directory which then replaces the target.
type MenuStore struct {
	dir string
}

// NewMenuStore creates a MenuStore rooted at dir.
func NewMenuStore(dir string) *MenuStore {
	return &MenuStore{dir: dir}
}

// Path returns the file holding brand's menu.
func (s *MenuStore) Path(brand menuboard.Brand) string {
	return filepath.Join(s.dir, brand.FileName())
}

func (s *MenuStore) Load(ctx context.Context, brand menuboard.Brand) ([]*menuboard.MenuRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.Path(brand)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, menuboard.Errorf(menuboard.ENOTFOUND, "menu file %s not found", path)
	} else if err != nil {
		return nil, err
	}

	var records []*menuboard.MenuRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, menuboard.Errorf(menuboard.EINVALID, "menu file %s is malformed: %v", path, err)
	}

	out := records[:0]
	for _, r := range records {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MenuStore) Save(ctx context.Context, brand menuboard.Brand, records []*menuboard.MenuRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	if records == nil {
		records = []*menuboard.MenuRecord{}
	}

	data, err := EncodeRecords(records)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	return writeFileAtomic(s.Path(brand), data)
}

// EncodeRecords encodes records with four-space indentation and without
// escaping non-ASCII or HTML characters.
func EncodeRecords(records []*menuboard.MenuRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
