package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tx2pack/tx2pack/errs"
	"github.com/tx2pack/tx2pack/reader"
	"github.com/tx2pack/tx2pack/snapshot"
	"github.com/tx2pack/tx2pack/writer"
)

const envelopeExt = ".tx2pack"
const metaExt = ".meta.json"

// Store is a directory-backed collection of paired envelope + metadata
// sidecar files, one pair per snapshot id. The directory listing is the
// index; no separate index file is maintained.
type Store struct {
	dir string
}

// New opens (creating if necessary) a Store rooted at dir.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create store directory: %w", errs.ErrIO, err)
	}

	return &Store{dir: dir}, nil
}

func (s *Store) envelopePath(id string) string {
	return filepath.Join(s.dir, id+envelopeExt)
}

func (s *Store) metaPath(id string) string {
	return filepath.Join(s.dir, id+metaExt)
}

func atomicWriteFile(path string, data []byte) error {
	tmpPath := path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open temp file: %w", errs.ErrIO, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)

		return fmt.Errorf("%w: write temp file: %w", errs.ErrIO, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)

		return fmt.Errorf("%w: fsync temp file: %w", errs.ErrIO, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)

		return fmt.Errorf("%w: close temp file: %w", errs.ErrIO, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)

		return fmt.Errorf("%w: rename temp file: %w", errs.ErrIO, err)
	}

	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

// Save writes both the envelope and the metadata sidecar for meta.ID. The
// envelope is written first (via w, atomically); the sidecar is written
// and flushed into place only after the envelope succeeds, so a reader
// observing the sidecar is guaranteed to observe the envelope. If either
// write fails, any partial output is removed.
func (s *Store) Save(snap *snapshot.PackedSnapshot, meta SnapshotMetadata, w *writer.Writer) error {
	if meta.ID == "" {
		return fmt.Errorf("%w: metadata id must not be empty", errs.ErrInvalidFormat)
	}

	envPath := s.envelopePath(meta.ID)
	if err := w.WriteToFile(snap, envPath); err != nil {
		return err
	}

	data, err := marshalMetadata(meta)
	if err != nil {
		os.Remove(envPath)

		return err
	}

	if err := atomicWriteFile(s.metaPath(meta.ID), data); err != nil {
		os.Remove(envPath)

		return err
	}

	return nil
}

// Load reads both files for id and returns the decoded snapshot and its
// metadata. SnapshotNotFound if either file is missing.
func (s *Store) Load(id string, r *reader.Reader) (*snapshot.PackedSnapshot, SnapshotMetadata, error) {
	envPath := s.envelopePath(id)
	metaPath := s.metaPath(id)
	if !fileExists(envPath) || !fileExists(metaPath) {
		return nil, SnapshotMetadata{}, errs.NewSnapshotNotFound(id)
	}

	snap, err := r.ReadFromFile(envPath)
	if err != nil {
		return nil, SnapshotMetadata{}, err
	}

	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, SnapshotMetadata{}, fmt.Errorf("%w: read metadata: %w", errs.ErrIO, err)
	}

	meta, err := unmarshalMetadata(data)
	if err != nil {
		return nil, SnapshotMetadata{}, err
	}

	return snap, meta, nil
}

// LoadMetadata reads only the metadata sidecar for id, without decoding the
// envelope. SnapshotNotFound if either file is missing, matching Load's
// existence semantics.
func (s *Store) LoadMetadata(id string) (SnapshotMetadata, error) {
	envPath := s.envelopePath(id)
	metaPath := s.metaPath(id)
	if !fileExists(envPath) || !fileExists(metaPath) {
		return SnapshotMetadata{}, errs.NewSnapshotNotFound(id)
	}

	data, err := os.ReadFile(metaPath)
	if err != nil {
		return SnapshotMetadata{}, fmt.Errorf("%w: read metadata: %w", errs.ErrIO, err)
	}

	meta, err := unmarshalMetadata(data)
	if err != nil {
		return SnapshotMetadata{}, err
	}

	return meta, nil
}

// List enumerates snapshot ids present in the store, sorted by
// created_at ascending (ties broken by id).
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: list store directory: %w", errs.ErrIO, err)
	}

	type idTime struct {
		id        string
		createdAt int64
	}

	var items []idTime
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), envelopeExt) {
			continue
		}
		id := strings.TrimSuffix(e.Name(), envelopeExt)

		createdAt := int64(0)
		if data, err := os.ReadFile(s.metaPath(id)); err == nil {
			if meta, err := unmarshalMetadata(data); err == nil {
				createdAt = meta.CreatedAtUnix
			}
		}
		items = append(items, idTime{id: id, createdAt: createdAt})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].createdAt != items[j].createdAt {
			return items[i].createdAt < items[j].createdAt
		}

		return items[i].id < items[j].id
	})

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.id
	}

	return ids, nil
}

// Delete removes both files for id. SnapshotNotFound if neither exists;
// otherwise removes whichever is present.
func (s *Store) Delete(id string) error {
	envPath := s.envelopePath(id)
	metaPath := s.metaPath(id)

	envExists := fileExists(envPath)
	metaExists := fileExists(metaPath)
	if !envExists && !metaExists {
		return errs.NewSnapshotNotFound(id)
	}

	if envExists {
		if err := os.Remove(envPath); err != nil {
			return fmt.Errorf("%w: remove envelope: %w", errs.ErrIO, err)
		}
	}
	if metaExists {
		if err := os.Remove(metaPath); err != nil {
			return fmt.Errorf("%w: remove metadata: %w", errs.ErrIO, err)
		}
	}

	return nil
}
