// Package checkpoint implements CheckpointManager: named, parent-linked
// checkpoints over a store-shaped directory, with an in-memory index
// rebuilt by scanning sidecar metadata on construction.
package checkpoint

import (
	"fmt"
	"sort"

	"github.com/tx2pack/tx2pack/errs"
	"github.com/tx2pack/tx2pack/reader"
	"github.com/tx2pack/tx2pack/snapshot"
	"github.com/tx2pack/tx2pack/store"
	"github.com/tx2pack/tx2pack/writer"
)

// Checkpoint is a named point-in-time snapshot with an optional parent,
// forming a forest of checkpoint chains.
type Checkpoint struct {
	ID            string
	ParentID      string // empty when this is a root checkpoint
	HasParent     bool
	CreatedAtUnix int64
}

type indexEntry struct {
	checkpoint Checkpoint
}

// Manager owns a directory of checkpoints backed by a store.Store, plus an
// in-memory id -> (parent_id?, created_at) index.
type Manager struct {
	s     *store.Store
	index map[string]indexEntry
}

// New opens dir as a checkpoint directory, rebuilding the index by
// scanning every sidecar metadata file already present.
func New(dir string) (*Manager, error) {
	s, err := store.New(dir)
	if err != nil {
		return nil, err
	}

	m := &Manager{s: s, index: make(map[string]indexEntry)}
	if err := m.rebuildIndex(); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Manager) rebuildIndex() error {
	ids, err := m.s.List()
	if err != nil {
		return err
	}

	for _, id := range ids {
		meta, err := m.s.LoadMetadata(id)
		if err != nil {
			return err
		}

		parentID := meta.CustomFields["parent_id"]
		m.index[id] = indexEntry{checkpoint: Checkpoint{
			ID:            id,
			ParentID:      parentID,
			HasParent:     parentID != "",
			CreatedAtUnix: meta.CreatedAtUnix,
		}}
	}

	return nil
}

// CreateCheckpoint persists snap under id with an optional parent. Rejects
// a duplicate id or a parent that does not exist, both as
// InvalidCheckpoint.
func (m *Manager) CreateCheckpoint(id string, snap *snapshot.PackedSnapshot, parentID string, createdAtUnix int64) error {
	if _, exists := m.index[id]; exists {
		return errs.NewInvalidCheckpoint(fmt.Sprintf("checkpoint %q already exists", id))
	}
	if parentID != "" {
		if _, exists := m.index[parentID]; !exists {
			return errs.NewInvalidCheckpoint(fmt.Sprintf("parent %q does not exist", parentID))
		}
	}

	meta := store.SnapshotMetadata{ID: id, CreatedAtUnix: createdAtUnix, CustomFields: map[string]string{}}
	if parentID != "" {
		meta.CustomFields["parent_id"] = parentID
	}

	w, err := writer.New()
	if err != nil {
		return err
	}

	if err := m.s.Save(snap, meta, w); err != nil {
		return err
	}

	m.index[id] = indexEntry{checkpoint: Checkpoint{
		ID:            id,
		ParentID:      parentID,
		HasParent:     parentID != "",
		CreatedAtUnix: createdAtUnix,
	}}

	return nil
}

// LoadCheckpoint reads back the envelope and checkpoint record for id.
func (m *Manager) LoadCheckpoint(id string) (*snapshot.PackedSnapshot, Checkpoint, error) {
	entry, exists := m.index[id]
	if !exists {
		return nil, Checkpoint{}, errs.NewSnapshotNotFound(id)
	}

	r, err := reader.New()
	if err != nil {
		return nil, Checkpoint{}, err
	}

	snap, _, err := m.s.Load(id, r)
	if err != nil {
		return nil, Checkpoint{}, err
	}

	return snap, entry.checkpoint, nil
}

// DeleteCheckpoint removes id's files. Children that reference id as their
// parent are left as orphans, since history is preserved read-only.
func (m *Manager) DeleteCheckpoint(id string) error {
	if err := m.s.Delete(id); err != nil {
		return err
	}
	delete(m.index, id)

	return nil
}

// ListCheckpoints returns every checkpoint sorted ascending by created_at
// (ties broken by id, matching store.List's ordering).
func (m *Manager) ListCheckpoints() []Checkpoint {
	out := make([]Checkpoint, 0, len(m.index))
	for _, e := range m.index {
		out = append(out, e.checkpoint)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAtUnix != out[j].CreatedAtUnix {
			return out[i].CreatedAtUnix < out[j].CreatedAtUnix
		}

		return out[i].ID < out[j].ID
	})

	return out
}

// Children returns the ids of every checkpoint whose parent is id: the
// inverse of Chain's upward traversal.
func (m *Manager) Children(id string) []string {
	var children []string
	for cid, e := range m.index {
		if e.checkpoint.HasParent && e.checkpoint.ParentID == id {
			children = append(children, cid)
		}
	}
	sort.Strings(children)

	return children
}

// Chain walks parent_id links from id to the root, newest first. A cycle
// (which indicates corruption) fails with InvalidCheckpoint rather than
// looping forever.
func (m *Manager) Chain(id string) ([]string, error) {
	chain := make([]string, 0, len(m.index))
	seen := make(map[string]struct{})

	cur := id
	for {
		entry, exists := m.index[cur]
		if !exists {
			return nil, errs.NewSnapshotNotFound(cur)
		}
		if _, looped := seen[cur]; looped {
			return nil, errs.NewInvalidCheckpoint(fmt.Sprintf("cycle detected at %q", cur))
		}
		seen[cur] = struct{}{}
		chain = append(chain, cur)

		if !entry.checkpoint.HasParent {
			break
		}
		cur = entry.checkpoint.ParentID
	}

	return chain, nil
}

// PruneOldCheckpoints retains the keep most recent checkpoints by
// created_at, deleting the rest. keep == 0 deletes everything.
func (m *Manager) PruneOldCheckpoints(keep uint32) error {
	all := m.ListCheckpoints()
	if uint32(len(all)) <= keep {
		return nil
	}

	toDelete := all[:uint32(len(all))-keep]
	for _, cp := range toDelete {
		if err := m.DeleteCheckpoint(cp.ID); err != nil {
			return err
		}
	}

	return nil
}
