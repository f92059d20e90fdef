package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"case_cockpit_go/models"
)

// SnapshotFileName is the object key the remote copy lives under
const SnapshotFileName = "case-cockpit-backup.json"

// Snapshot is a full serialized copy of all cases and people, used for
// manual backup, restore and remote sync.
type Snapshot struct {
	ExportedAt time.Time       `json:"exported_at"`
	Cases      []models.Case   `json:"cases"`
	People     []models.Person `json:"people"`
}

// SnapshotStore is the remote object store the sync path talks to.
// Authentication and session management for it are out of scope here.
type SnapshotStore interface {
	// ListSnapshotFile returns a reference to the named snapshot object,
	// or "" if no such object exists
	ListSnapshotFile(ctx context.Context, name string) (string, error)
	// ReadSnapshotFile fetches the object content by reference
	ReadSnapshotFile(ctx context.Context, ref string) (string, error)
	// WriteSnapshotFile replaces (or creates) the named object and
	// returns its reference
	WriteSnapshotFile(ctx context.Context, name, content, existingRef string) (string, error)
}

// ExportSnapshot serializes the current local state. Pure read.
func ExportSnapshot(store *Store) Snapshot {
	return Snapshot{
		ExportedAt: time.Now(),
		Cases:      store.Cases(),
		People:     store.People(),
	}
}

// ExportSnapshotJSON returns the snapshot as pretty-printed JSON along
// with the suggested download filename.
func ExportSnapshotJSON(store *Store) ([]byte, string, error) {
	data, err := json.MarshalIndent(ExportSnapshot(store), "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	return data, SnapshotFileName, nil
}

// snapshotDocument mirrors Snapshot for import parsing; pointers
// distinguish an absent array from an empty one.
type snapshotDocument struct {
	ExportedAt *time.Time       `json:"exported_at"`
	Cases      *[]models.Case   `json:"cases"`
	People     *[]models.Person `json:"people"`
}

// ImportSnapshot replaces the local cases and people wholesale with the
// parsed document. A document without a cases array is rejected with
// ErrInvalidImportFormat and nothing is mutated. Import is destructive by
// design; merging belongs to the remote sync path.
func ImportSnapshot(store *Store, raw []byte) error {
	var doc snapshotDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImportFormat, err)
	}
	if doc.Cases == nil {
		return fmt.Errorf("%w: missing cases array", ErrInvalidImportFormat)
	}

	cases := *doc.Cases
	for i := range cases {
		cases[i].Status = models.NormalizeCaseStatus(cases[i].Status)
	}
	if err := store.SaveCases(cases); err != nil {
		return err
	}

	people := []models.Person{}
	if doc.People != nil {
		people = *doc.People
	}
	return store.SavePeople(people)
}

// MergeRemotePeople merges a fetched remote registry with the local one.
// Remote entries win for any identity key present on both sides (the
// remote copy is authoritative once fetched); local-only keys are carried
// forward unchanged. Merging a list with itself yields the same list.
func MergeRemotePeople(remote, local []models.Person) []models.Person {
	merged := make([]models.Person, 0, len(remote)+len(local))
	seen := make(map[string]bool, len(remote))

	for _, p := range remote {
		key := p.IdentityKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, p)
	}
	for _, p := range local {
		if seen[p.IdentityKey()] {
			continue
		}
		seen[p.IdentityKey()] = true
		merged = append(merged, p)
	}
	return merged
}

// SyncToRemote reads the remote snapshot (if any), merges its people with
// the local registry, persists the merged result locally and uploads the
// merged snapshot, replacing the remote copy entirely. A remote failure
// aborts with ErrRemoteUnavailable and never corrupts local state: the
// merge happens in memory, and local persistence is committed before the
// upload is attempted.
func SyncToRemote(ctx context.Context, store *Store, remote SnapshotStore) error {
	ref, err := remote.ListSnapshotFile(ctx, SnapshotFileName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	localPeople := store.People()
	merged := localPeople
	if ref != "" {
		content, err := remote.ReadSnapshotFile(ctx, ref)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
		}
		var remoteSnap snapshotDocument
		if err := json.Unmarshal([]byte(content), &remoteSnap); err != nil {
			// A corrupt remote copy is replaced rather than merged
			merged = localPeople
		} else if remoteSnap.People != nil {
			merged = MergeRemotePeople(*remoteSnap.People, localPeople)
		}
	}

	if err := store.SavePeople(merged); err != nil {
		return err
	}

	snap := Snapshot{
		ExportedAt: time.Now(),
		Cases:      store.Cases(),
		People:     merged,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	if _, err := remote.WriteSnapshotFile(ctx, SnapshotFileName, string(data), ref); err != nil {
		// Local state is already persisted; the upload can simply be retried
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	return nil
}
