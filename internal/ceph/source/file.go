package source

import (
	"context"
	"fmt"
	"os"

	"cephsafedisk/internal/ceph"
)

// File reads previously recorded `pg dump` and `osd dump` documents.
type File struct {
	PGDump  string
	OSDDump string
}

func (f File) Fetch(_ context.Context) (ceph.Snapshot, error) {
	pgDump, err := os.ReadFile(f.PGDump)
	if err != nil {
		return ceph.Snapshot{}, fmt.Errorf("read pg dump: %w", err)
	}
	osdDump, err := os.ReadFile(f.OSDDump)
	if err != nil {
		return ceph.Snapshot{}, fmt.Errorf("read osd dump: %w", err)
	}
	return ceph.DecodeSnapshot(pgDump, osdDump)
}
