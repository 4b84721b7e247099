// Package ceph holds the subset of ceph's JSON dumps that removability
// decisions need, and turns them into diag inputs.
package ceph

import (
	"cephsafedisk/internal/diag"
)

// PGMap is the output of `ceph pg dump -f json`. Jewel and older put pg_stats
// at the top level; Luminous and later nest them under pg_map.
type PGMap struct {
	Version int        `json:"version"`
	Stamp   string     `json:"stamp"`
	PGStats []PGStats  `json:"pg_stats"`
	Nested  *PGMapBody `json:"pg_map,omitempty"`
}

// PGMapBody is the pg_map object of Luminous and later dumps.
type PGMapBody struct {
	Version int       `json:"version"`
	Stamp   string    `json:"stamp"`
	PGStats []PGStats `json:"pg_stats"`
}

// PGStats is one placement group row. See src/mon/PGMap.h in ceph.
type PGStats struct {
	PGID   string `json:"pgid"`
	State  string `json:"state"`
	Acting []int  `json:"acting"`
	Up     []int  `json:"up"`
}

// Stats returns the PG rows regardless of dump layout.
func (m *PGMap) Stats() []PGStats {
	if m.Nested != nil && m.Nested.PGStats != nil {
		return m.Nested.PGStats
	}
	return m.PGStats
}

// SnapshotStamp returns the time ceph reported for the dump.
func (m *PGMap) SnapshotStamp() string {
	if m.Nested != nil && m.Nested.Stamp != "" {
		return m.Nested.Stamp
	}
	return m.Stamp
}

// PlacementGroups converts the dump to diag rows.
func (m *PGMap) PlacementGroups() []diag.PlacementGroup {
	stats := m.Stats()
	pgs := make([]diag.PlacementGroup, 0, len(stats))
	for _, s := range stats {
		pgs = append(pgs, diag.PlacementGroup{
			ID:     s.PGID,
			State:  s.State,
			Acting: s.Acting,
			Up:     s.Up,
		})
	}
	return pgs
}
