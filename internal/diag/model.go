package diag

import (
	"strconv"
	"strings"
)

// PlacementGroup is one row of a PG map snapshot.
type PlacementGroup struct {
	ID     string
	State  string
	Acting []int
	Up     []int
}

// PoolID returns the pool a PG belongs to, parsed from its "<pool>.<seq>" id.
func (pg PlacementGroup) PoolID() (int, bool) {
	prefix, _, ok := strings.Cut(pg.ID, ".")
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Pool is one storage pool from the OSD map.
type Pool struct {
	ID      int
	Name    string
	Size    int
	MinSize int
}
