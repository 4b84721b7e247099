package diag

// QuickCheck is a cheap pre-check: it reports true when at least one PG has an
// up set larger than some pool's min_size. PGs are not matched to the pool that
// owns them, so the answer is approximate. Use Diagnose for a per-OSD answer.
func QuickCheck(pgs []PlacementGroup, pools []Pool) bool {
	for _, pg := range pgs {
		for _, pool := range pools {
			if len(pg.Up) >= pool.MinSize+1 {
				return true
			}
		}
	}
	return false
}

// QuickCheckByPool matches every PG to its own pool and reports true only if
// each of them can lose one up OSD and stay at or above min_size. A PG whose
// pool is unknown makes the whole check fail.
func QuickCheckByPool(pgs []PlacementGroup, pools []Pool) bool {
	if len(pgs) == 0 {
		return false
	}

	minSize := make(map[int]int, len(pools))
	for _, pool := range pools {
		minSize[pool.ID] = pool.MinSize
	}

	for _, pg := range pgs {
		poolID, ok := pg.PoolID()
		if !ok {
			return false
		}
		need, ok := minSize[poolID]
		if !ok {
			return false
		}
		if len(pg.Up) < need+1 {
			return false
		}
	}
	return true
}
