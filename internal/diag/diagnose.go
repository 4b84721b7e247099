package diag

import (
	"context"
	"slices"

	"cephsafedisk/internal/check"

	"golang.org/x/sync/errgroup"
)

// NodeDiagnosis is the removability of one OSD: the worst status of any PG it
// is acting for, plus how many of its PGs landed on each status.
type NodeDiagnosis struct {
	OSD    int
	Status Status
	PGs    [statusCount]int
}

// PGCount returns the number of PGs on this OSD that classified as s.
func (n NodeDiagnosis) PGCount(s Status) int {
	if !s.Valid() {
		return 0
	}
	return n.PGs[s]
}

func (n *NodeDiagnosis) observe(s Status) {
	check.Assertf(s.Valid(), "diag: observe invalid status %d", uint8(s))
	n.Status = n.Status.Max(s)
	n.PGs[s]++
}

func (n *NodeDiagnosis) merge(other *NodeDiagnosis) {
	n.Status = n.Status.Max(other.Status)
	for i := range n.PGs {
		n.PGs[i] += other.PGs[i]
	}
}

// ClusterDiagnosis holds one entry per OSD that appears in any acting set,
// ordered by OSD id.
type ClusterDiagnosis struct {
	Nodes []NodeDiagnosis
}

// Status reduces the diagnosis to a single cluster status. See Reduce.
func (d ClusterDiagnosis) Status() Status {
	return Reduce(d)
}

// Node returns the diagnosis of a single OSD.
func (d ClusterDiagnosis) Node(osd int) (NodeDiagnosis, bool) {
	i, ok := slices.BinarySearchFunc(d.Nodes, osd, func(n NodeDiagnosis, id int) int {
		return n.OSD - id
	})
	if !ok {
		return NodeDiagnosis{}, false
	}
	return d.Nodes[i], true
}

// accumulator tracks the running worst status per OSD.
type accumulator map[int]*NodeDiagnosis

func (a accumulator) add(pg PlacementGroup) {
	status := Classify(pg.State).Status()
	for i, osd := range pg.Acting {
		// An OSD listed twice in one acting set still holds a single replica.
		if slices.Contains(pg.Acting[:i], osd) {
			continue
		}
		node, ok := a[osd]
		if !ok {
			node = &NodeDiagnosis{OSD: osd}
			a[osd] = node
		}
		node.observe(status)
	}
}

func (a accumulator) merge(other accumulator) {
	for osd, theirs := range other {
		ours, ok := a[osd]
		if !ok {
			a[osd] = theirs
			continue
		}
		ours.merge(theirs)
	}
}

func (a accumulator) diagnosis() ClusterDiagnosis {
	nodes := make([]NodeDiagnosis, 0, len(a))
	for _, node := range a {
		nodes = append(nodes, *node)
	}
	slices.SortFunc(nodes, func(x, y NodeDiagnosis) int { return x.OSD - y.OSD })
	return ClusterDiagnosis{Nodes: nodes}
}

// Diagnose classifies every PG and folds its status into each OSD of its
// acting set. An OSD ends up with the worst status of any PG it serves, since
// it can't leave while even one of those PGs depends on it.
func Diagnose(pgs []PlacementGroup) ClusterDiagnosis {
	acc := make(accumulator)
	for _, pg := range pgs {
		acc.add(pg)
	}
	return acc.diagnosis()
}

// DiagnoseConcurrent produces the same result as Diagnose, splitting the PGs
// across workers that each keep a private accumulator and merging at the end.
func DiagnoseConcurrent(ctx context.Context, pgs []PlacementGroup, workers int) (ClusterDiagnosis, error) {
	if workers <= 1 || len(pgs) < 2 {
		if err := ctx.Err(); err != nil {
			return ClusterDiagnosis{}, err
		}
		return Diagnose(pgs), nil
	}
	workers = min(workers, len(pgs))

	parts := make([]accumulator, workers)
	chunk := (len(pgs) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		lo := w * chunk
		hi := min(lo+chunk, len(pgs))
		if lo >= hi {
			parts[w] = accumulator{}
			continue
		}
		g.Go(func() error {
			acc := make(accumulator)
			for _, pg := range pgs[lo:hi] {
				if err := gctx.Err(); err != nil {
					return err
				}
				acc.add(pg)
			}
			parts[w] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ClusterDiagnosis{}, err
	}

	merged := make(accumulator)
	for _, part := range parts {
		merged.merge(part)
	}
	return merged.diagnosis(), nil
}
