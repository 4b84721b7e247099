package diag

// Reduce folds per-OSD statuses into one cluster status: the worst status of
// any OSD. Every node is visited, so a NonSafe OSD late in the list is never
// hidden behind an earlier Unknown one.
//
// A diagnosis with no OSDs is NonSafe: without evidence nothing is removable.
func Reduce(d ClusterDiagnosis) Status {
	if len(d.Nodes) == 0 {
		return NonSafe
	}
	status := Safe
	for _, node := range d.Nodes {
		status = status.Max(node.Status)
	}
	return status
}
