package diag

// Review groups OSD ids by their own status for machine-readable output.
type Review struct {
	Removable    []int `json:"Removable"`
	NotRemovable []int `json:"Not Removable"`
	Pending      []int `json:"Pending"`
}

// NewReview buckets every OSD of d exactly once. Buckets are never nil so
// they encode as [] rather than null.
func NewReview(d ClusterDiagnosis) Review {
	r := Review{
		Removable:    []int{},
		NotRemovable: []int{},
		Pending:      []int{},
	}
	for _, node := range d.Nodes {
		switch node.Status {
		case Safe:
			r.Removable = append(r.Removable, node.OSD)
		case Unknown:
			r.Pending = append(r.Pending, node.OSD)
		default:
			r.NotRemovable = append(r.NotRemovable, node.OSD)
		}
	}
	return r
}
