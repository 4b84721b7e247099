package ceph

import "cephsafedisk/internal/diag"

// OSDMap is the output of `ceph osd dump -f json`.
type OSDMap struct {
	Epoch int        `json:"epoch"`
	FSID  string     `json:"fsid"`
	Pools []PoolInfo `json:"pools"`
	OSDs  []OSDInfo  `json:"osds"`
}

type PoolInfo struct {
	Pool     int    `json:"pool"`
	PoolName string `json:"pool_name"`
	Size     int    `json:"size"`
	MinSize  int    `json:"min_size"`
}

// OSDInfo is one OSD's membership. Ceph encodes up and in as 0 or 1.
type OSDInfo struct {
	OSD int `json:"osd"`
	Up  int `json:"up"`
	In  int `json:"in"`
}

// Membership counts the OSDs the map lists, and how many are up and in.
func (m *OSDMap) Membership() (total, up, in int) {
	for _, o := range m.OSDs {
		if o.Up != 0 {
			up++
		}
		if o.In != 0 {
			in++
		}
	}
	return len(m.OSDs), up, in
}

// DiagPools converts the dump's pools to diag rows.
func (m *OSDMap) DiagPools() []diag.Pool {
	pools := make([]diag.Pool, 0, len(m.Pools))
	for _, p := range m.Pools {
		pools = append(pools, diag.Pool{
			ID:      p.Pool,
			Name:    p.PoolName,
			Size:    p.Size,
			MinSize: p.MinSize,
		})
	}
	return pools
}
