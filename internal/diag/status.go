// Package diag decides whether an OSD can be taken out of a Ceph cluster
// without losing redundancy. It works on a snapshot of placement groups and
// pools and never touches the cluster itself.
package diag

import (
	"encoding/json"

	"cephsafedisk/internal/check"
)

// Status is the removability of a single OSD or of the whole cluster.
// The numeric order is the severity order: Safe < Unknown < NonSafe.
type Status uint8

const (
	Safe Status = iota
	Unknown
	NonSafe
)

// statusCount sizes per-status tables such as NodeDiagnosis.PGs.
const statusCount = int(NonSafe) + 1

func (s Status) String() string {
	switch s {
	case Safe:
		return "Removable"
	case Unknown:
		return "Pending"
	case NonSafe:
		return "Not removable"
	default:
		check.Unreachablef("diag: invalid status %d", uint8(s))
		return "Not removable"
	}
}

// Max returns the worse of s and other.
func (s Status) Max(other Status) Status {
	if other > s {
		return other
	}
	return s
}

// Valid reports whether s is one of the declared statuses.
func (s Status) Valid() bool {
	return s <= NonSafe
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
