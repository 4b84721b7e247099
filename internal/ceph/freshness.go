package ceph

import (
	"strings"
	"time"
)

// DefaultMaxAge is how old a snapshot may be before it is reported stale.
const DefaultMaxAge = 15 * time.Minute

// stampLayout is the format of the pg dump "stamp" field. Ceph writes it in
// the monitor's local time without a zone.
const stampLayout = "2006-01-02 15:04:05.999999"

type FreshnessPhase uint8

const (
	FreshnessUnknown FreshnessPhase = iota + 1
	FreshnessFresh
	FreshnessStale
)

func (p FreshnessPhase) String() string {
	switch p {
	case FreshnessUnknown:
		return "unknown"
	case FreshnessFresh:
		return "fresh"
	case FreshnessStale:
		return "stale"
	default:
		return "unknown_phase"
	}
}

// Freshness reports how old the snapshot's pg dump was at now. A missing or
// unparsable stamp, or a maxAge of zero, yields FreshnessUnknown. Stamps from
// the future count as age zero.
func (s Snapshot) Freshness(now time.Time, maxAge time.Duration) (FreshnessPhase, time.Duration) {
	stamp := strings.TrimSpace(s.PGMap.SnapshotStamp())
	if stamp == "" || maxAge <= 0 {
		return FreshnessUnknown, 0
	}
	taken, err := time.ParseInLocation(stampLayout, stamp, now.Location())
	if err != nil {
		return FreshnessUnknown, 0
	}

	age := now.Sub(taken)
	if age < 0 {
		age = 0
	}
	if age > maxAge {
		return FreshnessStale, age
	}
	return FreshnessFresh, age
}
