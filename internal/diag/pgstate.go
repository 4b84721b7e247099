package diag

import "strings"

// Verdict is the removal safety of one placement group, derived from its
// state label alone.
type Verdict uint8

const (
	NeverSafe Verdict = iota + 1
	Pending
	FullySafe
)

func (v Verdict) String() string {
	switch v {
	case NeverSafe:
		return "never_safe"
	case Pending:
		return "pending"
	case FullySafe:
		return "fully_safe"
	default:
		return "unknown_verdict"
	}
}

// Status maps a PG verdict onto the OSD status lattice.
func (v Verdict) Status() Status {
	switch v {
	case FullySafe:
		return Safe
	case NeverSafe:
		return NonSafe
	default:
		return Unknown
	}
}

// stateSeparator joins the flags of a compound PG state such as
// "active+clean+scrubbing".
const stateSeparator = "+"

// Policy table for Ceph PG state flags. Keep in sync with the states listed in
// ceph's doc/rados/operations/pg-states.rst when upgrading clusters.
var (
	// Data is at risk or unreachable if a replica goes away.
	neverSafeStates = map[string]struct{}{
		"down":             {},
		"incomplete":       {},
		"stale":            {},
		"degraded":         {},
		"undersized":       {},
		"inconsistent":     {},
		"peered":           {},
		"recovery_unfound": {},
		"backfill_unfound": {},
		"recovery_toofull": {},
		"backfill_toofull": {},
		"failed_repair":    {},
		"snaptrim_error":   {},
	}

	// The PG is moving between states; its health can't be judged yet.
	pendingStates = map[string]struct{}{
		"creating":        {},
		"activating":      {},
		"peering":         {},
		"recovering":      {},
		"recovery_wait":   {},
		"forced_recovery": {},
		"backfilling":     {},
		"backfill":        {},
		"backfill_wait":   {},
		"forced_backfill": {},
		"remapped":        {},
		"wait":            {},
		"laggy":           {},
		"repair":          {},
		"premerge":        {},
		"splitting":       {},
		"replay":          {},
		"unknown":         {},
	}

	// Background work that doesn't affect redundancy.
	healthyStates = map[string]struct{}{
		"active":        {},
		"clean":         {},
		"scrubbing":     {},
		"deep":          {},
		"snaptrim":      {},
		"snaptrim_wait": {},
	}
)

// Classify maps a PG state label to its removal verdict.
//
// Any flag signalling loss or unreachability wins. A PG is FullySafe only when
// it is both active and clean and carries nothing but healthy flags. Anything
// else, unrecognized flags included, is Pending.
func Classify(state string) Verdict {
	var (
		active, clean bool
		unsure        bool
		seen          bool
	)
	for _, raw := range strings.Split(state, stateSeparator) {
		flag := strings.ToLower(strings.TrimSpace(raw))
		if flag == "" {
			continue
		}
		seen = true

		if _, ok := neverSafeStates[flag]; ok {
			return NeverSafe
		}
		if _, ok := pendingStates[flag]; ok {
			unsure = true
			continue
		}
		if _, ok := healthyStates[flag]; !ok {
			unsure = true
			continue
		}
		switch flag {
		case "active":
			active = true
		case "clean":
			clean = true
		}
	}

	if !seen || unsure || !active || !clean {
		return Pending
	}
	return FullySafe
}
