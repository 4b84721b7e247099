package diag

import "testing"

func TestClassify(t *testing.T) {
	testCases := []struct {
		state string
		want  Verdict
	}{
		{state: "active+clean", want: FullySafe},
		{state: "active+clean+scrubbing", want: FullySafe},
		{state: "active+clean+scrubbing+deep", want: FullySafe},
		{state: "active+clean+snaptrim_wait", want: FullySafe},
		{state: "clean+active", want: FullySafe},
		{state: " Active + Clean ", want: FullySafe},

		{state: "peering", want: Pending},
		{state: "active+recovering", want: Pending},
		{state: "active+recovery_wait", want: Pending},
		{state: "active+remapped+backfilling", want: Pending},
		{state: "active+remapped+backfill_wait", want: Pending},
		{state: "creating", want: Pending},
		{state: "unknown", want: Pending},
		{state: "active", want: Pending},
		{state: "clean", want: Pending},
		{state: "active+clean+frobnicating", want: Pending},
		{state: "sideways", want: Pending},
		{state: "", want: Pending},
		{state: "+", want: Pending},

		{state: "degraded+undersized", want: NeverSafe},
		{state: "active+undersized+degraded", want: NeverSafe},
		{state: "incomplete", want: NeverSafe},
		{state: "down+peering", want: NeverSafe},
		{state: "stale+active+clean", want: NeverSafe},
		{state: "active+clean+inconsistent", want: NeverSafe},
		{state: "active+recovery_unfound+degraded", want: NeverSafe},
		{state: "undersized+peered", want: NeverSafe},
		{state: "active+remapped+backfill_toofull", want: NeverSafe},
		{state: "frobnicating+down", want: NeverSafe},
	}

	for _, tc := range testCases {
		t.Run(tc.state, func(t *testing.T) {
			if got := Classify(tc.state); got != tc.want {
				t.Fatalf("Classify(%q) = %v, want %v", tc.state, got, tc.want)
			}
		})
	}
}

func TestClassifyUnrecognizedNeverFullySafe(t *testing.T) {
	flags := []string{"active", "clean", "scrubbing", "deep", "bogus", "new_in_squid", "42", "ACTIVE"}
	for _, a := range flags {
		for _, b := range flags {
			for _, c := range []string{"mystery", "zzz", "clean_ish"} {
				state := a + "+" + b + "+" + c
				if got := Classify(state); got == FullySafe {
					t.Fatalf("Classify(%q) = FullySafe with unrecognized flag %q", state, c)
				}
			}
		}
	}
}

func TestClassifyPolicyTablesDisjoint(t *testing.T) {
	for flag := range neverSafeStates {
		if _, ok := pendingStates[flag]; ok {
			t.Fatalf("flag %q is both never-safe and pending", flag)
		}
		if _, ok := healthyStates[flag]; ok {
			t.Fatalf("flag %q is both never-safe and healthy", flag)
		}
	}
	for flag := range pendingStates {
		if _, ok := healthyStates[flag]; ok {
			t.Fatalf("flag %q is both pending and healthy", flag)
		}
	}
}
