package model

import "testing"

func TestTodoStatusNext_Cycles(t *testing.T) {
	cases := []struct {
		in   TodoStatus
		want TodoStatus
	}{
		{StatusPending, StatusInProgress},
		{StatusInProgress, StatusDone},
		{StatusDone, StatusPending},
		{TodoStatus("bogus"), StatusInProgress},
	}
	for _, c := range cases {
		if got := c.in.Next(); got != c.want {
			t.Fatalf("Next(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	// Three advances return to the starting point.
	st := StatusPending
	for i := 0; i < 3; i++ {
		st = st.Next()
	}
	if st != StatusPending {
		t.Fatalf("three advances from pending landed on %q", st)
	}
}

func TestPriorityRank_HighBeforeMediumBeforeLow(t *testing.T) {
	if !(PriorityHigh.Rank() < PriorityMedium.Rank() && PriorityMedium.Rank() < PriorityLow.Rank()) {
		t.Fatalf("priority ranks out of order: high=%d medium=%d low=%d",
			PriorityHigh.Rank(), PriorityMedium.Rank(), PriorityLow.Rank())
	}
	if TodoPriority("").Rank() != PriorityMedium.Rank() {
		t.Fatalf("empty priority should rank as medium")
	}
	if TodoPriority("urgent").Rank() != PriorityMedium.Rank() {
		t.Fatalf("unknown priority should rank as medium")
	}
}
