package enquiry

import (
	"testing"

	"travelapi/internal/workflow"
)

func TestTransitions_Pipeline(t *testing.T) {
	chain := []workflow.Status{StatusNew, StatusPending, StatusContacted, StatusQuoted, StatusConfirmed, StatusCompleted}
	for i := 0; i < len(chain)-1; i++ {
		if !Transitions.Can(chain[i], chain[i+1]) {
			t.Fatalf("expected %s -> %s to be legal", chain[i], chain[i+1])
		}
	}
}

func TestTransitions_RejectCancelFromAnyNonTerminal(t *testing.T) {
	active := []workflow.Status{StatusNew, StatusPending, StatusContacted, StatusQuoted, StatusConfirmed}
	for _, from := range active {
		if !Transitions.Can(from, StatusRejected) {
			t.Fatalf("expected %s -> rejected to be legal", from)
		}
		if !Transitions.Can(from, StatusCancelled) {
			t.Fatalf("expected %s -> cancelled to be legal", from)
		}
	}
}

func TestTransitions_TerminalStates(t *testing.T) {
	for _, s := range []workflow.Status{StatusCompleted, StatusRejected, StatusCancelled} {
		if !Transitions.Terminal(s) {
			t.Fatalf("expected %s to be terminal", s)
		}
	}
	if Transitions.Can(StatusCompleted, StatusNew) {
		t.Fatalf("expected completed -> new to be illegal")
	}
}

func TestTransitions_NoStageSkipping(t *testing.T) {
	if Transitions.Can(StatusNew, StatusQuoted) {
		t.Fatalf("expected new -> quoted to be illegal")
	}
	if Transitions.Can(StatusPending, StatusConfirmed) {
		t.Fatalf("expected pending -> confirmed to be illegal")
	}
}
