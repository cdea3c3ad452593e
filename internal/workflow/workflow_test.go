package workflow

import (
	"errors"
	"testing"
)

var table = Table{
	"new":       {"read": true, "spam": true},
	"read":      {"responded": true, "spam": true},
	"responded": {"resolved": true, "spam": true},
	"resolved":  {},
	"spam":      {},
}

func TestCan_LegalAndIllegal(t *testing.T) {
	if !table.Can("new", "read") {
		t.Fatalf("expected new -> read to be legal")
	}
	if table.Can("new", "resolved") {
		t.Fatalf("expected new -> resolved to be illegal")
	}
	if table.Can("spam", "new") {
		t.Fatalf("expected spam to be absorbing")
	}
}

func TestCan_SelfLoopIsNoOp(t *testing.T) {
	if !table.Can("read", "read") {
		t.Fatalf("expected re-asserting current status to be permitted")
	}
	if !table.Can("resolved", "resolved") {
		t.Fatalf("expected terminal self-loop to be permitted")
	}
	if table.Can("bogus", "bogus") {
		t.Fatalf("expected unknown status self-loop to be rejected")
	}
}

func TestCheck_TypedError(t *testing.T) {
	err := table.Check("resolved", "new")
	if err == nil {
		t.Fatalf("expected error")
	}
	var ite *InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected InvalidTransitionError, got %T", err)
	}
	if ite.From != "resolved" || ite.To != "new" {
		t.Fatalf("unexpected error fields: %+v", ite)
	}
}

func TestTerminal(t *testing.T) {
	if !table.Terminal("spam") || !table.Terminal("resolved") {
		t.Fatalf("expected spam and resolved to be terminal")
	}
	if table.Terminal("new") {
		t.Fatalf("expected new to be non-terminal")
	}
}
