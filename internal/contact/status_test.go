package contact

import "testing"

func TestTransitions_HappyPath(t *testing.T) {
	chain := []struct{ from, to string }{
		{"new", "read"},
		{"read", "responded"},
		{"responded", "resolved"},
	}
	for _, c := range chain {
		from, _ := ParseStatus(c.from)
		to, _ := ParseStatus(c.to)
		if !Transitions.Can(from, to) {
			t.Fatalf("expected %s -> %s to be legal", c.from, c.to)
		}
	}
}

func TestTransitions_SpamAbsorbing(t *testing.T) {
	for _, from := range []string{"new", "read", "responded", "resolved"} {
		s, _ := ParseStatus(from)
		if !Transitions.Can(s, StatusSpam) {
			t.Fatalf("expected %s -> spam to be legal", from)
		}
	}
	if Transitions.Can(StatusSpam, StatusNew) {
		t.Fatalf("expected spam to be terminal")
	}
}

func TestTransitions_NoSkipping(t *testing.T) {
	if Transitions.Can(StatusNew, StatusResolved) {
		t.Fatalf("expected new -> resolved to be illegal")
	}
	if Transitions.Can(StatusResolved, StatusNew) {
		t.Fatalf("expected resolved -> new to be illegal")
	}
}

func TestParseStatus_Unknown(t *testing.T) {
	if _, err := ParseStatus("archived"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}
