package contact

import (
	"fmt"

	"travelapi/internal/workflow"
)

// Contact inquiry lifecycle. Spam is absorbing: once flagged, an inquiry
// never re-enters the active chain.
const (
	StatusNew       workflow.Status = "new"
	StatusRead      workflow.Status = "read"
	StatusResponded workflow.Status = "responded"
	StatusResolved  workflow.Status = "resolved"
	StatusSpam      workflow.Status = "spam"
)

var Transitions = workflow.Table{
	StatusNew:       {StatusRead: true, StatusSpam: true},
	StatusRead:      {StatusResponded: true, StatusSpam: true},
	StatusResponded: {StatusResolved: true, StatusSpam: true},
	StatusResolved:  {StatusSpam: true},
	StatusSpam:      {},
}

func ParseStatus(s string) (workflow.Status, error) {
	switch workflow.Status(s) {
	case StatusNew, StatusRead, StatusResponded, StatusResolved, StatusSpam:
		return workflow.Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}
