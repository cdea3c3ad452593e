package review

import (
	"fmt"

	"travelapi/internal/workflow"
)

// Moderation lifecycle shared by reviews and testimonials. A moderated item
// can flip between approved and rejected, but never returns to pending.
const (
	StatusPending  workflow.Status = "pending"
	StatusApproved workflow.Status = "approved"
	StatusRejected workflow.Status = "rejected"
)

var Transitions = workflow.Table{
	StatusPending:  {StatusApproved: true, StatusRejected: true},
	StatusApproved: {StatusRejected: true},
	StatusRejected: {StatusApproved: true},
}

func ParseStatus(s string) (workflow.Status, error) {
	switch workflow.Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return workflow.Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}
