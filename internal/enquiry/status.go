package enquiry

import (
	"fmt"

	"travelapi/internal/workflow"
)

// Package-enquiry pipeline. Rejected and cancelled are reachable from every
// non-terminal stage; completed, rejected and cancelled are terminal.
const (
	StatusNew       workflow.Status = "new"
	StatusPending   workflow.Status = "pending"
	StatusContacted workflow.Status = "contacted"
	StatusQuoted    workflow.Status = "quoted"
	StatusConfirmed workflow.Status = "confirmed"
	StatusCompleted workflow.Status = "completed"
	StatusRejected  workflow.Status = "rejected"
	StatusCancelled workflow.Status = "cancelled"
)

var Transitions = workflow.Table{
	StatusNew:       {StatusPending: true, StatusRejected: true, StatusCancelled: true},
	StatusPending:   {StatusContacted: true, StatusRejected: true, StatusCancelled: true},
	StatusContacted: {StatusQuoted: true, StatusRejected: true, StatusCancelled: true},
	StatusQuoted:    {StatusConfirmed: true, StatusRejected: true, StatusCancelled: true},
	StatusConfirmed: {StatusCompleted: true, StatusRejected: true, StatusCancelled: true},
	StatusCompleted: {},
	StatusRejected:  {},
	StatusCancelled: {},
}

func ParseStatus(s string) (workflow.Status, error) {
	switch workflow.Status(s) {
	case StatusNew, StatusPending, StatusContacted, StatusQuoted,
		StatusConfirmed, StatusCompleted, StatusRejected, StatusCancelled:
		return workflow.Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}
