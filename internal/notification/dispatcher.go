package notification

import "context"

const (
	TemplateLeaveRequest  = "leave_request"
	TemplateLeaveApproval = "leave_approval"
)

// Message is a templated notification addressed to a single recipient.
// Data keys must match the fields referenced by the template.
type Message struct {
	To       string
	Template string
	Data     map[string]any
}

// Dispatcher delivers notifications best-effort. Callers log failures and
// move on; a failed delivery never affects a committed leave transition.
//
//go:generate mockgen -source=dispatcher.go -destination=mock/dispatcher_mock.go -package=mock
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) error
}

type noopDispatcher struct{}

func (noopDispatcher) Dispatch(context.Context, Message) error { return nil }

func NewNoopDispatcher() Dispatcher {
	return noopDispatcher{}
}
