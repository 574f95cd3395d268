package notification

import (
	"go.uber.org/zap"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/realtime"
)

// The only two events the leave workflow pushes.
const (
	EventNewLeaveRequest   = "new-leave-request"
	EventLeaveStatusUpdate = "leave-status-update"
)

type NewLeaveRequestPayload struct {
	LeaveID       string `json:"leaveId"`
	RequesterName string `json:"requesterName"`
}

type LeaveStatusUpdatePayload struct {
	LeaveID string `json:"leaveId"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Notifier translates workflow events into realtime pushes. Delivery is
// best-effort: a failure is logged and swallowed, never returned, because
// the workflow transition has already committed by the time fan-out runs.
//
//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock
type Notifier interface {
	LeaveRequested(leaveID, requesterName string)
	LeaveDecided(requesterID, leaveID, status, message string)
}

type channelNotifier struct {
	channel realtime.Channel
	logger  *zap.Logger
}

func NewChannelNotifier(channel realtime.Channel, logger ...*zap.Logger) Notifier {
	l := zap.L().Named("notification")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification")
	}
	return &channelNotifier{channel: channel, logger: l}
}

/// LeaveRequested fans out to everyone who can decide the request: the
// admin and hr broadcast groups.
func (n *channelNotifier) LeaveRequested(leaveID, requesterName string) {
	payload := NewLeaveRequestPayload{
		LeaveID:       leaveID,
		RequesterName: requesterName,
	}

	for _, group := range []string{realtime.GroupAdmin, realtime.GroupHR} {
		if err := n.channel.EmitToGroup(group, EventNewLeaveRequest, payload); err != nil {
			n.logger.Warn("leave requested notification failed",
				zap.String("leave_id", leaveID),
				zap.String("group", group),
				zap.Error(err),
			)
		}
	}
}

// LeaveDecided notifies exactly the requester's own group.
func (n *channelNotifier) LeaveDecided(requesterID, leaveID, status, message string) {
	payload := LeaveStatusUpdatePayload{
		LeaveID: leaveID,
		Status:  status,
		Message: message,
	}

	if err := n.channel.EmitToGroup(requesterID, EventLeaveStatusUpdate, payload); err != nil {
		n.logger.Warn("leave decided notification failed",
			zap.String("leave_id", leaveID),
			zap.String("requester_id", requesterID),
			zap.Error(err),
		)
	}
}

type nopNotifier struct{}

// NewNopNotifier wires the workflow without a hub, e.g. in the consumer
// binary or in tests that do not care about pushes.
func NewNopNotifier() Notifier {
	return nopNotifier{}
}

func (nopNotifier) LeaveRequested(string, string)        {}
func (nopNotifier) LeaveDecided(string, string, string, string) {}
