package realtime

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Broadcast groups that decision-capable clients join at connect time.
const (
	GroupAdmin = "admin"
	GroupHR    = "hr"
)

// Channel maps an identity or audience to the set of currently connected
// endpoints and delivers named events to every member. Delivery is
// best-effort at-most-once: whoever is connected at emit time gets the
// event, nobody else ever will.
//
//go:generate mockgen -source=hub.go -destination=mock/channel_mock.go -package=mock
type Channel interface {
	JoinGroup(endpointID, group string)
	LeaveAllGroups(endpointID string)
	EmitToGroup(group, event string, payload any) error
}

// Frame is the wire envelope written to every endpoint.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type endpoint struct {
	id     string
	send   chan []byte
	groups map[string]struct{}
}

// Hub is the in-process Channel implementation. Group membership lives
// only as long as the connection: a reconnecting client starts with no
// memberships and must re-announce itself.
type Hub struct {
	mu        sync.RWMutex
	endpoints map[string]*endpoint
	groups    map[string]map[string]*endpoint
	logger    *zap.Logger
}

func NewHub(logger ...*zap.Logger) *Hub {
	l := zap.L().Named("realtime.hub")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("realtime.hub")
	}
	return &Hub{
		endpoints: make(map[string]*endpoint),
		groups:    make(map[string]map[string]*endpoint),
		logger:    l,
	}
}

// Register adds a connected endpoint and returns the channel its
// transport must drain. The buffer absorbs bursts; a full buffer means
// the endpoint is too slow and loses the event.
func (h *Hub) Register(endpointID string, buffer int) <-chan []byte {
	if buffer <= 0 {
		buffer = 256
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ep := &endpoint{
		id:     endpointID,
		send:   make(chan []byte, buffer),
		groups: make(map[string]struct{}),
	}
	h.endpoints[endpointID] = ep
	h.logger.Debug("endpoint registered", zap.String("endpoint_id", endpointID))
	return ep.send
}

// Unregister removes the endpoint from every group and closes its send
// channel. Transports must call this exactly once per disconnect so no
// stale membership leaks.
func (h *Hub) Unregister(endpointID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ep, ok := h.endpoints[endpointID]
	if !ok {
		return
	}

	h.removeFromAllGroupsLocked(ep)
	delete(h.endpoints, endpointID)
	close(ep.send)
	h.logger.Debug("endpoint unregistered", zap.String("endpoint_id", endpointID))
}

// JoinGroup adds the endpoint to a named group. Joining twice is a no-op.
func (h *Hub) JoinGroup(endpointID, group string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ep, ok := h.endpoints[endpointID]
	if !ok {
		h.logger.Warn("join group for unknown endpoint",
			zap.String("endpoint_id", endpointID),
			zap.String("group", group),
		)
		return
	}

	if _, joined := ep.groups[group]; joined {
		return
	}

	members, ok := h.groups[group]
	if !ok {
		members = make(map[string]*endpoint)
		h.groups[group] = members
	}
	members[endpointID] = ep
	ep.groups[group] = struct{}{}
}

// LeaveAllGroups drops the endpoint's memberships without closing its
// connection.
func (h *Hub) LeaveAllGroups(endpointID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ep, ok := h.endpoints[endpointID]
	if !ok {
		return
	}
	h.removeFromAllGroupsLocked(ep)
}

func (h *Hub) removeFromAllGroupsLocked(ep *endpoint) {
	for group := range ep.groups {
		if members, ok := h.groups[group]; ok {
			delete(members, ep.id)
			if len(members) == 0 {
				delete(h.groups, group)
			}
		}
	}
	ep.groups = make(map[string]struct{})
}

// EmitToGroup delivers the event to every member connected right now.
// Sends never block: a member whose buffer is full simply misses the
// event.
func (h *Hub) EmitToGroup(group, event string, payload any) error {
	frame, err := json.Marshal(Frame{Event: event, Data: payload})
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	members := h.groups[group]
	for _, ep := range members {
		select {
		case ep.send <- frame:
		default:
			h.logger.Warn("endpoint send buffer full, dropping event",
				zap.String("endpoint_id", ep.id),
				zap.String("group", group),
				zap.String("event", event),
			)
		}
	}

	h.logger.Debug("event emitted",
		zap.String("group", group),
		zap.String("event", event),
		zap.Int("recipients", len(members)),
	)
	return nil
}

// GroupSize reports current membership, used by tests and diagnostics.
func (h *Hub) GroupSize(group string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[group])
}
