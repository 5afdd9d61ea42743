// Package queue defines message payloads exchanged over the message broker
// and the consumer that turns them into the activity log.
package queue

// ClientQueueName is the durable queue client events are published to.
const ClientQueueName = "tourmate.clients"

// Event types carried in ClientEvent.Type.
const (
    EventClientSaved   = "client.saved"
    EventClientDeleted = "client.deleted"
)

// ClientEvent is published after a client record is saved or deleted. It
// carries enough of the record for the activity log without reading the
// session namespace again.
type ClientEvent struct {
    Type        string  `json:"type"`
    Scope       string  `json:"scope,omitempty"`
    ClientID    int64   `json:"client_id"`
    ClientName  string  `json:"client_name,omitempty"`
    Destination string  `json:"destination,omitempty"`
    Budget      float64 `json:"budget,omitempty"`
    Category    string  `json:"category,omitempty"`
    OccurredAt  string  `json:"occurred_at"`
}
