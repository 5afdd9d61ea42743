// This file defines the client store: the ordered sequence of client records
// kept under the tourmate_clients key of a session namespace. Every mutation
// reads the whole sequence, changes it, and writes the whole sequence back.

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/iliyamo/tourmate/internal/model"
	"github.com/iliyamo/tourmate/internal/namespace"
	"github.com/iliyamo/tourmate/internal/queue"
)

// Renderer is told about the remaining records after a delete so a view can
// be redrawn.
type Renderer interface {
	RenderClients(ctx context.Context, clients []model.ClientRecord) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, clients []model.ClientRecord) error

func (f RendererFunc) RenderClients(ctx context.Context, clients []model.ClientRecord) error {
	return f(ctx, clients)
}

// Publisher receives an event after every successful save or delete.
type Publisher interface {
	Publish(ctx context.Context, event queue.ClientEvent) error
}

// ClientStore reads and writes client records in one namespace.
type ClientStore struct {
	ns        namespace.Namespace
	renderer  Renderer
	publisher Publisher
	scope     string
}

// Option configures optional collaborators of a ClientStore.
type Option func(*ClientStore)

// WithRenderer registers the view redrawn after DeleteByID.
func WithRenderer(r Renderer) Option {
	return func(s *ClientStore) { s.renderer = r }
}

// WithPublisher registers an event publisher. scope identifies the session
// in published events.
func WithPublisher(p Publisher, scope string) Option {
	return func(s *ClientStore) {
		s.publisher = p
		s.scope = scope
	}
}

// NewClientStore constructs a store over ns.
func NewClientStore(ns namespace.Namespace, opts ...Option) *ClientStore {
	s := &ClientStore{ns: ns}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save appends rec to the stored sequence. Ids are not checked for
// uniqueness; that is the caller's job.
func (s *ClientStore) Save(ctx context.Context, rec model.ClientRecord) error {
	clients, err := s.load(ctx)
	if err != nil {
		return err
	}
	clients = append(clients, rec)
	if err := s.write(ctx, clients); err != nil {
		return err
	}
	s.publish(ctx, queue.EventClientSaved, rec)
	return nil
}

// List returns every stored record in insertion order. A missing or
// malformed value yields an empty slice.
func (s *ClientStore) List(ctx context.Context) ([]model.ClientRecord, error) {
	return s.load(ctx)
}

// Get returns the first record with the given id.
func (s *ClientStore) Get(ctx context.Context, id int64) (model.ClientRecord, error) {
	clients, err := s.load(ctx)
	if err != nil {
		return model.ClientRecord{}, err
	}
	for _, c := range clients {
		if c.ID == id {
			return c, nil
		}
	}
	return model.ClientRecord{}, ErrClientNotFound
}

// DeleteByID removes every record whose id matches and writes the rest back
// in their original order. Deleting an unknown id leaves the sequence as it
// was. The registered renderer, if any, is called with the remaining records.
func (s *ClientStore) DeleteByID(ctx context.Context, id int64) error {
	clients, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]model.ClientRecord, 0, len(clients))
	removed := 0
	for _, c := range clients {
		if c.ID == id {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	if err := s.write(ctx, kept); err != nil {
		return err
	}
	if removed > 0 {
		s.publish(ctx, queue.EventClientDeleted, model.ClientRecord{ID: id})
	}
	if s.renderer != nil {
		if err := s.renderer.RenderClients(ctx, kept); err != nil {
			log.Printf("client-store: render after delete failed: %v", err)
		}
	}
	return nil
}

func (s *ClientStore) load(ctx context.Context) ([]model.ClientRecord, error) {
	raw, ok, err := s.ns.GetItem(ctx, namespace.KeyClients)
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}
	clients := []model.ClientRecord{}
	if !ok || strings.TrimSpace(raw) == "" {
		return clients, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("client-store: ignoring malformed %s value: %v", namespace.KeyClients, err)
		return clients, nil
	}
	// A record that does not decode is skipped; the others are kept.
	for i, item := range items {
		var rec model.ClientRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			log.Printf("client-store: skipping malformed record %d in %s: %v", i, namespace.KeyClients, err)
			continue
		}
		clients = append(clients, rec)
	}
	return clients, nil
}

func (s *ClientStore) write(ctx context.Context, clients []model.ClientRecord) error {
	b, err := json.Marshal(clients)
	if err != nil {
		return fmt.Errorf("encode clients: %w", err)
	}
	if err := s.ns.SetItem(ctx, namespace.KeyClients, string(b)); err != nil {
		return fmt.Errorf("store clients: %w", err)
	}
	return nil
}

func (s *ClientStore) publish(ctx context.Context, typ string, rec model.ClientRecord) {
	if s.publisher == nil {
		return
	}
	ev := queue.ClientEvent{
		Type:       typ,
		Scope:      s.scope,
		ClientID:   rec.ID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if typ == queue.EventClientSaved {
		ev.ClientName = rec.ClientName
		ev.Destination = rec.Destination
		ev.Budget = rec.Budget
		ev.Category = string(rec.Hotel().Category)
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		log.Printf("client-store: publish %s for client %d failed: %v", typ, rec.ID, err)
	}
}
