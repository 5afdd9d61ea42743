package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/tourmate/internal/model"
	"github.com/iliyamo/tourmate/internal/namespace"
	"github.com/iliyamo/tourmate/internal/queue"
)

func record(id int64) model.ClientRecord {
	return model.ClientRecord{ID: id, ClientName: "Client", Destination: "Jaipur", Days: 3, Budget: float64(id) * 10000}
}

func ids(clients []model.ClientRecord) []int64 {
	out := make([]int64, 0, len(clients))
	for _, c := range clients {
		out = append(out, c.ID)
	}
	return out
}

type fakePublisher struct {
	events []queue.ClientEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, ev queue.ClientEvent) error {
	f.events = append(f.events, ev)
	return f.err
}

// brokenNamespace fails every call.
type brokenNamespace struct{}

func (brokenNamespace) GetItem(context.Context, string) (string, bool, error) {
	return "", false, namespace.ErrUnavailable
}
func (brokenNamespace) SetItem(context.Context, string, string) error { return namespace.ErrUnavailable }
func (brokenNamespace) RemoveItem(context.Context, string) error      { return namespace.ErrUnavailable }

func TestListEmptyStore(t *testing.T) {
	got, err := NewClientStore(namespace.NewMemory()).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSaveThenList(t *testing.T) {
	ctx := context.Background()
	s := NewClientStore(namespace.NewMemory())
	r := record(1).WithRecommendation()

	require.NoError(t, s.Save(ctx, r))
	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, r, got[0])
}

func TestListIsRepeatable(t *testing.T) {
	ctx := context.Background()
	s := NewClientStore(namespace.NewMemory())
	require.NoError(t, s.Save(ctx, record(1)))
	require.NoError(t, s.Save(ctx, record(2)))

	first, err := s.List(ctx)
	require.NoError(t, err)
	second, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSavePreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewClientStore(namespace.NewMemory())
	for _, id := range []int64{1, 2, 3} {
		require.NoError(t, s.Save(ctx, record(id)))
	}
	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids(got))
}

func TestSaveDoesNotDeduplicateIDs(t *testing.T) {
	ctx := context.Background()
	s := NewClientStore(namespace.NewMemory())
	require.NoError(t, s.Save(ctx, record(5)))
	require.NoError(t, s.Save(ctx, record(5)))

	got, _ := s.List(ctx)
	assert.Equal(t, []int64{5, 5}, ids(got))

	require.NoError(t, s.DeleteByID(ctx, 5))
	got, _ = s.List(ctx)
	assert.Empty(t, got)
}

func TestDeleteByID(t *testing.T) {
	ctx := context.Background()
	s := NewClientStore(namespace.NewMemory())
	for _, id := range []int64{1, 2, 3} {
		require.NoError(t, s.Save(ctx, record(id)))
	}

	require.NoError(t, s.DeleteByID(ctx, 2))
	got, _ := s.List(ctx)
	assert.Equal(t, []int64{1, 3}, ids(got))

	require.NoError(t, s.DeleteByID(ctx, 42))
	got, _ = s.List(ctx)
	assert.Equal(t, []int64{1, 3}, ids(got))
}

func TestCorruptStoreSelfHeals(t *testing.T) {
	ctx := context.Background()
	ns := namespace.NewMemory()
	require.NoError(t, ns.SetItem(ctx, namespace.KeyClients, "{not json"))
	s := NewClientStore(ns)

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	r := record(9)
	require.NoError(t, s.Save(ctx, r))
	got, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.ClientRecord{r}, got)
}

func TestMalformedRecordIsSkippedOthersKept(t *testing.T) {
	ctx := context.Background()
	ns := namespace.NewMemory()
	stored := `[{"id":1,"clientName":"A","destination":"Goa","days":2,"budget":100},` +
		`{"id":2,"clientName":"B","destination":"Goa","days":"3","budget":100}]`
	require.NoError(t, ns.SetItem(ctx, namespace.KeyClients, stored))
	s := NewClientStore(ns)

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(got))

	require.NoError(t, s.Save(ctx, record(3)))
	got, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids(got))
}

func TestJSONNullIsEmpty(t *testing.T) {
	ctx := context.Background()
	ns := namespace.NewMemory()
	require.NoError(t, ns.SetItem(ctx, namespace.KeyClients, "null"))
	got, err := NewClientStore(ns).List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	s := NewClientStore(namespace.NewMemory())
	require.NoError(t, s.Save(ctx, record(4)))

	got, err := s.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.ID)

	_, err = s.Get(ctx, 5)
	assert.True(t, errors.Is(err, ErrClientNotFound))
}

func TestDeleteCallsRenderer(t *testing.T) {
	ctx := context.Background()
	var calls [][]int64
	r := RendererFunc(func(_ context.Context, clients []model.ClientRecord) error {
		calls = append(calls, ids(clients))
		return errors.New("target missing")
	})
	s := NewClientStore(namespace.NewMemory(), WithRenderer(r))
	require.NoError(t, s.Save(ctx, record(1)))
	require.NoError(t, s.Save(ctx, record(2)))

	require.NoError(t, s.DeleteByID(ctx, 1))
	assert.Equal(t, [][]int64{{2}}, calls)
}

func TestPublisherReceivesEvents(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{err: errors.New("broker down")}
	s := NewClientStore(namespace.NewMemory(), WithPublisher(pub, "scope-1"))

	require.NoError(t, s.Save(ctx, record(6)))
	require.NoError(t, s.DeleteByID(ctx, 6))
	require.NoError(t, s.DeleteByID(ctx, 6))

	require.Len(t, pub.events, 2)
	assert.Equal(t, queue.EventClientSaved, pub.events[0].Type)
	assert.Equal(t, "scope-1", pub.events[0].Scope)
	assert.Equal(t, "Premium", pub.events[0].Category)
	assert.Equal(t, queue.EventClientDeleted, pub.events[1].Type)
	assert.Equal(t, int64(6), pub.events[1].ClientID)
}

func TestNamespaceFailuresPropagate(t *testing.T) {
	ctx := context.Background()
	s := NewClientStore(brokenNamespace{})

	_, err := s.List(ctx)
	assert.True(t, errors.Is(err, namespace.ErrUnavailable))
	assert.True(t, errors.Is(s.Save(ctx, record(1)), namespace.ErrUnavailable))
	assert.True(t, errors.Is(s.DeleteByID(ctx, 1), namespace.ErrUnavailable))
}
