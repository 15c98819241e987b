package consumer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	Repository
	consumers []*Consumer
	updated   []string
}

func (r *fakeRepository) FindGuestHosts(_ context.Context, ownerID uint, guestIDs []string, exclude uint) (map[string]*Consumer, error) {
	out := make(map[string]*Consumer)
	for _, c := range r.consumers {
		if c.OwnerID() != ownerID || c.ID() == exclude {
			continue
		}
		for _, id := range guestIDs {
			if c.HasGuest(id) {
				out[id] = c
			}
		}
	}
	return out, nil
}

func (r *fakeRepository) Update(_ context.Context, c *Consumer) error {
	r.updated = append(r.updated, c.UUID())
	return nil
}

func newHost(t *testing.T, id uint, uuid string, guests ...string) *Consumer {
	t.Helper()
	c, err := NewConsumer(uuid, "", 1, TypeHypervisor)
	require.NoError(t, err)
	require.NoError(t, c.SetID(id))
	c.SetGuestIDs(GuestIDsFromStrings(guests), t0)
	return c
}

func TestGuestMigrationService_ReplaceGuestsMovesGuests(t *testing.T) {
	oldHost := newHost(t, 1, "old-host", "g1", "g2", "g3")
	newHostC := newHost(t, 2, "new-host", "g4")
	repo := &fakeRepository{consumers: []*Consumer{oldHost, newHostC}}
	svc := NewGuestMigrationService(repo)

	changed, evts, err := svc.ReplaceGuests(context.Background(), newHostC, GuestIDsFromStrings([]string{"g4", "g1", "g2"}), t1)
	require.NoError(t, err)
	assert.True(t, changed)
	require.Len(t, evts, 2)

	first := evts[0].(*GuestMigratedEvent)
	assert.Equal(t, "g1", first.GuestID)
	assert.Equal(t, "old-host", first.FromHost)
	assert.Equal(t, "new-host", first.ToHost)

	assert.False(t, oldHost.HasGuest("g1"))
	assert.True(t, oldHost.HasGuest("g3"))
	assert.Equal(t, t1, *oldHost.CloudProfileModified())
	assert.Equal(t, []string{"old-host"}, repo.updated, "previous host saved once")
}

func TestGuestMigrationService_ReplaceGuestsNoOp(t *testing.T) {
	host := newHost(t, 1, "host", "g1")
	repo := &fakeRepository{consumers: []*Consumer{host}}
	svc := NewGuestMigrationService(repo)

	changed, evts, err := svc.ReplaceGuests(context.Background(), host, GuestIDsFromStrings([]string{"g1"}), t2)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, evts)
	assert.Equal(t, t0, *host.CloudProfileModified())
}

func TestGuestMigrationService_AttachGuest(t *testing.T) {
	oldHost := newHost(t, 1, "old-host", "g1")
	host := newHost(t, 2, "host")
	repo := &fakeRepository{consumers: []*Consumer{oldHost, host}}
	svc := NewGuestMigrationService(repo)

	changed, evts, err := svc.AttachGuest(context.Background(), host, NewGuestID("g1", nil), t1)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Len(t, evts, 1)
	assert.False(t, oldHost.HasGuest("g1"))

	changed, evts, err = svc.AttachGuest(context.Background(), host, NewGuestID("g1", nil), t2)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, evts)
}
