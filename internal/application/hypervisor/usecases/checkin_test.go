package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/owner"
	"candlepin/internal/domain/permission"
	"candlepin/internal/shared/db"
	"candlepin/internal/shared/errors"
	"candlepin/internal/shared/logger"
)

var checkinTime = time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

type checkinFixture struct {
	consumers *fakeConsumerRepository
	publisher *recordingPublisher
	observer  *recordingObserver
	acme      *owner.Owner
	ownerErr  map[int]bool
	lookups   int
}

func newCheckinFixture(t *testing.T) *checkinFixture {
	acme, err := owner.ReconstructOwner(owner.OwnerReconstructParams{ID: 1, Key: "acme", ContentAccessMode: "entitlement"})
	require.NoError(t, err)
	return &checkinFixture{
		consumers: newFakeConsumerRepository(),
		publisher: &recordingPublisher{},
		observer:  &recordingObserver{},
		acme:      acme,
		ownerErr:  map[int]bool{},
	}
}

func (f *checkinFixture) useCase(tx db.Transactor) *CheckInUseCase {
	owners := &mockOwnerRepository{
		GetByKeyFunc: func(ctx context.Context, key string) (*owner.Owner, error) {
			f.lookups++
			if f.ownerErr[f.lookups] {
				return nil, errors.NewInternalError("owner lookup failed")
			}
			if key != "acme" {
				return nil, owner.ErrOwnerNotFound(key)
			}
			return f.acme, nil
		},
	}
	uc := NewCheckInUseCase(owners, f.consumers, &mockEnforcer{grants: map[string]permission.Access{
		"virt-who": permission.AccessAll,
		"reader":   permission.AccessRead,
	}},
		tx, f.publisher, f.observer, logger.NewNopLogger())
	uc.now = func() time.Time { return checkinTime }
	return uc
}

func (f *checkinFixture) register(t *testing.T, uuid string, consumerType consumer.Type, ownerID uint, guests ...string) *consumer.Consumer {
	c, err := consumer.NewConsumer(uuid, uuid, ownerID, consumerType)
	require.NoError(t, err)
	c.SetGuestIDs(consumer.GuestIDsFromStrings(guests), checkinTime.Add(-time.Hour))
	require.NoError(t, f.consumers.Create(context.Background(), c))
	return c
}

func TestCheckInUseCase_PartitionsHosts(t *testing.T) {
	f := newCheckinFixture(t)
	f.register(t, "h-existing", consumer.TypeHypervisor, 1, "g1")
	f.register(t, "h-same", consumer.TypeHypervisor, 1, "g5")
	uc := f.useCase(passthroughTransactor{})

	result, err := uc.Execute(context.Background(), CheckInCommand{
		OwnerKey:  "acme",
		Principal: "virt-who",
		Hosts: map[string][]string{
			"h-existing": {"g1", "g2"},
			"h-new":      {"g3", ""},
			"h-same":     {"g5"},
			"":           {"g9"},
		},
		CreateMissing: true,
	})
	require.NoError(t, err)

	require.Len(t, result.Created, 1)
	assert.Equal(t, "h-new", result.Created[0].UUID)
	assert.Equal(t, 1, result.Created[0].GuestCount)
	require.Len(t, result.Updated, 1)
	assert.Equal(t, "h-existing", result.Updated[0].UUID)
	require.Len(t, result.Unchanged, 1)
	assert.Equal(t, "h-same", result.Unchanged[0].UUID)
	assert.Empty(t, result.Failed)

	created, err := f.consumers.GetByUUID(context.Background(), "h-new")
	require.NoError(t, err)
	assert.Equal(t, consumer.TypeHypervisor, created.Type())
	assert.Equal(t, "x86_64", created.Facts()["uname.machine"])
	assert.Equal(t, map[string]int{"created": 1, "updated": 1, "unchanged": 1}, f.observer.outcomes)
}

func TestCheckInUseCase_OneHostFailureDoesNotStopOthers(t *testing.T) {
	f := newCheckinFixture(t)
	// Hosts run in sorted order; the second owner lookup belongs to "h2".
	f.ownerErr[2] = true
	uc := f.useCase(passthroughTransactor{})

	result, err := uc.Execute(context.Background(), CheckInCommand{
		OwnerKey:      "acme",
		Principal:     "virt-who",
		Hosts:         map[string][]string{"h1": {"a"}, "h2": {"b"}, "h3": {"c"}},
		CreateMissing: true,
	})
	require.NoError(t, err)
	assert.Len(t, result.Created, 2)
	assert.Equal(t, []string{"h2: owner lookup failed"}, result.Failed)

	_, err = f.consumers.GetByUUID(context.Background(), "h2")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestCheckInUseCase_TransactionFailureIsolated(t *testing.T) {
	f := newCheckinFixture(t)
	uc := f.useCase(&failingTransactor{failOn: map[int]bool{1: true}})

	result, err := uc.Execute(context.Background(), CheckInCommand{
		OwnerKey:      "acme",
		Principal:     "virt-who",
		Hosts:         map[string][]string{"h1": {"a"}, "h2": {"b"}},
		CreateMissing: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"h1: database unavailable"}, result.Failed)
	require.Len(t, result.Created, 1)
	assert.Equal(t, "h2", result.Created[0].UUID)
}

func TestCheckInUseCase_CreationRules(t *testing.T) {
	tests := []struct {
		name          string
		ownerKey      string
		principal     string
		createMissing bool
		wantFailed    string
	}{
		{"create missing disabled", "acme", "virt-who", false, `h1: unable to find hypervisor in org "acme"`},
		{"principal without ALL", "acme", "reader", true, `h1: principal "reader" may not register hypervisors in org "acme"`},
		{"unknown owner", "globex", "virt-who", true, "h1: owner not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCheckinFixture(t)
			result, err := f.useCase(passthroughTransactor{}).Execute(context.Background(), CheckInCommand{
				OwnerKey:      tt.ownerKey,
				Principal:     tt.principal,
				Hosts:         map[string][]string{"h1": {"g1"}},
				CreateMissing: tt.createMissing,
			})
			require.NoError(t, err)
			assert.Empty(t, result.Created)
			assert.Equal(t, []string{tt.wantFailed}, result.Failed)
			assert.Equal(t, 1, f.observer.outcomes[HostOutcomeFailed])
		})
	}
}

func TestCheckInUseCase_ConvertsAndMigrates(t *testing.T) {
	f := newCheckinFixture(t)
	f.register(t, "h-old", consumer.TypeHypervisor, 1, "g1", "g2")
	f.register(t, "h-system", consumer.TypeSystem, 1)
	f.register(t, "h-foreign", consumer.TypeHypervisor, 2)
	uc := f.useCase(passthroughTransactor{})

	result, err := uc.Execute(context.Background(), CheckInCommand{
		OwnerKey:  "acme",
		Principal: "virt-who",
		Hosts: map[string][]string{
			"h-system":  {"g2"},
			"h-foreign": {"g7"},
		},
		CreateMissing: true,
	})
	require.NoError(t, err)

	require.Len(t, result.Updated, 1)
	assert.Equal(t, "h-system", result.Updated[0].UUID)
	assert.Equal(t, []string{"h-foreign: hypervisor is registered to a different owner"}, result.Failed)

	converted, err := f.consumers.GetByUUID(context.Background(), "h-system")
	require.NoError(t, err)
	assert.Equal(t, consumer.TypeHypervisor, converted.Type())

	old, err := f.consumers.GetByUUID(context.Background(), "h-old")
	require.NoError(t, err)
	assert.False(t, old.HasGuest("g2"))
	assert.True(t, old.HasGuest("g1"))

	require.Len(t, f.publisher.events, 1)
	migrated := f.publisher.events[0].(*consumer.GuestMigratedEvent)
	assert.Equal(t, "g2", migrated.GuestID)
	assert.Equal(t, "h-old", migrated.FromHost)
	assert.Equal(t, "h-system", migrated.ToHost)
}

func TestCheckInUseCase_IdenticalReportKeepsCloudProfile(t *testing.T) {
	f := newCheckinFixture(t)
	host := f.register(t, "h1", consumer.TypeHypervisor, 1, "g1", "g2")
	before := *host.CloudProfileModified()
	uc := f.useCase(passthroughTransactor{})
	ctx := context.Background()

	result, err := uc.Execute(ctx, CheckInCommand{OwnerKey: "acme", Principal: "virt-who", Hosts: map[string][]string{"h1": {"g1", "g2"}}})
	require.NoError(t, err)
	assert.Len(t, result.Unchanged, 1)
	assert.Equal(t, before, *host.CloudProfileModified())
	require.NotNil(t, host.LastCheckin())
	assert.Equal(t, checkinTime, *host.LastCheckin())

	result, err = uc.Execute(ctx, CheckInCommand{OwnerKey: "acme", Principal: "virt-who", Hosts: map[string][]string{"h1": {"g2", "g1"}}})
	require.NoError(t, err)
	assert.Len(t, result.Updated, 1)
	assert.Equal(t, checkinTime, *host.CloudProfileModified())
}

func TestCheckInUseCase_RequiresMapping(t *testing.T) {
	f := newCheckinFixture(t)
	_, err := f.useCase(passthroughTransactor{}).Execute(context.Background(), CheckInCommand{OwnerKey: "acme"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeBadRequest, errors.GetAppError(err).Type)
}

func TestCheckInUseCase_RejectsPrincipalWithoutOwnerAccess(t *testing.T) {
	f := newCheckinFixture(t)
	victim := f.register(t, "victim-host", consumer.TypeHypervisor, 1, "g1", "g2")
	other := f.register(t, "other-host", consumer.TypeHypervisor, 1, "g9")
	uc := f.useCase(passthroughTransactor{})

	result, err := uc.Execute(context.Background(), CheckInCommand{
		OwnerKey:      "acme",
		Principal:     "stranger",
		Hosts:         map[string][]string{"victim-host": {"g9"}},
		CreateMissing: true,
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsForbiddenError(err))

	assert.Equal(t, consumer.GuestIDsFromStrings([]string{"g1", "g2"}), victim.GuestIDs())
	assert.True(t, other.HasGuest("g9"))
	assert.Empty(t, f.publisher.events)
	assert.Zero(t, f.lookups)
}

func TestCheckInUseCase_ReaderUpdatesExistingHost(t *testing.T) {
	f := newCheckinFixture(t)
	f.register(t, "h1", consumer.TypeHypervisor, 1, "g1")
	uc := f.useCase(passthroughTransactor{})

	result, err := uc.Execute(context.Background(), CheckInCommand{
		OwnerKey:      "acme",
		Principal:     "reader",
		Hosts:         map[string][]string{"h1": {"g1", "g2"}, "h-new": {"g3"}},
		CreateMissing: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Updated, 1)
	assert.Equal(t, "h1", result.Updated[0].UUID)
	assert.Equal(t, []string{`h-new: principal "reader" may not register hypervisors in org "acme"`}, result.Failed)
}

func TestCheckInUseCase_KeepsGuestAttributes(t *testing.T) {
	f := newCheckinFixture(t)
	host := f.register(t, "h1", consumer.TypeHypervisor, 1, "g1")
	_, err := host.UpsertGuest(consumer.NewGuestID("g1", map[string]string{"active": "1"}), checkinTime.Add(-time.Minute))
	require.NoError(t, err)
	before := *host.CloudProfileModified()

	result, err := f.useCase(passthroughTransactor{}).Execute(context.Background(), CheckInCommand{
		OwnerKey:  "acme",
		Principal: "virt-who",
		Hosts:     map[string][]string{"h1": {"g1"}},
	})
	require.NoError(t, err)
	assert.Len(t, result.Unchanged, 1)
	assert.Empty(t, result.Updated)
	assert.Equal(t, before, *host.CloudProfileModified())
	assert.Equal(t, map[string]string{"active": "1"}, host.GuestIDs()[0].Attributes)
}
