package rides

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carpool-labs/rideshare/internal/notifier"
)

// ---- fakes ----

type edge struct {
	rideID int64
	userID int64
}

type fakeRideStore struct {
	nextID  int64
	rides   map[int64]*Ride
	riders  map[int64]*Rider
	members map[edge]bool
}

func newFakeRideStore() *fakeRideStore {
	return &fakeRideStore{
		rides:   make(map[int64]*Ride),
		riders:  make(map[int64]*Rider),
		members: make(map[edge]bool),
	}
}

func (s *fakeRideStore) addRider(r *Rider) {
	s.riders[r.ID] = r
}

func (s *fakeRideStore) CreateRide(_ context.Context, req *CreateRideRequest) (*Ride, error) {
	s.nextID++
	ride := &Ride{ID: s.nextID, Origin: req.Origin, Destination: req.Destination, Seats: req.Seats}
	s.rides[ride.ID] = ride
	return ride, nil
}

func (s *fakeRideStore) GetRide(_ context.Context, rideID int64) (*Ride, error) {
	ride, ok := s.rides[rideID]
	if !ok {
		return nil, NewRideNotFoundError(rideID)
	}
	return ride, nil
}

func (s *fakeRideStore) ListRides(_ context.Context) ([]*Ride, error) {
	result := make([]*Ride, 0, len(s.rides))
	for _, r := range s.rides {
		result = append(result, r)
	}
	return result, nil
}

func (s *fakeRideStore) GetRider(_ context.Context, userID int64) (*Rider, error) {
	rider, ok := s.riders[userID]
	if !ok {
		return nil, NewRiderNotFoundError(userID)
	}
	return rider, nil
}

func (s *fakeRideStore) AddMember(_ context.Context, rideID, userID int64) error {
	e := edge{rideID: rideID, userID: userID}
	if s.members[e] {
		return NewAlreadyJoinedError(rideID, userID, nil)
	}
	s.members[e] = true
	return nil
}

func (s *fakeRideStore) RemoveMember(_ context.Context, rideID, userID int64) error {
	delete(s.members, edge{rideID: rideID, userID: userID})
	return nil
}

func (s *fakeRideStore) ListMembers(_ context.Context, rideID int64) ([]*Rider, error) {
	result := make([]*Rider, 0)
	for e := range s.members {
		if e.rideID == rideID {
			result = append(result, s.riders[e.userID])
		}
	}
	return result, nil
}

type recordingPublisher struct {
	messages []notifier.Message
}

func (p *recordingPublisher) Publish(_ context.Context, msg notifier.Message) {
	p.messages = append(p.messages, msg)
}

func newTestService() (*Service, *fakeRideStore, *recordingPublisher) {
	store := newFakeRideStore()
	publisher := &recordingPublisher{}
	return NewService(store, publisher, zap.NewNop()), store, publisher
}

// ---- tests ----

func TestCreateRideRoundTrip(t *testing.T) {
	svc, _, publisher := newTestService()
	ctx := context.Background()

	ride, err := svc.CreateRide(ctx, &CreateRideRequest{Origin: "A", Destination: "B", Seats: 2})
	require.NoError(t, err)
	assert.NotZero(t, ride.ID)

	got, err := svc.GetRide(ctx, ride.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Origin)
	assert.Equal(t, "B", got.Destination)
	assert.Equal(t, 2, got.Seats)

	require.Len(t, publisher.messages, 1)
	assert.Equal(t, notifier.TypeRideCreated, publisher.messages[0].Type)
	assert.Equal(t, "A", publisher.messages[0].Origin)
	assert.Equal(t, "B", publisher.messages[0].Destination)
}

func TestCreateRideZeroSeatsAllowed(t *testing.T) {
	svc, _, _ := newTestService()

	ride, err := svc.CreateRide(context.Background(), &CreateRideRequest{Origin: "A", Destination: "B"})
	require.NoError(t, err)
	assert.Equal(t, 0, ride.Seats)
}

func TestGetRideNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetRide(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestJoinRideRecordsMembershipAndNotifies(t *testing.T) {
	svc, store, publisher := newTestService()
	ctx := context.Background()

	store.addRider(&Rider{ID: 1, Username: "alice", Email: "alice@x.com"})
	ride, err := svc.CreateRide(ctx, &CreateRideRequest{Origin: "A", Destination: "B", Seats: 2})
	require.NoError(t, err)

	require.NoError(t, svc.JoinRide(ctx, ride.ID, 1))

	members, err := svc.ListMembers(ctx, ride.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "alice", members[0].Username)

	require.Len(t, publisher.messages, 2)
	joined := publisher.messages[1]
	assert.Equal(t, notifier.TypeRideJoined, joined.Type)
	assert.Equal(t, "alice", joined.User)
	assert.Equal(t, "A to B", joined.Ride)
}

func TestJoinRideMissingEntities(t *testing.T) {
	svc, store, publisher := newTestService()
	ctx := context.Background()

	store.addRider(&Rider{ID: 1, Username: "alice", Email: "alice@x.com"})
	ride, err := svc.CreateRide(ctx, &CreateRideRequest{Origin: "A", Destination: "B", Seats: 2})
	require.NoError(t, err)

	// Unknown user
	err = svc.JoinRide(ctx, ride.ID, 9999)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	// Unknown ride
	err = svc.JoinRide(ctx, 9999, 1)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	// Only the ride_created event published
	assert.Len(t, publisher.messages, 1)
}

func TestJoinRideTwiceConflicts(t *testing.T) {
	svc, store, publisher := newTestService()
	ctx := context.Background()

	store.addRider(&Rider{ID: 1, Username: "alice", Email: "alice@x.com"})
	ride, err := svc.CreateRide(ctx, &CreateRideRequest{Origin: "A", Destination: "B", Seats: 2})
	require.NoError(t, err)

	require.NoError(t, svc.JoinRide(ctx, ride.ID, 1))

	err = svc.JoinRide(ctx, ride.ID, 1)
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	// ride_created + one ride_joined
	assert.Len(t, publisher.messages, 2)
}

func TestLeaveRideReversesJoin(t *testing.T) {
	svc, store, publisher := newTestService()
	ctx := context.Background()

	store.addRider(&Rider{ID: 1, Username: "alice", Email: "alice@x.com"})
	ride, err := svc.CreateRide(ctx, &CreateRideRequest{Origin: "A", Destination: "B", Seats: 2})
	require.NoError(t, err)

	require.NoError(t, svc.JoinRide(ctx, ride.ID, 1))
	require.NoError(t, svc.LeaveRide(ctx, ride.ID, 1))

	members, err := svc.ListMembers(ctx, ride.ID)
	require.NoError(t, err)
	assert.Empty(t, members)

	require.Len(t, publisher.messages, 3)
	left := publisher.messages[2]
	assert.Equal(t, notifier.TypeRideLeft, left.Type)
	assert.Equal(t, "alice", left.User)
	assert.Equal(t, "A to B", left.Ride)
}

func TestLeaveRideNonMemberNoOps(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	store.addRider(&Rider{ID: 1, Username: "alice", Email: "alice@x.com"})
	ride, err := svc.CreateRide(ctx, &CreateRideRequest{Origin: "A", Destination: "B", Seats: 2})
	require.NoError(t, err)

	// Never joined; leave still succeeds
	require.NoError(t, svc.LeaveRide(ctx, ride.ID, 1))
}

func TestLeaveRideMissingEntities(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.LeaveRide(context.Background(), 1, 1)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestListMembersUnknownRide(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ListMembers(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
