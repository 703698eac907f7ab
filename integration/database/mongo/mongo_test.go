package mongo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/event"

	"github.com/fixora/backend/integration/database/mongo"
)

func TestState_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state mongo.State
		want  string
	}{
		{mongo.Disconnected, "disconnected"},
		{mongo.Connected, "connected"},
		{mongo.Connecting, "connecting"},
		{mongo.Disconnecting, "disconnecting"},
		{mongo.State(42), "disconnected"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}

func TestTracker(t *testing.T) {
	t.Parallel()

	tracker := mongo.NewTracker()
	assert.Equal(t, mongo.Disconnected, tracker.State())
	assert.False(t, tracker.Ready())

	tracker.Set(mongo.Connecting)
	assert.False(t, tracker.Ready())

	tracker.Set(mongo.Connected)
	assert.True(t, tracker.Ready())
}

func TestTracker_Nil(t *testing.T) {
	t.Parallel()

	var tracker *mongo.Tracker
	tracker.Set(mongo.Connected)
	assert.Equal(t, mongo.Disconnected, tracker.State())
	assert.False(t, tracker.Ready())
}

func topology(kind string, servers ...string) *event.TopologyDescriptionChangedEvent {
	desc := event.TopologyDescription{Kind: kind}
	for _, k := range servers {
		desc.Servers = append(desc.Servers, event.ServerDescription{Kind: k})
	}
	return &event.TopologyDescriptionChangedEvent{NewDescription: desc}
}

func TestTracker_ServerMonitor(t *testing.T) {
	t.Parallel()

	tracker := mongo.NewTracker()
	monitor := tracker.ServerMonitor()

	monitor.TopologyDescriptionChanged(topology("ReplicaSetWithPrimary", "RSPrimary", "RSSecondary", "RSSecondary"))
	assert.True(t, tracker.Ready())

	// A secondary dropping out leaves the primary selectable.
	monitor.TopologyDescriptionChanged(topology("ReplicaSetWithPrimary", "RSPrimary", "RSSecondary", "Unknown"))
	assert.True(t, tracker.Ready())

	// Healthy secondaries do not stand in for a missing primary.
	monitor.TopologyDescriptionChanged(topology("ReplicaSetNoPrimary", "Unknown", "RSSecondary", "RSSecondary"))
	assert.False(t, tracker.Ready())
	assert.Equal(t, mongo.Disconnected, tracker.State())

	monitor.TopologyDescriptionChanged(topology("ReplicaSetWithPrimary", "RSSecondary", "RSPrimary", "RSSecondary"))
	assert.True(t, tracker.Ready())

	monitor.TopologyClosed(&event.TopologyClosedEvent{})
	assert.Equal(t, mongo.Disconnected, tracker.State())
}

func TestWritable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		desc *event.TopologyDescriptionChangedEvent
		want bool
	}{
		{"standalone", topology("Single", "Standalone"), true},
		{"direct to secondary", topology("Single", "RSSecondary"), true},
		{"single unknown", topology("Single", "Unknown"), false},
		{"sharded", topology("Sharded", "Mongos", "Unknown"), true},
		{"load balanced", topology("LoadBalanced", "LoadBalancer"), true},
		{"primary", topology("ReplicaSetWithPrimary", "RSSecondary", "RSPrimary"), true},
		{"secondaries only", topology("ReplicaSetNoPrimary", "RSSecondary", "RSArbiter"), false},
		{"all unknown", topology("Unknown", "Unknown", "Unknown"), false},
		{"no servers", topology("Unknown"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mongo.Writable(tt.desc.NewDescription))
		})
	}
}

func TestNew_MissingURL(t *testing.T) {
	t.Parallel()

	client, err := mongo.New(context.Background(), mongo.Config{}, mongo.NewTracker())
	assert.ErrorIs(t, err, mongo.ErrMissingURL)
	assert.Nil(t, client)
}

func TestNew_Unreachable(t *testing.T) {
	t.Parallel()

	tracker := mongo.NewTracker()
	cfg := mongo.Config{
		ConnectionURL:  "mongodb://127.0.0.1:1/?directConnection=true",
		ConnectTimeout: 200 * time.Millisecond,
		MaxPoolSize:    1,
		RetryAttempts:  2,
		RetryInterval:  10 * time.Millisecond,
	}

	client, err := mongo.New(context.Background(), cfg, tracker)
	require.Error(t, err)
	assert.ErrorIs(t, err, mongo.ErrFailedToConnectToMongo)
	assert.Contains(t, err.Error(), "giving up after 2 attempts")
	assert.Nil(t, client)
	assert.Equal(t, mongo.Disconnected, tracker.State())
}

func TestNew_ContextCanceledBetweenAttempts(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	cfg := mongo.Config{
		ConnectionURL:  "mongodb://127.0.0.1:1/?directConnection=true",
		ConnectTimeout: 100 * time.Millisecond,
		RetryAttempts:  5,
		RetryInterval:  time.Minute,
	}

	_, err := mongo.New(ctx, cfg, nil)
	assert.ErrorIs(t, err, mongo.ErrFailedToConnectToMongo)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClose_NilClient(t *testing.T) {
	t.Parallel()

	tracker := mongo.NewTracker()
	tracker.Set(mongo.Connected)
	require.NoError(t, mongo.Close(context.Background(), nil, tracker))
	assert.Equal(t, mongo.Disconnected, tracker.State())
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, mongo.Healthcheck(nil)(context.Background()), mongo.ErrHealthcheckFailed)
}
