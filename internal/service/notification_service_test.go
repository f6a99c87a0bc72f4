package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-portal/internal/config"
	"github.com/spec-kit/hr-portal/internal/events"
)

type fakePublisher struct {
	channel  string
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, channel string, payload []byte) error {
	p.channel = channel
	p.payloads = append(p.payloads, payload)
	return p.err
}

func TestNotificationService_ForwardsEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	publisher := &fakePublisher{}
	svc := NewNotificationService(dispatcher, publisher, zap.NewNop(), config.EventsConfig{RedisChannel: "hr:employees"})
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:         "evt-1",
		Type:       events.EventEmployeeDeleted,
		EmployeeID: "emp-1",
		Payload:    events.EmployeeDeletedPayload{FullName: "Bob B", OrphanedCount: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, "hr:employees", publisher.channel)
	require.Len(t, publisher.payloads, 1)
	var body map[string]any
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &body))
	assert.Equal(t, "employee.deleted", body["type"])
	assert.Equal(t, "emp-1", body["employee_id"])
	assert.Equal(t, float64(2), body["payload"].(map[string]any)["orphaned_count"])
}

func TestNotificationService_PublisherFailure(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	publisher := &fakePublisher{err: errors.New("broker down")}
	NewNotificationService(dispatcher, publisher, nil, config.EventsConfig{RedisChannel: "hr:employees"}).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventEmployeeCreated, EmployeeID: "emp-1"})
	assert.ErrorContains(t, err, "broker down")
}

func TestNotificationService_NoChannel(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	publisher := &fakePublisher{}
	NewNotificationService(dispatcher, publisher, nil, config.EventsConfig{}).RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventEmployeeUpdated}))
	assert.Empty(t, publisher.payloads)
}
