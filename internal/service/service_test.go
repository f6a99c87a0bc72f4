package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/hr-portal/internal/config"
	"github.com/spec-kit/hr-portal/internal/domain"
	"github.com/spec-kit/hr-portal/internal/events"
	"github.com/spec-kit/hr-portal/internal/repository"
	apperrors "github.com/spec-kit/hr-portal/pkg/util/errorutil"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 15,
			BcryptCost:            bcrypt.MinCost,
			PlaceholderPassword:   "password123",
		},
		Events: config.EventsConfig{RedisChannel: "test:employees", PublishTimeoutSeconds: 1},
	}
}

type recorder struct {
	events []events.Event
}

func (r *recorder) handle(_ context.Context, e events.Event) error {
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []events.EventType {
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func newRecordingDispatcher() (events.Dispatcher, *recorder) {
	d := events.NewInMemoryDispatcher()
	rec := &recorder{}
	d.Subscribe(events.EventEmployeeCreated, rec.handle)
	d.Subscribe(events.EventEmployeeUpdated, rec.handle)
	d.Subscribe(events.EventEmployeeDeleted, rec.handle)
	return d, rec
}

func seed(t *testing.T, repo repository.EmployeeRepository, first, last string, supervisor string, roles ...domain.Role) *domain.Employee {
	t.Helper()
	e := &domain.Employee{
		FirstName: first,
		LastName:  last,
		Email:     first + "." + last + "@example.com",
		Roles:     roles,
		Status:    domain.EmployeeStatusActive,
	}
	if supervisor != "" {
		e.SupervisorName = &supervisor
	}
	require.NoError(t, repo.Create(context.Background(), e))
	return e
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

func strPtr(s string) *string {
	return &s
}
