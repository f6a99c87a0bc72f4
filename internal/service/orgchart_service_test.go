package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hr-portal/internal/auth"
	"github.com/spec-kit/hr-portal/internal/domain"
	"github.com/spec-kit/hr-portal/internal/events"
	"github.com/spec-kit/hr-portal/internal/repository"
)

type chartFixture struct {
	svc   *OrgChartService
	repo  *repository.InMemoryEmployeeRepository
	rec   *recorder
	admin *domain.Employee
	alice *domain.Employee
	bob   *domain.Employee
	carol *domain.Employee
}

func newChartFixture(t *testing.T) chartFixture {
	t.Helper()
	repo := repository.NewInMemoryEmployeeRepository()
	dispatcher, rec := newRecordingDispatcher()
	f := chartFixture{
		svc: NewOrgChartService(testConfig(), OrgChartDependencies{
			EmployeeRepo: repo,
			Dispatcher:   dispatcher,
		}),
		repo: repo,
		rec:  rec,
	}
	f.admin = seed(t, repo, "Root", "Admin", "", domain.RoleAdmin)
	f.alice = seed(t, repo, "Alice", "A", "", domain.RoleManager)
	f.bob = seed(t, repo, "Bob", "B", "Alice A", domain.RoleManager)
	f.carol = seed(t, repo, "Carol", "C", "Bob B", domain.RoleAdmin)
	return f
}

func rootIDs(t *testing.T, svc *OrgChartService) []string {
	t.Helper()
	forest, err := svc.Chart(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(forest.Roots))
	for _, r := range forest.Roots {
		ids = append(ids, r.Employee.ID)
	}
	return ids
}

func TestOrgChartService_Chart(t *testing.T) {
	f := newChartFixture(t)
	seed(t, f.repo, "Dan", "D", "Alice A", domain.RoleUser)

	forest, err := f.svc.Chart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, forest.Len())
	assert.Equal(t, []string{f.admin.ID, f.alice.ID}, rootIDs(t, f.svc))

	bob, ok := forest.Node(f.bob.ID)
	require.True(t, ok)
	assert.Equal(t, f.alice.ID, bob.ParentID)
	require.Len(t, bob.Children, 1)
	assert.Equal(t, f.carol.ID, bob.Children[0].Employee.ID)
}

func TestOrgChartService_AddEmployee(t *testing.T) {
	f := newChartFixture(t)
	ctx := context.Background()

	view, err := f.svc.AddEmployee(ctx, f.admin, EmployeeInput{
		FirstName:  " Dana ",
		LastName:   "Scully",
		Email:      "dana@example.com",
		Phone:      "  ",
		Position:   "Agent",
		SuperiorID: f.bob.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, f.bob.ID, view.SuperiorID)
	assert.Equal(t, "Dana", view.Employee.FirstName)
	assert.Nil(t, view.Employee.Phone)
	require.NotNil(t, view.Employee.Position)
	assert.Equal(t, "Agent", *view.Employee.Position)

	stored, err := f.repo.GetByID(ctx, view.Employee.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Role{domain.RoleManager}, stored.Roles)
	assert.Equal(t, domain.EmployeeStatusActive, stored.Status)
	require.NotNil(t, stored.SupervisorName)
	assert.Equal(t, "Bob B", *stored.SupervisorName)
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "password123"))

	forest, err := f.svc.Chart(ctx)
	require.NoError(t, err)
	bob, _ := forest.Node(f.bob.ID)
	assert.Len(t, bob.Children, 2)

	assert.Equal(t, []events.EventType{events.EventEmployeeCreated}, f.rec.types())
	require.NotNil(t, f.rec.events[0].ActorID)
	assert.Equal(t, f.admin.ID, *f.rec.events[0].ActorID)
}

func TestOrgChartService_AddEmployeeWithoutSuperiorIsRoot(t *testing.T) {
	f := newChartFixture(t)

	view, err := f.svc.AddEmployee(context.Background(), f.admin, EmployeeInput{
		FirstName: "Eve",
		LastName:  "E",
		Email:     "eve@example.com",
	})
	require.NoError(t, err)
	assert.Empty(t, view.SuperiorID)
	assert.Contains(t, rootIDs(t, f.svc), view.Employee.ID)
}

func TestOrgChartService_AddEmployeeErrors(t *testing.T) {
	f := newChartFixture(t)
	ctx := context.Background()
	before, _ := f.repo.Count(ctx)

	_, err := f.svc.AddEmployee(ctx, f.alice, EmployeeInput{FirstName: "X", LastName: "Y", Email: "x@example.com"})
	assert.Equal(t, "FORBIDDEN", errorCode(t, err))

	_, err = f.svc.AddEmployee(ctx, nil, EmployeeInput{FirstName: "X", LastName: "Y", Email: "x@example.com"})
	assert.Equal(t, "FORBIDDEN", errorCode(t, err))

	_, err = f.svc.AddEmployee(ctx, f.admin, EmployeeInput{FirstName: "X", LastName: "Y", Email: "x@example.com", SuperiorID: "missing"})
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))

	_, err = f.svc.AddEmployee(ctx, f.admin, EmployeeInput{FirstName: "X", LastName: "Y", Email: f.bob.Email})
	assert.Equal(t, "CONFLICT", errorCode(t, err))

	after, _ := f.repo.Count(ctx)
	assert.Equal(t, before, after)
	assert.Empty(t, f.rec.events)
}

func TestOrgChartService_AddEmployeeUnderIneligibleSuperior(t *testing.T) {
	f := newChartFixture(t)
	user := seed(t, f.repo, "Uma", "U", "", domain.RoleUser)

	view, err := f.svc.AddEmployee(context.Background(), f.admin, EmployeeInput{
		FirstName:  "Vic",
		LastName:   "V",
		Email:      "vic@example.com",
		SuperiorID: user.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, view.Employee.SupervisorName)
	assert.Equal(t, "Uma U", *view.Employee.SupervisorName)
	assert.Empty(t, view.SuperiorID)
}

func TestOrgChartService_UpdateEmployee(t *testing.T) {
	f := newChartFixture(t)
	ctx := context.Background()

	view, err := f.svc.UpdateEmployee(ctx, f.admin, f.carol.ID, EmployeePatch{
		Position:   strPtr("CFO"),
		SuperiorID: strPtr(f.alice.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, view.SuperiorID)
	require.NotNil(t, view.Employee.Position)
	assert.Equal(t, "CFO", *view.Employee.Position)
	assert.Equal(t, "Carol", view.Employee.FirstName)

	view, err = f.svc.UpdateEmployee(ctx, f.admin, f.carol.ID, EmployeePatch{
		Position:   strPtr(""),
		SuperiorID: strPtr(""),
	})
	require.NoError(t, err)
	assert.Empty(t, view.SuperiorID)
	assert.Nil(t, view.Employee.Position)
	assert.Nil(t, view.Employee.SupervisorName)
	assert.Contains(t, rootIDs(t, f.svc), f.carol.ID)

	require.Len(t, f.rec.events, 2)
	payload, ok := f.rec.events[1].Payload.(events.EmployeeChangedPayload)
	require.True(t, ok)
	assert.Equal(t, []string{"position", "superiorId"}, payload.ChangedFields)
}

func TestOrgChartService_UpdateRenameDetachesReports(t *testing.T) {
	f := newChartFixture(t)

	_, err := f.svc.UpdateEmployee(context.Background(), f.admin, f.bob.ID, EmployeePatch{FirstName: strPtr("Robert")})
	require.NoError(t, err)

	assert.Equal(t, []string{f.admin.ID, f.alice.ID, f.carol.ID}, rootIDs(t, f.svc))
}

func TestOrgChartService_UpdateAcceptsDescendantSuperior(t *testing.T) {
	f := newChartFixture(t)
	ctx := context.Background()

	view, err := f.svc.UpdateEmployee(ctx, f.admin, f.alice.ID, EmployeePatch{SuperiorID: strPtr(f.carol.ID)})
	require.NoError(t, err)
	assert.Equal(t, f.carol.ID, view.SuperiorID)

	stored, err := f.repo.GetByID(ctx, f.alice.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SupervisorName)
	assert.Equal(t, "Carol C", *stored.SupervisorName)

	forest, err := f.svc.Chart(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{f.admin.ID, f.carol.ID}, rootIDs(t, f.svc))

	seen := map[string]int{}
	for _, node := range forest.Flatten() {
		seen[node.Employee.ID]++
	}
	assert.Equal(t, map[string]int{f.admin.ID: 1, f.alice.ID: 1, f.bob.ID: 1, f.carol.ID: 1}, seen)
}

func TestOrgChartService_RejectsBlankNames(t *testing.T) {
	f := newChartFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddEmployee(ctx, f.admin, EmployeeInput{
		FirstName: "   ",
		LastName:  "\t",
		Email:     "blank@example.com",
	})
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, err))

	_, err = f.svc.UpdateEmployee(ctx, f.admin, f.bob.ID, EmployeePatch{LastName: strPtr("  ")})
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, err))

	stored, err := f.repo.GetByID(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", stored.LastName)
	count, err := f.repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.Empty(t, f.rec.events)
}

func TestOrgChartService_PublishOutlivesRequestContext(t *testing.T) {
	repo := repository.NewInMemoryEmployeeRepository()
	dispatcher := events.NewInMemoryDispatcher()
	var deadlines []bool
	var errs []error
	dispatcher.Subscribe(events.EventEmployeeCreated, func(ctx context.Context, _ events.Event) error {
		_, ok := ctx.Deadline()
		deadlines = append(deadlines, ok)
		errs = append(errs, ctx.Err())
		return ctx.Err()
	})
	svc := NewOrgChartService(testConfig(), OrgChartDependencies{EmployeeRepo: repo, Dispatcher: dispatcher})
	admin := seed(t, repo, "Root", "Admin", "", domain.RoleAdmin)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	view, err := svc.AddEmployee(ctx, admin, EmployeeInput{FirstName: "Eve", LastName: "E", Email: "eve@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, view.Employee.ID)

	assert.Equal(t, []bool{true}, deadlines)
	assert.Equal(t, []error{nil}, errs)
}

func TestOrgChartService_UpdateEmployeeErrors(t *testing.T) {
	f := newChartFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpdateEmployee(ctx, f.admin, "missing", EmployeePatch{FirstName: strPtr("X")})
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))

	_, err = f.svc.UpdateEmployee(ctx, f.admin, f.carol.ID, EmployeePatch{
		Position:   strPtr("CFO"),
		SuperiorID: strPtr("missing"),
	})
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
	stored, _ := f.repo.GetByID(ctx, f.carol.ID)
	assert.Nil(t, stored.Position)

	_, err = f.svc.UpdateEmployee(ctx, f.admin, f.carol.ID, EmployeePatch{Email: strPtr(f.alice.Email)})
	assert.Equal(t, "CONFLICT", errorCode(t, err))

	_, err = f.svc.UpdateEmployee(ctx, f.bob, f.carol.ID, EmployeePatch{FirstName: strPtr("X")})
	assert.Equal(t, "FORBIDDEN", errorCode(t, err))
}

func TestOrgChartService_DeleteEmployee(t *testing.T) {
	f := newChartFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.DeleteEmployee(ctx, f.admin, f.bob.ID))

	assert.Equal(t, []string{f.admin.ID, f.alice.ID, f.carol.ID}, rootIDs(t, f.svc))
	stored, err := f.repo.GetByID(ctx, f.carol.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SupervisorName)
	assert.Equal(t, "Bob B", *stored.SupervisorName)

	require.Len(t, f.rec.events, 1)
	payload, ok := f.rec.events[0].Payload.(events.EmployeeDeletedPayload)
	require.True(t, ok)
	assert.Equal(t, 1, payload.OrphanedCount)
	assert.Equal(t, "Bob B", payload.FullName)

	err = f.svc.DeleteEmployee(ctx, f.admin, f.bob.ID)
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))

	err = f.svc.DeleteEmployee(ctx, f.alice, f.carol.ID)
	assert.Equal(t, "FORBIDDEN", errorCode(t, err))
}

func TestOrgChartService_SupervisorCandidates(t *testing.T) {
	f := newChartFixture(t)
	ctx := context.Background()

	candidates, err := f.svc.SupervisorCandidates(ctx, f.bob.ID)
	require.NoError(t, err)
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.Employee.ID)
	}
	assert.Equal(t, []string{f.admin.ID, f.alice.ID}, ids)
	assert.Empty(t, candidates[1].SuperiorID)

	candidates, err = f.svc.SupervisorCandidates(ctx, f.carol.ID)
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, f.alice.ID, candidates[2].SuperiorID)

	_, err = f.svc.SupervisorCandidates(ctx, "missing")
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}

func TestOrgChartService_ListAndGet(t *testing.T) {
	f := newChartFixture(t)
	ctx := context.Background()

	list, err := f.svc.ListEmployees(ctx, "")
	require.NoError(t, err)
	assert.Len(t, list, 4)

	got, err := f.svc.GetEmployee(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.FirstName)

	_, err = f.svc.GetEmployee(ctx, "missing")
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}
