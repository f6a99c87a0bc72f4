package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-portal/internal/auth"
	"github.com/spec-kit/hr-portal/internal/config"
	"github.com/spec-kit/hr-portal/internal/domain"
	"github.com/spec-kit/hr-portal/internal/events"
	"github.com/spec-kit/hr-portal/internal/hierarchy"
	"github.com/spec-kit/hr-portal/internal/observability"
	"github.com/spec-kit/hr-portal/internal/repository"
	apperrors "github.com/spec-kit/hr-portal/pkg/util/errorutil"
)

// OrgChartService builds the organization chart and applies chart edits to the directory.
type OrgChartService struct {
	employees           repository.EmployeeRepository
	dispatcher          events.Dispatcher
	metrics             *observability.Metrics
	logger              *zap.Logger
	publishTimeout      time.Duration
	bcryptCost          int
	placeholderPassword string
	now                 func() time.Time
}

// OrgChartDependencies encapsulates collaborators required by the chart service.
type OrgChartDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	Dispatcher   events.Dispatcher
	Metrics      *observability.Metrics
	Logger       *zap.Logger
}

// EmployeeInput carries the fields of a chart add. An empty SuperiorID means no supervisor.
type EmployeeInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Position   string
	Department string
	SuperiorID string
}

// EmployeePatch carries a chart edit. Nil fields are left alone; an empty string
// clears an optional field. A non-nil SuperiorID recomputes the supervisor name,
// and an empty one clears it.
type EmployeePatch struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Phone      *string
	Position   *string
	Department *string
	SuperiorID *string
}

// EmployeeView is an employee together with the parent it resolves to on the chart.
type EmployeeView struct {
	Employee   domain.Employee
	SuperiorID string
}

// NewOrgChartService constructs the service.
func NewOrgChartService(cfg config.Config, deps OrgChartDependencies) *OrgChartService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrgChartService{
		employees:           deps.EmployeeRepo,
		dispatcher:          deps.Dispatcher,
		metrics:             deps.Metrics,
		logger:              logger,
		publishTimeout:      cfg.Events.PublishTimeout(),
		bcryptCost:          cfg.Auth.BcryptCost,
		placeholderPassword: cfg.Auth.PlaceholderPassword,
		now:                 time.Now,
	}
}

func requireAdmin(actor *domain.Employee) error {
	if actor == nil || !actor.HasRole(domain.RoleAdmin) {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}

// Chart rebuilds the forest from the current directory.
func (s *OrgChartService) Chart(ctx context.Context) (*hierarchy.Forest, error) {
	list, err := s.employees.List(ctx, repository.EmployeeFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.build(list), nil
}

func (s *OrgChartService) build(list []domain.Employee) *hierarchy.Forest {
	forest := hierarchy.Build(list)
	s.metrics.RecordChartBuild(forest.Len(), len(forest.Roots))
	return forest
}

// SupervisorCandidates lists who may be offered as the new supervisor of id.
func (s *OrgChartService) SupervisorCandidates(ctx context.Context, id string) ([]EmployeeView, error) {
	list, err := s.employees.List(ctx, repository.EmployeeFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !containsEmployee(list, id) {
		return nil, apperrors.NewNotFound("employee", map[string]any{"id": id})
	}
	forest := s.build(list)
	candidates := hierarchy.SupervisorCandidates(forest, id)
	out := make([]EmployeeView, 0, len(candidates))
	for _, c := range candidates {
		v := EmployeeView{Employee: c}
		if node, ok := forest.Node(c.ID); ok {
			v.SuperiorID = node.ParentID
		}
		out = append(out, v)
	}
	return out, nil
}

// AddEmployee creates a chart employee with the MANAGER role and a placeholder credential.
func (s *OrgChartService) AddEmployee(ctx context.Context, actor *domain.Employee, in EmployeeInput) (*EmployeeView, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := requireNames(&in.FirstName, &in.LastName); err != nil {
		return nil, err
	}
	supervisorName, err := s.supervisorName(ctx, in.SuperiorID)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(s.placeholderPassword, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	employee := &domain.Employee{
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		Email:          strings.TrimSpace(in.Email),
		Phone:          optional(in.Phone),
		Position:       optional(in.Position),
		Department:     optional(in.Department),
		Roles:          []domain.Role{domain.RoleManager},
		SupervisorName: supervisorName,
		Status:         domain.EmployeeStatusActive,
		PasswordHash:   hash,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("employee added to chart",
		zap.String("employee_id", employee.ID),
		zap.String("actor_id", actor.ID),
		zap.Stringp("supervisor_name", employee.SupervisorName))
	s.publish(ctx, events.EventEmployeeCreated, employee.ID, actor, events.EmployeeChangedPayload{
		FullName:       employee.FullName(),
		SupervisorName: employee.SupervisorName,
	})
	return s.view(ctx, employee)
}

// UpdateEmployee applies the fields present in patch.
func (s *OrgChartService) UpdateEmployee(ctx context.Context, actor *domain.Employee, id string, patch EmployeePatch) (*EmployeeView, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := requireNames(patch.FirstName, patch.LastName); err != nil {
		return nil, err
	}
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	var changed []string
	if patch.FirstName != nil {
		employee.FirstName = strings.TrimSpace(*patch.FirstName)
		changed = append(changed, "firstName")
	}
	if patch.LastName != nil {
		employee.LastName = strings.TrimSpace(*patch.LastName)
		changed = append(changed, "lastName")
	}
	if patch.Email != nil {
		employee.Email = strings.TrimSpace(*patch.Email)
		changed = append(changed, "email")
	}
	if patch.Phone != nil {
		employee.Phone = optional(*patch.Phone)
		changed = append(changed, "phone")
	}
	if patch.Position != nil {
		employee.Position = optional(*patch.Position)
		changed = append(changed, "position")
	}
	if patch.Department != nil {
		employee.Department = optional(*patch.Department)
		changed = append(changed, "department")
	}
	if patch.SuperiorID != nil {
		name, err := s.supervisorName(ctx, *patch.SuperiorID)
		if err != nil {
			return nil, err
		}
		employee.SupervisorName = name
		changed = append(changed, "superiorId")
	}

	if err := s.employees.Update(ctx, employee); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("employee updated",
		zap.String("employee_id", employee.ID),
		zap.String("actor_id", actor.ID),
		zap.Strings("fields", changed))
	s.publish(ctx, events.EventEmployeeUpdated, employee.ID, actor, events.EmployeeChangedPayload{
		FullName:       employee.FullName(),
		SupervisorName: employee.SupervisorName,
		ChangedFields:  changed,
	})
	return s.view(ctx, employee)
}

// DeleteEmployee removes the employee. Reports are not re-parented.
func (s *OrgChartService) DeleteEmployee(ctx context.Context, actor *domain.Employee, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	list, err := s.employees.List(ctx, repository.EmployeeFilter{})
	if err != nil {
		return apperrors.MapError(err)
	}
	orphaned := countNamedReports(list, employee.FullName())

	if err := s.employees.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}

	s.logger.Info("employee deleted",
		zap.String("employee_id", id),
		zap.String("actor_id", actor.ID),
		zap.Int("orphaned_reports", orphaned))
	s.publish(ctx, events.EventEmployeeDeleted, id, actor, events.EmployeeDeletedPayload{
		FullName:      employee.FullName(),
		OrphanedCount: orphaned,
	})
	return nil
}

// ListEmployees returns directory records matching search.
func (s *OrgChartService) ListEmployees(ctx context.Context, search string) ([]domain.Employee, error) {
	list, err := s.employees.List(ctx, repository.EmployeeFilter{Search: search})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// GetEmployee fetches one directory record.
func (s *OrgChartService) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return employee, nil
}

// supervisorName converts a superior id into the display name stored on the record.
// The superior's roles are not checked; an ineligible superior is stored and then
// fails to resolve on the next build.
func (s *OrgChartService) supervisorName(ctx context.Context, superiorID string) (*string, error) {
	superiorID = strings.TrimSpace(superiorID)
	if superiorID == "" {
		return nil, nil
	}
	superior, err := s.employees.GetByID(ctx, superiorID)
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		return nil, apperrors.NewNotFound("superior", map[string]any{"superiorId": superiorID})
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !hierarchy.IsEligible(*superior) {
		s.logger.Warn("supervisor lacks a chart role; link will not resolve",
			zap.String("superior_id", superiorID))
	}
	name := superior.FullName()
	return &name, nil
}

// view resolves where employee currently sits on the chart.
func (s *OrgChartService) view(ctx context.Context, employee *domain.Employee) (*EmployeeView, error) {
	forest, err := s.Chart(ctx)
	if err != nil {
		return nil, err
	}
	v := &EmployeeView{Employee: *employee}
	if node, ok := forest.Node(employee.ID); ok {
		v.SuperiorID = node.ParentID
	}
	return v, nil
}

// publish delivers the event outside the request's cancellation and bounded by
// publishTimeout. Delivery failures are logged only.
func (s *OrgChartService) publish(ctx context.Context, eventType events.EventType, employeeID string, actor *domain.Employee, payload any) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		EmployeeID: employeeID,
		Timestamp:  s.now().UTC(),
		Payload:    payload,
	}
	if actor != nil {
		actorID := actor.ID
		event.ActorID = &actorID
	}
	pubCtx, cancel := s.publishContext(ctx)
	defer cancel()
	if err := s.dispatcher.Publish(pubCtx, event); err != nil {
		s.logger.Warn("event delivery failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}

// requireNames rejects first or last names that are blank once trimmed. Nil is skipped.
func requireNames(firstName, lastName *string) error {
	details := map[string]any{}
	if firstName != nil && strings.TrimSpace(*firstName) == "" {
		details["firstName"] = "notblank"
	}
	if lastName != nil && strings.TrimSpace(*lastName) == "" {
		details["lastName"] = "notblank"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details)
	}
	return nil
}

func (s *OrgChartService) publishContext(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if s.publishTimeout <= 0 {
		return detached, func() {}
	}
	return context.WithTimeout(detached, s.publishTimeout)
}

func containsEmployee(list []domain.Employee, id string) bool {
	for _, e := range list {
		if e.ID == id {
			return true
		}
	}
	return false
}

func countNamedReports(list []domain.Employee, fullName string) int {
	n := 0
	for _, e := range list {
		if e.SupervisorName != nil && strings.TrimSpace(*e.SupervisorName) == fullName {
			n++
		}
	}
	return n
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
