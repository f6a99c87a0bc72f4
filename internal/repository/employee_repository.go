package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hr-portal/internal/domain"
)

// EmployeeRepository is the employee directory. List returns records in directory
// order, which is creation order.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
	Count(ctx context.Context) (int, error)
}

// EmployeeFilter narrows directory listings. Search matches full name or email,
// case-insensitively.
type EmployeeFilter struct {
	Search string
	Status *domain.EmployeeStatus
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository instantiates the Postgres directory.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeColumns = `id, first_name, last_name, email, phone, position, department, roles,
        supervisor_name, status, password_hash, created_at, updated_at`

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (first_name, last_name, email, phone, position, department, roles,
            supervisor_name, status, password_hash)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.Phone,
		employee.Position,
		employee.Department,
		rolesToStrings(employee.Roles),
		employee.SupervisorName,
		employee.Status,
		employee.PasswordHash,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	if _, err := uuid.Parse(employee.ID); err != nil {
		return domain.ErrEmployeeNotFound
	}
	const query = `
        UPDATE employees
        SET first_name=$1, last_name=$2, email=$3, phone=$4, position=$5, department=$6, roles=$7,
            supervisor_name=$8, status=$9, password_hash=$10, updated_at=NOW()
        WHERE id=$11
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.Phone,
		employee.Position,
		employee.Department,
		rolesToStrings(employee.Roles),
		employee.SupervisorName,
		employee.Status,
		employee.PasswordHash,
		employee.ID,
	).Scan(&employee.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrEmployeeNotFound
	}
	return err
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrEmployeeNotFound
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrEmployeeNotFound
	}
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id=$1`
	return r.getOne(ctx, query, id)
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email=$1`
	return r.getOne(ctx, query, email)
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	args := []any{}
	clauses := []string{}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, likePattern(search))
		clauses = append(clauses, fmt.Sprintf(
			`(LOWER(first_name || ' ' || last_name) LIKE $%d ESCAPE '\' OR LOWER(email) LIKE $%d ESCAPE '\')`, len(args), len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY seq ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *employee)
	}
	return result, rows.Err()
}

func (r *employeeRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n)
	return n, err
}

func (r *employeeRepository) getOne(ctx context.Context, query string, arg any) (*domain.Employee, error) {
	employee, err := scanEmployee(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEmployeeNotFound
	}
	return employee, err
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var (
		employee domain.Employee
		roles    []string
		status   string
	)
	if err := row.Scan(
		&employee.ID,
		&employee.FirstName,
		&employee.LastName,
		&employee.Email,
		&employee.Phone,
		&employee.Position,
		&employee.Department,
		&roles,
		&employee.SupervisorName,
		&status,
		&employee.PasswordHash,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	); err != nil {
		return nil, err
	}
	employee.Roles = stringsToRoles(roles)
	employee.Status = domain.EmployeeStatus(status)
	return &employee, nil
}

func rolesToStrings(roles []domain.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}

func stringsToRoles(values []string) []domain.Role {
	out := make([]domain.Role, 0, len(values))
	for _, v := range values {
		out = append(out, domain.Role(v))
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// likePattern builds a case-folded substring pattern in which LIKE wildcards
// in search match literally.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}
