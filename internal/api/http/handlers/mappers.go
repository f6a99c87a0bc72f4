package handlers

import (
	"github.com/spec-kit/hr-portal/internal/api/dto"
	"github.com/spec-kit/hr-portal/internal/domain"
	"github.com/spec-kit/hr-portal/internal/hierarchy"
	"github.com/spec-kit/hr-portal/internal/service"
)

func chartNodes(nodes []*hierarchy.ChartNode) []dto.ChartNodeResponse {
	out := make([]dto.ChartNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		resp := nodeResponse(n.Employee, n.ParentID)
		resp.Children = chartNodes(n.Children)
		out = append(out, resp)
	}
	return out
}

func viewResponse(v service.EmployeeView) dto.ChartNodeResponse {
	return nodeResponse(v.Employee, v.SuperiorID)
}

func nodeResponse(e domain.Employee, parentID string) dto.ChartNodeResponse {
	resp := dto.ChartNodeResponse{
		ID:         e.ID,
		Name:       e.FullName(),
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Phone:      deref(e.Phone),
		Position:   deref(e.Position),
		Department: deref(e.Department),
		Children:   []dto.ChartNodeResponse{},
	}
	if parentID != "" {
		resp.SuperiorID = &parentID
	}
	return resp
}

func employeeResponse(e domain.Employee) dto.EmployeeResponse {
	roles := make([]string, 0, len(e.Roles))
	for _, r := range e.Roles {
		roles = append(roles, string(r))
	}
	return dto.EmployeeResponse{
		ID:             e.ID,
		Name:           e.FullName(),
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Email:          e.Email,
		Phone:          e.Phone,
		Position:       e.Position,
		Department:     e.Department,
		Roles:          roles,
		Status:         string(e.Status),
		SupervisorName: e.SupervisorName,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
