package hierarchy

import "github.com/spec-kit/hr-portal/internal/domain"

// IsDescendant reports whether targetID appears in node's subtree, node excluded.
func IsDescendant(node *ChartNode, targetID string) bool {
	if node == nil {
		return false
	}
	for _, child := range node.Children {
		if child.Employee.ID == targetID || IsDescendant(child, targetID) {
			return true
		}
	}
	return false
}

// SupervisorCandidates lists the chart employees that may be offered as the new
// supervisor of employeeID: everyone in pre-order except the employee and its
// current descendants. The result only narrows a selection; writes are not checked
// against it.
func SupervisorCandidates(f *Forest, employeeID string) []domain.Employee {
	self, _ := f.Node(employeeID)
	out := make([]domain.Employee, 0, f.Len())
	for _, n := range f.Flatten() {
		id := n.Employee.ID
		if id == employeeID || IsDescendant(self, id) {
			continue
		}
		out = append(out, n.Employee)
	}
	return out
}
