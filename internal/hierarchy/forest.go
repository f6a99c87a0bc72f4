package hierarchy

import "github.com/spec-kit/hr-portal/internal/domain"

// ChartNode is one employee on the chart. ParentID is the resolved supervisor id,
// empty for roots.
type ChartNode struct {
	Employee domain.Employee
	ParentID string
	Children []*ChartNode
}

// Forest is the assembled chart: roots in directory order plus an id index.
type Forest struct {
	Roots []*ChartNode
	index map[string]*ChartNode
}

// Build filters employees to the eligible subset, resolves supervisor names and
// assembles the forest. Roots and children keep the order of the input.
//
// A resolved link is dropped, and the employee placed as a root, when accepting it
// would close a loop through links already accepted. Stored names can form such
// loops because the supervisor guard only restricts choices offered to callers.
func Build(employees []domain.Employee) *Forest {
	eligible := Eligible(employees)
	resolver := NewResolver(eligible)

	f := &Forest{
		Roots: make([]*ChartNode, 0),
		index: make(map[string]*ChartNode, len(eligible)),
	}

	nodes := make([]*ChartNode, 0, len(eligible))
	for _, e := range eligible {
		if _, dup := f.index[e.ID]; dup {
			continue
		}
		node := &ChartNode{Employee: e, Children: make([]*ChartNode, 0)}
		f.index[e.ID] = node
		nodes = append(nodes, node)
	}

	parentOf := make(map[string]string, len(nodes))
	for _, node := range nodes {
		id := node.Employee.ID
		supervisor, ok := resolver.Resolve(node.Employee)
		if !ok || reaches(parentOf, supervisor.ID, id) {
			f.Roots = append(f.Roots, node)
			continue
		}
		parent := f.index[supervisor.ID]
		parent.Children = append(parent.Children, node)
		node.ParentID = parent.Employee.ID
		parentOf[id] = parent.Employee.ID
	}

	return f
}

// reaches walks accepted parent links upward from start looking for target.
// Accepted links never form a loop, so the walk terminates.
func reaches(parentOf map[string]string, start, target string) bool {
	for cur := start; ; {
		if cur == target {
			return true
		}
		next, ok := parentOf[cur]
		if !ok {
			return false
		}
		cur = next
	}
}

// Node returns the chart node for id.
func (f *Forest) Node(id string) (*ChartNode, bool) {
	if f == nil {
		return nil, false
	}
	n, ok := f.index[id]
	return n, ok
}

// Len is the number of employees on the chart.
func (f *Forest) Len() int {
	if f == nil {
		return 0
	}
	return len(f.index)
}

// Flatten lists every node in pre-order: each root followed by its subtree.
func (f *Forest) Flatten() []*ChartNode {
	if f == nil {
		return nil
	}
	out := make([]*ChartNode, 0, len(f.index))
	var walk func(nodes []*ChartNode)
	walk = func(nodes []*ChartNode) {
		for _, n := range nodes {
			out = append(out, n)
			walk(n.Children)
		}
	}
	walk(f.Roots)
	return out
}
