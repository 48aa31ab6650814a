package domain

// TreeNode places a visit record in the report tree for navigation
type TreeNode struct {
	Record     VisitRecord
	Children   []*TreeNode
	IsExpanded bool
	Parent     *TreeNode
}

// BuildTree rebuilds the supply chain tree from records in traversal order.
// Every node starts expanded. Returns nil for an empty report.
func BuildTree(records []VisitRecord) *TreeNode {
	if len(records) == 0 {
		return nil
	}

	root := &TreeNode{Record: records[0], IsExpanded: true}
	// path[d] is the most recent node at depth d
	path := []*TreeNode{root}

	for _, rec := range records[1:] {
		depth := min(rec.Depth, len(path))
		if depth < 1 {
			depth = 1
		}
		parent := path[depth-1]
		node := &TreeNode{Record: rec, IsExpanded: true, Parent: parent}
		parent.Children = append(parent.Children, node)

		path = append(path[:depth], node)
	}
	return root
}

// Flatten returns all visible nodes in the tree (for list rendering)
func (n *TreeNode) Flatten() []*TreeNode {
	var result []*TreeNode
	n.flattenRecursive(&result)
	return result
}

func (n *TreeNode) flattenRecursive(result *[]*TreeNode) {
	*result = append(*result, n)
	if n.IsExpanded {
		for _, child := range n.Children {
			child.flattenRecursive(result)
		}
	}
}

// Depth returns the depth of this node in the tree
func (n *TreeNode) Depth() int {
	depth := 0
	current := n.Parent
	for current != nil {
		depth++
		current = current.Parent
	}
	return depth
}

// IsLeaf reports whether the node has no children in the report
func (n *TreeNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// Toggle expands or collapses the node
func (n *TreeNode) Toggle() {
	n.IsExpanded = !n.IsExpanded
}

// Expand sets the node as expanded
func (n *TreeNode) Expand() {
	n.IsExpanded = true
}

// Collapse sets the node as collapsed
func (n *TreeNode) Collapse() {
	n.IsExpanded = false
}
