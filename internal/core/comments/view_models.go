package comments

// Node is the nested view of a comment: the comment itself plus its replies
// in the order they were posted.
type Node struct {
	Comment
	Replies []*Node `json:"replies"`
}

// Count returns the number of comments in a forest of nodes, replies included.
func Count(nodes []*Node) int {
	total := 0
	stack := append([]*Node(nil), nodes...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		total++
		stack = append(stack, n.Replies...)
	}
	return total
}
