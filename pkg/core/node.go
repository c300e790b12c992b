package core

// Node is a rendered table cell. Text is what the widget shows. A non-empty
// Full means Text is an abbreviation and the full value should be disclosed
// on hover (title attribute, tooltip, or equivalent).
type Node struct {
	Text string
	Full string
}

// TextNode wraps a plain display value in a Node.
func TextNode(s string) Node {
	return Node{Text: s}
}
