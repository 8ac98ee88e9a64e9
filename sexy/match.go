package sexy

import "fmt"

// Wildcard is the pattern symbol that matches any single node.
const Wildcard = "_"

// MismatchError describes the first place where a pattern and a datum
// disagree.
type MismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("at %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// Match reports whether actual has the shape described by pattern.
//
// Inside a pattern, the symbol _ matches any node and an ellipsis inside a
// list matches any run of items, including none. Everything else must be
// equal.
func Match(pattern, actual *Node) error {
	return match(pattern, actual, "root")
}

func match(pattern, actual *Node, path string) error {
	if pattern.Type == NodeSymbol && pattern.Text == Wildcard {
		return nil
	}
	if pattern.Type != actual.Type {
		return &MismatchError{Path: path, Expected: pattern.String(), Actual: actual.String()}
	}
	if pattern.Type != NodeList {
		if pattern.Text != actual.Text {
			return &MismatchError{Path: path, Expected: pattern.String(), Actual: actual.String()}
		}
		return nil
	}
	if !matchItems(pattern.Items, actual.Items, path, 0) {
		// Locate the first differing item for the error.
		return describeListMismatch(pattern, actual, path)
	}
	return nil
}

func matchItems(pattern, actual []*Node, path string, offset int) bool {
	if len(pattern) == 0 {
		return len(actual) == 0
	}
	if pattern[0].Type == NodeEllipsis {
		for skip := 0; skip <= len(actual); skip++ {
			if matchItems(pattern[1:], actual[skip:], path, offset+skip) {
				return true
			}
		}
		return false
	}
	if len(actual) == 0 {
		return false
	}
	if match(pattern[0], actual[0], fmt.Sprintf("%s[%d]", path, offset)) != nil {
		return false
	}
	return matchItems(pattern[1:], actual[1:], path, offset+1)
}

func describeListMismatch(pattern, actual *Node, path string) error {
	for i, p := range pattern.Items {
		if p.Type == NodeEllipsis {
			break
		}
		if i >= len(actual.Items) {
			return &MismatchError{Path: path, Expected: pattern.String(), Actual: actual.String()}
		}
		if err := match(p, actual.Items[i], fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return &MismatchError{Path: path, Expected: pattern.String(), Actual: actual.String()}
}
