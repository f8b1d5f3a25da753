package ofximport

import (
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Find returns the first descendant of node with the given tag name, depth first.
// Tag names are matched case-insensitively.
func Find(node *Node, name string) *Node {
	if node == nil {
		return nil
	}
	name = strings.ToLower(name)
	var found *Node
	for _, c := range node.Children {
		c.Walk(func(n *Node) bool {
			if n.Name == name {
				found = n
			}
			return found == nil
		})
		if found != nil {
			break
		}
	}
	return found
}

// FindAll returns every descendant of node with the given tag name in document order.
func FindAll(node *Node, name string) []*Node {
	if node == nil {
		return nil
	}
	name = strings.ToLower(name)
	var result []*Node
	for _, c := range node.Children {
		c.Walk(func(n *Node) bool {
			if n.Name == name {
				result = append(result, n)
			}
			return true
		})
	}
	return result
}

// FindChild returns the text of the first descendant of node with the given tag name.
// The second return value is false if there is no such descendant.
func FindChild(node *Node, name string) (string, bool) {
	n := Find(node, name)
	if n == nil {
		return "", false
	}
	return n.Text, true
}

// FindChildAs returns the text of the first descendant with the given tag name passed through
// convert. An absent tag returns the zero value and false without calling convert.
func FindChildAs[T any](node *Node, name string, convert func(string) (T, error)) (T, bool, error) {
	var zero T
	text, found := FindChild(node, name)
	if !found {
		return zero, false, nil
	}
	v, err := convert(text)
	if err != nil {
		return zero, true, err
	}
	return v, true, nil
}

// AsText returns the trimmed text of the named descendant, or "" if absent.
func AsText(node *Node, name string) string {
	text, _ := FindChild(node, name)
	return strings.TrimSpace(text)
}

// AsTime returns the named descendant parsed as an OFX date time.
func AsTime(node *Node, name string) (civil.DateTime, bool, error) {
	return FindChildAs(node, name, ParseTime)
}

// AsDate returns the date of the named descendant parsed as an OFX date time.
func AsDate(node *Node, name string) (civil.Date, bool, error) {
	return FindChildAs(node, name, ParseDate)
}

// AsDecimal returns the named descendant parsed as an exact decimal number.
func AsDecimal(node *Node, name string) (decimal.Decimal, bool, error) {
	return FindChildAs(node, name, ParseAmount)
}

// ParseAmount parses an OFX amount. Some institutions use a decimal comma, which is accepted
// when the value holds no decimal point.
func ParseAmount(s string) (decimal.Decimal, error) {
	v := strings.TrimSpace(s)
	if strings.Contains(v, ",") && !strings.Contains(v, ".") {
		v = strings.Replace(v, ",", ".", 1)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, &MalformedAmountError{Value: s, Err: err}
	}
	return d, nil
}
