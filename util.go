package ofximport

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// EscapeString returns the XML escaped equivalent of the plain text s. Characters outside the
// XML character range are replaced with U+FFFD.
func EscapeString(s string) string {
	var result strings.Builder
	// strings.Builder writes never fail.
	_ = xml.EscapeText(&result, []byte(s))
	return result.String()
}

// writeStartTag writes the opening tag for name to the given buffer.
func writeStartTag(name string, buff *bytes.Buffer) {
	buff.WriteByte('<')
	buff.WriteString(strings.ToUpper(name))
	buff.WriteByte('>')
}

// writeEndTag writes the closing tag for name to the given buffer.
func writeEndTag(name string, buff *bytes.Buffer) {
	buff.WriteString("</")
	buff.WriteString(strings.ToUpper(name))
	buff.WriteByte('>')
}

// writeNode writes the node, its text and children to the given buffer.
// The synthetic root has no name and only its children are written.
func writeNode(n *Node, buff *bytes.Buffer) {
	if n.Name != "" {
		writeStartTag(n.Name, buff)
	}
	if n.IsLeaf() {
		buff.WriteString(EscapeString(n.Text))
	}
	for _, c := range n.Children {
		writeNode(c, buff)
	}
	if n.Name != "" {
		writeEndTag(n.Name, buff)
	}
}
