package ofximport

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/html/charset"
)

//go:generate mockgen -destination=mock_tree_builder_test.go -package=ofximport_test github.com/rockstardevs/ofximport TreeBuilder

// TreeBuilder builds a tag tree from OFX markup.
type TreeBuilder interface {
	Build(data []byte) *Node
}

type treeBuilder struct{}

var treeBuilderSingleton *treeBuilder
var initTreeBuilder sync.Once

// GetTreeBuilder returns the singleton instance of the tree builder.
func GetTreeBuilder() TreeBuilder {
	initTreeBuilder.Do(func() {
		treeBuilderSingleton = &treeBuilder{}
	})
	return treeBuilderSingleton
}

// NewTreeBuilder returns a new tree builder.
func NewTreeBuilder() TreeBuilder {
	return &treeBuilder{}
}

// Parse parses the given OFX markup, with any SGML header already removed, into a tag tree.
func Parse(text string) *Node {
	return GetTreeBuilder().Build([]byte(text))
}

// Build returns the root of the tag tree for the given data. Missing start and end tags are
// repaired, unmatched end tags are ignored. Data that can not be tokenized yields an empty root.
func (b treeBuilder) Build(data []byte) *Node {
	var (
		root     = NewNode("") // Synthetic document root.
		tagStack = NewStack()  // Open aggregates, root at the bottom.
		pending  *Node         // Last started element, not yet known to be a leaf or aggregate.
		lastData string        // Char data seen with no element to hold it.
	)
	tagStack.Push(root)

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = false
	decoder.Entity = xml.HTMLEntity
	decoder.CharsetReader = charset.NewReaderLabel

	// closePending settles the pending element. Without text and with a following start tag it is
	// an aggregate and becomes the new parent, unless it is a known element left empty. Otherwise
	// it is a leaf and is already attached.
	closePending := func(opensChild bool) {
		if pending == nil {
			return
		}
		if opensChild && pending.Text != "" && IsAggregate(pending.Name) {
			glog.V(1).Infof("dropping chardata (%s) of aggregate %s", pending.Text, pending.Name)
			pending.Text = ""
		}
		if opensChild && pending.Text == "" && IsElement(pending.Name) {
			glog.V(1).Infof("%s has no value, closing it", pending.Name)
		} else if opensChild && pending.Text == "" {
			glog.V(3).Infof("%s is aggregate, pushing to stack", pending.Name)
			tagStack.Push(pending)
		}
		pending = nil
	}

	for {
		token, err := decoder.RawToken()
		if err != nil {
			if err == io.EOF {
				break
			}
			glog.V(1).Infof("unparsable OFX markup, returning empty tree: %v", err)
			return NewNode("")
		}

		switch t := token.(type) {
		case xml.CharData:
			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}
			glog.V(3).Infof("case chardata (%s)", text)
			if pending != nil {
				pending.Text += text
				continue
			}
			lastData = text
		case xml.StartElement:
			glog.V(3).Infof("case start element %s", t.Name.Local)
			closePending(true)
			if lastData != "" {
				glog.V(1).Infof("dropping chardata (%s) missing start and end tags", lastData)
				lastData = ""
			}
			n := NewNode(t.Name.Local)
			tagStack.Peek().addChild(n)
			pending = n
			glog.V(3).Infof("Stack: %#v", tagStack.Dump())
		case xml.EndElement:
			glog.V(3).Infof("case end element %s", t.Name.Local)
			name := strings.ToLower(t.Name.Local)
			if pending != nil && pending.Name == name {
				pending = nil
				continue
			}
			// Text held by a known aggregate before the end tag of an unopened element belongs
			// to that element, whose start tag is missing.
			if pending != nil && pending.Text != "" && IsAggregate(pending.Name) &&
				!IsAggregate(name) && !tagStack.Contains(name) {
				n := NewNode(name)
				n.Text, pending.Text = pending.Text, ""
				pending.addChild(n)
				tagStack.Push(pending)
				pending = nil
				continue
			}
			closePending(false)
			if lastData != "" {
				// Text followed by an end tag that closes nothing open is missing its start tag.
				if !tagStack.Contains(name) {
					n := NewNode(name)
					n.Text = lastData
					tagStack.Peek().addChild(n)
					lastData = ""
					continue
				}
				glog.V(1).Infof("dropping chardata (%s) missing start and end tags", lastData)
				lastData = ""
			}
			if !tagStack.Contains(name) {
				glog.V(3).Infof("ignoring unmatched end tag %s", name)
				continue
			}
			// Close every open tag till the current closing tag is matched.
			for tagStack.Size() > 1 {
				n, _ := tagStack.Pop()
				if n.Name == name {
					break
				}
			}
			glog.V(3).Infof("Stack: %#v", tagStack.Dump())
		}
	}
	glog.V(3).Infof("tree: %s", root)
	return root
}
