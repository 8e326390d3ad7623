package treexml

import (
	"encoding/xml"
	"strings"
)

// node is a generic XML element: name, text and children, enough to
// walk the business-object tree without committing to one shape.
type node struct {
	XMLName  xml.Name
	Text     string
	Children []node
}

// UnmarshalXML collects child elements and character data in document
// order. Attributes are ignored; the format carries everything in
// elements.
func (n *node) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	n.XMLName = start.Name
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var child node
			if err := child.UnmarshalXML(d, t); err != nil {
				return err
			}
			n.Children = append(n.Children, child)
		case xml.CharData:
			n.Text += string(t)
		case xml.EndElement:
			n.Text = strings.TrimSpace(n.Text)
			return nil
		}
	}
}

// children returns every child with the given name, compared
// case-insensitively. A single matching child comes back as a
// one-element list, so callers never branch on shape.
func (n *node) children(name string) []*node {
	var out []*node
	for i := range n.Children {
		if strings.EqualFold(n.Children[i].XMLName.Local, name) {
			out = append(out, &n.Children[i])
		}
	}
	return out
}

// child returns the first child with the given name, or nil.
func (n *node) child(name string) *node {
	for i := range n.Children {
		if strings.EqualFold(n.Children[i].XMLName.Local, name) {
			return &n.Children[i]
		}
	}
	return nil
}

// text returns the trimmed text of the named child, or "".
func (n *node) text(name string) string {
	if c := n.child(name); c != nil {
		return c.Text
	}
	return ""
}
