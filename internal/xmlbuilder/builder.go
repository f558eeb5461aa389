// Package xmlbuilder constructs namespace-aware XML documents. It is a
// minimal DOM-like tree builder: elements and attributes are created against
// integer node handles, foreign namespaces get a prefix allocated on first
// use, and every namespace is declared exactly once, on the root element.
package xmlbuilder

import (
	"strconv"
	"strings"
)

// NodeRef identifies a node in a builder's arena. Root refers to the
// document's root element and is accepted anywhere a node reference is
// expected, so callers can build top-down without holding a handle.
type NodeRef int

// Root is the NodeRef of the document's root element.
const Root NodeRef = 0

// Attr is one attribute in emission order.
type Attr struct {
	Name  string
	Value string
}

// A is shorthand for constructing an Attr.
func A(name, value string) Attr { return Attr{Name: name, Value: value} }

type node struct {
	name     string // serialized name, prefix included where needed
	ns       string
	attrs    []Attr
	children []NodeRef
	text     string
	hasText  bool
}

// Builder owns one XML document under construction. Each document gets its
// own builder; builders must not be shared between conversions.
type Builder struct {
	nodes      []node
	version    string
	standalone bool

	// prefixes maps every namespace URI seen in the tree to its prefix.
	// The root namespace maps to the empty prefix (default xmlns).
	prefixes map[string]string

	// declOrder holds foreign namespace URIs in allocation order, for
	// stable xmlns declarations on the root.
	declOrder []string

	nextPrefix int
}

// New creates a builder with a root element in the given namespace. A root
// name of the form "prefix:local" binds the root namespace to that prefix;
// otherwise the root namespace becomes the default xmlns. The XML
// declaration defaults to version 1.0, standalone yes.
func New(rootName, rootNamespace string) *Builder {
	rootPrefix := ""
	if c := strings.IndexByte(rootName, ':'); c >= 0 {
		rootPrefix = rootName[:c]
	}
	b := &Builder{
		version:    "1.0",
		standalone: true,
		prefixes:   map[string]string{rootNamespace: rootPrefix},
	}
	b.nodes = append(b.nodes, node{name: rootName, ns: rootNamespace})
	return b
}

// SetStandalone sets the standalone flag of the XML declaration.
func (b *Builder) SetStandalone(v bool) { b.standalone = v }

// SetVersion sets the version of the XML declaration.
func (b *Builder) SetVersion(v string) { b.version = v }

// Element creates an element and appends it to parent. An empty namespace
// inherits the parent's namespace. Attributes are emitted in the given
// order. The returned handle stays valid for the builder's lifetime.
func (b *Builder) Element(parent NodeRef, name, namespace string, attrs ...Attr) NodeRef {
	if namespace == "" {
		namespace = b.nodes[parent].ns
	}
	name = b.qualify(name, namespace)

	ref := NodeRef(len(b.nodes))
	b.nodes = append(b.nodes, node{name: name, ns: namespace, attrs: attrs})
	b.nodes[parent].children = append(b.nodes[parent].children, ref)
	return ref
}

// Text creates an element with text content and appends it to parent.
func (b *Builder) Text(parent NodeRef, name, namespace, text string, attrs ...Attr) NodeRef {
	ref := b.Element(parent, name, namespace, attrs...)
	b.nodes[ref].text = text
	b.nodes[ref].hasText = true
	return ref
}

// SetAttribute sets an attribute in the element's own namespace.
func (b *Builder) SetAttribute(n NodeRef, name, value string) {
	b.setAttr(n, Attr{Name: name, Value: value})
}

// SetAttributeNS sets an attribute in an explicit namespace, allocating a
// prefix on first use under the same rules as Element.
func (b *Builder) SetAttributeNS(n NodeRef, name, value, namespace string) {
	if namespace != "" {
		name = b.qualify(name, namespace)
	}
	b.setAttr(n, Attr{Name: name, Value: value})
}

func (b *Builder) setAttr(n NodeRef, a Attr) {
	for i := range b.nodes[n].attrs {
		if b.nodes[n].attrs[i].Name == a.Name {
			b.nodes[n].attrs[i].Value = a.Value
			return
		}
	}
	b.nodes[n].attrs = append(b.nodes[n].attrs, a)
}

// qualify resolves the serialized name for a namespace: names in the root
// namespace stay bare, foreign namespaces get their allocated prefix. A name
// already carrying "prefix:local" donates its prefix when the namespace is
// new; otherwise the existing prefix wins.
func (b *Builder) qualify(name, namespace string) string {
	prefix, seen := b.prefixes[namespace]
	if !seen {
		if c := strings.IndexByte(name, ':'); c >= 0 {
			prefix = name[:c]
		} else {
			prefix = "nts" + strconv.Itoa(b.nextPrefix)
		}
		b.nextPrefix++
		b.prefixes[namespace] = prefix
		b.declOrder = append(b.declOrder, namespace)
	}

	local := name
	if c := strings.IndexByte(name, ':'); c >= 0 {
		local = name[c+1:]
	}
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

// String serializes the document: the XML declaration followed by the tree,
// with all namespace declarations on the root element.
func (b *Builder) String() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="`)
	sb.WriteString(b.version)
	sb.WriteString(`" encoding="UTF-8" standalone="`)
	if b.standalone {
		sb.WriteString("yes")
	} else {
		sb.WriteString("no")
	}
	sb.WriteString("\"?>\n")
	b.writeNode(&sb, Root)
	return sb.String()
}

func (b *Builder) writeNode(sb *strings.Builder, ref NodeRef) {
	n := b.nodes[ref]

	sb.WriteByte('<')
	sb.WriteString(n.name)

	if ref == Root {
		if n.ns != "" {
			if p := b.prefixes[n.ns]; p != "" {
				sb.WriteString(" xmlns:")
				sb.WriteString(p)
				sb.WriteString(`="`)
			} else {
				sb.WriteString(` xmlns="`)
			}
			writeEscaped(sb, n.ns, true)
			sb.WriteByte('"')
		}
		for _, uri := range b.declOrder {
			sb.WriteString(" xmlns:")
			sb.WriteString(b.prefixes[uri])
			sb.WriteString(`="`)
			writeEscaped(sb, uri, true)
			sb.WriteByte('"')
		}
	}

	for _, a := range n.attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		writeEscaped(sb, a.Value, true)
		sb.WriteByte('"')
	}

	if len(n.children) == 0 && !n.hasText {
		sb.WriteString("/>")
		return
	}

	sb.WriteByte('>')
	if n.hasText {
		writeEscaped(sb, n.text, false)
	}
	for _, c := range n.children {
		b.writeNode(sb, c)
	}
	sb.WriteString("</")
	sb.WriteString(n.name)
	sb.WriteByte('>')
}

// writeEscaped writes s with XML special characters escaped. Attribute
// values additionally escape double quotes.
func writeEscaped(sb *strings.Builder, s string, attr bool) {
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '"':
			if attr {
				sb.WriteString("&quot;")
			} else {
				sb.WriteByte('"')
			}
		default:
			sb.WriteRune(r)
		}
	}
}
