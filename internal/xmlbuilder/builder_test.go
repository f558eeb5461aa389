package xmlbuilder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyRoot(t *testing.T) {
	b := New("root", "urn:main")
	assert.Equal(t,
		"<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"yes\"?>\n"+
			`<root xmlns="urn:main"/>`,
		b.String())
}

func TestStandaloneAndVersion(t *testing.T) {
	b := New("root", "urn:main")
	b.SetStandalone(false)
	assert.Contains(t, b.String(), `standalone="no"`)

	b.SetVersion("1.1")
	assert.Contains(t, b.String(), `version="1.1"`)
}

func TestChildrenInheritNamespace(t *testing.T) {
	b := New("root", "urn:main")
	row := b.Element(Root, "row", "")
	b.Text(row, "c", "", "hello")

	out := b.String()
	// names in the root namespace stay unprefixed
	assert.Contains(t, out, "<row><c>hello</c></row>")
	// the default namespace is declared once, on the root
	assert.Equal(t, 1, strings.Count(out, "xmlns"))
}

func TestForeignNamespacePrefixAllocation(t *testing.T) {
	b := New("root", "urn:main")
	b.Element(Root, "a", "urn:one")
	b.Element(Root, "b", "urn:two")
	b.Element(Root, "c", "urn:one") // reuses the first prefix

	out := b.String()
	assert.Contains(t, out, `xmlns:nts0="urn:one"`)
	assert.Contains(t, out, `xmlns:nts1="urn:two"`)
	assert.Contains(t, out, "<nts0:a/>")
	assert.Contains(t, out, "<nts1:b/>")
	assert.Contains(t, out, "<nts0:c/>")
	// each namespace is declared exactly once
	assert.Equal(t, 1, strings.Count(out, `"urn:one"`))
	assert.Equal(t, 1, strings.Count(out, `"urn:two"`))
}

func TestExplicitPrefixIsAdopted(t *testing.T) {
	b := New("root", "urn:main")
	b.Element(Root, "vt:variant", "urn:vt")
	b.Element(Root, "other", "urn:vt")

	out := b.String()
	assert.Contains(t, out, `xmlns:vt="urn:vt"`)
	assert.Contains(t, out, "<vt:variant/>")
	// later names in the same namespace pick up the adopted prefix
	assert.Contains(t, out, "<vt:other/>")
}

func TestPrefixedRootName(t *testing.T) {
	b := New("cp:props", "urn:cp")
	b.Element(Root, "title", "urn:cp")

	out := b.String()
	require.Contains(t, out, `<cp:props xmlns:cp="urn:cp">`)
	assert.Contains(t, out, "<cp:title/>")
	assert.Contains(t, out, "</cp:props>")
}

func TestAttributes(t *testing.T) {
	b := New("root", "urn:main")
	n := b.Element(Root, "cell", "", A("r", "A1"), A("s", "1"))

	assert.Contains(t, b.String(), `<cell r="A1" s="1"/>`)

	// SetAttribute overwrites in place, preserving order
	b.SetAttribute(n, "s", "2")
	b.SetAttribute(n, "t", "str")
	assert.Contains(t, b.String(), `<cell r="A1" s="2" t="str"/>`)
}

func TestSetAttributeNS(t *testing.T) {
	b := New("root", "urn:main")
	b.SetAttributeNS(Root, "id", "rId1", "urn:rel")

	out := b.String()
	assert.Contains(t, out, `xmlns:nts0="urn:rel"`)
	assert.Contains(t, out, `nts0:id="rId1"`)
}

func TestTextEscaping(t *testing.T) {
	b := New("root", "urn:main")
	b.Text(Root, "v", "", `a < b & "c"`)
	n := b.Element(Root, "e", "")
	b.SetAttribute(n, "x", `say "hi" & <go>`)

	out := b.String()
	assert.Contains(t, out, `<v>a &lt; b &amp; "c"</v>`)
	assert.Contains(t, out, `x="say &quot;hi&quot; &amp; &lt;go&gt;"`)
}

func TestDeepNesting(t *testing.T) {
	b := New("root", "urn:main")
	cur := Root
	for i := 0; i < 5; i++ {
		cur = b.Element(cur, "n", "")
	}
	b.Text(cur, "leaf", "", "x")

	assert.Contains(t, b.String(), "<n><n><n><n><n><leaf>x</leaf></n></n></n></n></n>")
}
