package domparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/a11yscan/internal/diag"
)

func TestParseJSX_FunctionReturn(t *testing.T) {
	var diags diag.Collector
	src := `function Card() {
  return <div className="card"><button onClick={handleClick}>Go</button></div>;
}`
	result := ParseJSX("card.jsx", src, &diags)

	require.Len(t, result.Fragments, 1)
	frag := result.Fragments[0]

	elems := frag.Elements()
	require.Len(t, elems, 2)
	assert.Equal(t, "div", elems[0].Tag)
	assert.Equal(t, "button", elems[1].Tag)

	require.Len(t, result.Handlers, 1)
	h := result.Handlers[0]
	assert.Equal(t, "click", h.EventType)
	assert.Equal(t, elems[1].ID, h.ElementID)
	assert.Contains(t, result.Exprs[h.HandlerRef], "handleClick")
}

func TestParseJSX_ArrowFunctionComponent(t *testing.T) {
	var diags diag.Collector
	src := `const Greeting = () => <p>hello</p>;`
	result := ParseJSX("greeting.jsx", src, &diags)

	require.Len(t, result.Fragments, 1)
	elems := result.Fragments[0].Elements()
	require.Len(t, elems, 1)
	assert.Equal(t, "p", elems[0].Tag)
}

func TestParseJSX_ComponentReferenceNotLowercased(t *testing.T) {
	var diags diag.Collector
	src := `function Page() { return <Header title="hi" />; }`
	result := ParseJSX("page.jsx", src, &diags)

	require.Len(t, result.Fragments, 1)
	elems := result.Fragments[0].Elements()
	require.Len(t, elems, 1)
	assert.True(t, elems[0].IsComponent)
	assert.Equal(t, "Header", elems[0].Tag)
}

func TestParseJSX_DynamicAttrMarkedWithSentinel(t *testing.T) {
	var diags diag.Collector
	src := `function Box() { return <div aria-expanded={isOpen}>x</div>; }`
	result := ParseJSX("box.jsx", src, &diags)

	require.Len(t, result.Fragments, 1)
	div := result.Fragments[0].Elements()[0]
	val, ok := div.Attr("aria-expanded")
	require.True(t, ok)
	assert.Equal(t, dynamicSentinel, val)
	assert.True(t, div.IsDynamicAttr("aria-expanded"))
}

func TestParseJSX_FragmentShorthand(t *testing.T) {
	var diags diag.Collector
	src := `function List() { return <><li>a</li><li>b</li></>; }`
	result := ParseJSX("list.jsx", src, &diags)

	require.Len(t, result.Fragments, 1)
	elems := result.Fragments[0].Elements()
	require.Len(t, elems, 2)
	assert.Equal(t, "li", elems[0].Tag)
	assert.Equal(t, "li", elems[1].Tag)
}

func TestParseJSX_NoJSXPresent(t *testing.T) {
	var diags diag.Collector
	result := ParseJSX("util.js", `function add(a, b) { return a + b; }`, &diags)
	assert.Empty(t, result.Fragments)
	assert.Empty(t, diags.All())
}

func FuzzParseJSX(f *testing.F) {
	seeds := []string{
		`function C(){ return <div onClick={f}>hi</div>; }`,
		`const X = () => <></>;`,
		`return <a`,
		`{{{{`,
		``,
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, src string) {
		var diags diag.Collector
		assert.NotPanics(t, func() {
			ParseJSX("fuzz.jsx", src, &diags)
		})
	})
}
