package docview

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlattenMathML_Identifiers(t *testing.T) {
	out := FlattenMathML(`<math><mrow><mi>x</mi><mo>+</mo><mi>y</mi></mrow></math>`)
	require.Equal(t, "x+y", out)
}

func TestFlattenMathML_Superscript(t *testing.T) {
	out := FlattenMathML(`<math><msup><mi>e</mi><mi>x</mi></msup></math>`)
	require.Equal(t, "e^x", out)
}

func TestFlattenMathML_Subscript(t *testing.T) {
	out := FlattenMathML(`<math><msub><mi>a</mi><mn>1</mn></msub></math>`)
	require.Equal(t, "a_1", out)
}

func TestFlattenMathML_SubSup(t *testing.T) {
	out := FlattenMathML(`<math><msubsup><mo>∫</mo><mn>0</mn><mn>1</mn></msubsup></math>`)
	require.Equal(t, "∫_0^1", out)
}

func TestFlattenMathML_Fraction(t *testing.T) {
	out := FlattenMathML(`<math><mfrac><mn>1</mn><mn>2</mn></mfrac></math>`)
	require.Equal(t, "1/2", out)
}

func TestFlattenMathML_Sqrt(t *testing.T) {
	out := FlattenMathML(`<math><msqrt><mi>x</mi></msqrt></math>`)
	require.Equal(t, "√(x)", out)
}

func TestFlattenMathML_IgnoresIndentation(t *testing.T) {
	out := FlattenMathML("<math>\n  <mi>x</mi>\n  <mo>=</mo>\n  <mn>1</mn>\n</math>")
	require.Equal(t, "x=1", out)
}

func TestFlattenMathML_Garbage(t *testing.T) {
	require.Equal(t, "", FlattenMathML(""))
	require.Equal(t, "just text", FlattenMathML("just text"))
}
