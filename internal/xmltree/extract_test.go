package xmltree

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTextScalar(t *testing.T) {
	assert.Equal(t, "hello", Text(Scalar("  hello  ")))
	assert.Equal(t, "", Text(nil))
}

func TestTextFromNumber(t *testing.T) {
	assert.Equal(t, "750", Text(FromAny(float64(750))))
	assert.Equal(t, "750.5", Text(FromAny(750.5)))
}

func TestTextWrappedTextNode(t *testing.T) {
	n := Mapping{TextKey: Scalar(" wrapped "), "-attr": Scalar("ignored")}
	assert.Equal(t, "wrapped", Text(n))
}

func TestTextFirstStringValue(t *testing.T) {
	n := Mapping{
		"Zeta":  Scalar("last"),
		"Alpha": Scalar("first"),
		"Inner": Mapping{"deep": Scalar("nested")},
	}
	// Deterministic: lexical key order.
	assert.Equal(t, "first", Text(n))
}

func TestTextPrefersElementsOverAttributes(t *testing.T) {
	n := Mapping{
		"-code": Scalar("attr"),
		"Name":  Scalar("element"),
	}
	assert.Equal(t, "element", Text(n))

	attrOnly := Mapping{"-code": Scalar("attr")}
	assert.Equal(t, "attr", Text(attrOnly))
}

func TestTextEmptyMapping(t *testing.T) {
	assert.Equal(t, "", Text(Mapping{"Inner": Mapping{}}))
}

func TestTextSequenceUsesFirstElement(t *testing.T) {
	assert.Equal(t, "one", Text(Sequence{Scalar("one"), Scalar("two")}))
	assert.Equal(t, "", Text(Sequence{}))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, 1234.56, Number(Scalar("1,234.56")))
	assert.Equal(t, -50.0, Number(Scalar("INR -50")))
	assert.Equal(t, 0.0, Number(Scalar("not a number")))
	assert.Equal(t, 0.0, Number(nil))
	assert.Equal(t, 0.0, Number(Scalar("")))
	assert.Equal(t, 750.0, Number(Mapping{TextKey: Scalar("750")}))
}

func TestDateCompact(t *testing.T) {
	d := Date(Scalar("19900515"))
	if assert.NotNil(t, d) {
		assert.Equal(t, 1990, d.Year())
		assert.Equal(t, time.May, d.Month())
		assert.Equal(t, 15, d.Day())
	}
}

func TestDateSentinelAbsent(t *testing.T) {
	assert.Nil(t, Date(Scalar("00010201")))
	assert.Nil(t, Date(Scalar("")))
	assert.Nil(t, Date(nil))
	assert.Nil(t, Date(Scalar("rubbish")))
}

func TestDateFlexibleFallback(t *testing.T) {
	d := Date(Scalar("2023-06-30"))
	if assert.NotNil(t, d) {
		assert.Equal(t, 2023, d.Year())
	}
}
