package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateRenderSubstitutesHoles(t *testing.T) {
	tpl := ParseTemplate("hello {name}, you have {count} items")
	props := SliceProps{
		{Key: NewStr("name"), Val: OfStringLiteral("ada")},
		{Key: NewStr("count"), Val: OfInt(3)},
	}
	assert.Equal(t, "hello ada, you have 3 items", tpl.Msg(props))
}

func TestTemplateRenderMissingHoleIsLiteral(t *testing.T) {
	tpl := ParseTemplate("hello {name}")
	assert.Equal(t, "hello {name}", tpl.Msg(Empty{}))
}

func TestTemplateAsStrIsRawText(t *testing.T) {
	tpl := ParseTemplate("op {x}")
	assert.Equal(t, "op {x}", tpl.AsStr())
}

func TestTemplateFormatterSuffix(t *testing.T) {
	tpl := ParseTemplate("val={x:debug}")
	props := SliceProps{{Key: NewStr("x"), Val: OfDebug(point{1, 2})}}
	assert.Contains(t, tpl.Msg(props), "val=")
}

func TestTemplateUnterminatedHoleIsLiteral(t *testing.T) {
	tpl := ParseTemplate("no closing {brace")
	assert.Equal(t, "no closing {brace", tpl.Msg(Empty{}))
}
