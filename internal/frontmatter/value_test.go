package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap_OrderAndOverwrite(t *testing.T) {
	m := NewMap()
	m.Set("b", String("1"))
	m.Set("a", String("2"))
	m.Set("b", String("3"))

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, _ := m.Get("b")
	assert.Equal(t, "3", v.String())
}

func TestMap_PrependMovesExisting(t *testing.T) {
	m := NewMap()
	m.Set("a", String("1"))
	m.Set("b", String("2"))
	m.Prepend("b", String("9"))

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	assert.Equal(t, 2, m.Len())
}

func TestMap_Delete(t *testing.T) {
	m := NewMap()
	m.Set("a", String("1"))
	m.Delete("a")
	m.Delete("missing")
	assert.Zero(t, m.Len())
	assert.False(t, m.Has("a"))
}

func TestValue_Strings(t *testing.T) {
	assert.Equal(t, []string{"x"}, String("x").Strings())
	assert.Equal(t, []string{"a", "b"}, ListOf(String("a"), ListOf(String("nested")), Plain("b")).Strings())
	assert.Nil(t, NullValue().Strings())
	assert.Equal(t, "", ListOf().String())
}
