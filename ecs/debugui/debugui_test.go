package debugui_test

import (
	"reflect"
	"testing"

	"github.com/plus3/darkmatter/ecs"
	"github.com/plus3/darkmatter/ecs/debugui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Position struct {
	X, Y float32
}

type Tag struct {
	Label string
	Count uint8
}

type Hidden struct{}

func TestFrameHistoryAverage(t *testing.T) {
	h := debugui.NewFrameHistory(3)
	assert.Equal(t, float32(0), h.Average())

	h.Push(0.010)
	h.Push(0.020)
	assert.InDelta(t, 15.0, h.Average(), 0.001)

	h.Push(0.030)
	h.Push(0.040)
	assert.InDelta(t, 30.0, h.Average(), 0.001)
}

func TestSetField(t *testing.T) {
	tag := Tag{}
	v := reflect.ValueOf(&tag).Elem()

	assert.True(t, debugui.SetField(v.Field(0), "ship"))
	assert.True(t, debugui.SetField(v.Field(1), int64(200)))
	assert.False(t, debugui.SetField(v.Field(1), int64(300)))
	assert.False(t, debugui.SetField(v.Field(1), int64(-1)))
	assert.False(t, debugui.SetField(v.Field(0), 12))

	assert.Equal(t, Tag{Label: "ship", Count: 200}, tag)

	pos := Position{}
	pv := reflect.ValueOf(&pos).Elem()
	assert.True(t, debugui.SetField(pv.Field(0), 2.5))
	assert.True(t, debugui.SetField(pv.Field(1), int64(3)))
	assert.Equal(t, Position{X: 2.5, Y: 3}, pos)

	assert.False(t, debugui.SetField(reflect.ValueOf(pos).Field(0), 1.0))
}

func TestFamilyLabel(t *testing.T) {
	def := ecs.AllOf(reflect.TypeFor[Position]()).
		OneOf(reflect.TypeFor[Tag]()).
		Excluding(reflect.TypeFor[Hidden]())
	assert.Equal(t, "all(Position) one(Tag) exclude(Hidden)", debugui.FamilyLabel(def))
	assert.Equal(t, "all()", debugui.FamilyLabel(ecs.FamilyDef{}))
}

func TestEntityBrowserMatching(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Tag](registry)
	storage := ecs.NewStorage(registry)

	a := storage.Spawn(Position{})
	b := storage.Spawn(Position{}, Tag{Label: "b"})
	storage.Spawn(Position{}, Tag{Label: "c"})

	browser := debugui.NewEntityBrowser(10)
	ids, total := browser.Matching(storage)
	assert.Equal(t, 3, total)
	assert.Len(t, ids, 3)

	browser.SetFilter("TAG")
	ids, total = browser.Matching(storage)
	assert.Equal(t, 2, total)
	assert.Contains(t, ids, b)
	assert.NotContains(t, ids, a)

	limited := debugui.NewEntityBrowser(1)
	ids, total = limited.Matching(storage)
	require.Len(t, ids, 1)
	assert.Equal(t, 3, total)

	browser.Select(b)
	assert.Equal(t, b, browser.Selected())
}
