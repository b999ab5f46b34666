package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/darkmatter/ecs"
)

// EntityBrowser lists living entities, filtered by component type name, and tracks
// the selection shown in the inspector window.
type EntityBrowser struct {
	filter   string
	limit    int
	selected ecs.EntityId
}

func NewEntityBrowser(limit int) *EntityBrowser {
	return &EntityBrowser{limit: limit}
}

// Selected returns the selected entity, or 0 when nothing is selected.
func (b *EntityBrowser) Selected() ecs.EntityId {
	return b.selected
}

// Select marks id as the selected entity.
func (b *EntityBrowser) Select(id ecs.EntityId) {
	b.selected = id
}

// SetFilter sets the case insensitive component name filter.
func (b *EntityBrowser) SetFilter(filter string) {
	b.filter = filter
}

// Matching returns up to the browser's limit of living entities that have a
// component whose type name contains the filter, plus the total match count.
func (b *EntityBrowser) Matching(storage *ecs.Storage) ([]ecs.EntityId, int) {
	filter := strings.ToLower(strings.TrimSpace(b.filter))
	var out []ecs.EntityId
	total := 0

	for _, arch := range storage.Archetypes() {
		if arch.Len() == 0 || !archetypeMatches(arch, filter) {
			continue
		}
		for id := range arch.Iter() {
			total++
			if b.limit <= 0 || len(out) < b.limit {
				out = append(out, id)
			}
		}
	}
	return out, total
}

func archetypeMatches(arch *ecs.Archetype, filter string) bool {
	if filter == "" {
		return true
	}
	for _, t := range arch.Types() {
		if strings.Contains(strings.ToLower(t.Name()), filter) {
			return true
		}
	}
	return false
}

func entityLabel(storage *ecs.Storage, id ecs.EntityId) string {
	arch := storage.Archetype(id)
	if arch == nil {
		return id.String()
	}
	names := make([]string, 0, len(arch.Types()))
	for _, t := range arch.Types() {
		names = append(names, t.Name())
	}
	return fmt.Sprintf("%s [%s]", id, strings.Join(names, ", "))
}

// Render draws the browser window.
func (b *EntityBrowser) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##filter", "filter by component", &b.filter, imgui.InputTextFlagsNone, nil)

	ids, total := b.Matching(storage)
	imgui.Text(fmt.Sprintf("Showing %d of %d entities", len(ids), total))
	imgui.Separator()

	for _, id := range ids {
		if imgui.SelectableBoolV(entityLabel(storage, id), id == b.selected, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			b.selected = id
		}
	}

	if b.selected != 0 && !storage.Alive(b.selected) {
		b.selected = 0
	}

	imgui.End()
}

func renderInspector(storage *ecs.Storage, id ecs.EntityId) {
	if !imgui.BeginV("Entity Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if id == 0 || !storage.Alive(id) {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	imgui.Text(id.String())
	imgui.Separator()

	arch := storage.Archetype(id)
	if arch != nil {
		for _, t := range arch.Types() {
			component := storage.GetComponent(id, t)
			if component == nil {
				continue
			}
			if imgui.TreeNodeStr(t.Name()) {
				renderValue(reflect.ValueOf(component).Elem(), t.Name())
				imgui.TreePop()
			}
		}
	}

	if imgui.Button("Delete Entity") {
		storage.Delete(id)
	}

	imgui.End()
}

func renderValue(v reflect.Value, label string) {
	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			renderValue(v.Field(i), t.Field(i).Name)
		}
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			imgui.Text(label + ": nil")
			return
		}
		imgui.Text(fmt.Sprintf("%s: %v", label, v.Interface()))
	default:
		renderScalar(v, label)
	}
}

func renderScalar(v reflect.Value, label string) {
	if !v.CanSet() {
		imgui.Text(fmt.Sprintf("%s: %v", label, v.Interface()))
		return
	}

	switch v.Kind() {
	case reflect.Bool:
		b := v.Bool()
		if imgui.Checkbox(label, &b) {
			SetField(v, b)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := int32(toInt64(v))
		if imgui.InputInt(label, &n) {
			SetField(v, int64(n))
		}
	case reflect.Float32, reflect.Float64:
		f := float32(v.Float())
		if imgui.InputFloat(label, &f) {
			SetField(v, float64(f))
		}
	case reflect.String:
		s := v.String()
		if imgui.InputTextWithHint(label, "", &s, imgui.InputTextFlagsNone, nil) {
			SetField(v, s)
		}
	default:
		imgui.Text(fmt.Sprintf("%s: %v", label, v.Interface()))
	}
}

func toInt64(v reflect.Value) int64 {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(v.Uint())
	default:
		return v.Int()
	}
}

// SetField writes value into the settable field v, converting between numeric kinds.
// It returns false when the value cannot be represented in the field.
func SetField(v reflect.Value, value any) bool {
	if !v.CanSet() {
		return false
	}

	in := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !in.CanInt() && !in.CanFloat() {
			return false
		}
		n := numericAsInt(in)
		if v.OverflowInt(n) {
			return false
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !in.CanInt() && !in.CanUint() && !in.CanFloat() {
			return false
		}
		n := numericAsInt(in)
		if n < 0 || v.OverflowUint(uint64(n)) {
			return false
		}
		v.SetUint(uint64(n))
	case reflect.Float32, reflect.Float64:
		var f float64
		switch {
		case in.CanFloat():
			f = in.Float()
		case in.CanInt():
			f = float64(in.Int())
		default:
			return false
		}
		v.SetFloat(f)
	default:
		if !in.Type().AssignableTo(v.Type()) {
			return false
		}
		v.Set(in)
	}
	return true
}

func numericAsInt(in reflect.Value) int64 {
	switch {
	case in.CanInt():
		return in.Int()
	case in.CanUint():
		return int64(in.Uint())
	default:
		return int64(in.Float())
	}
}
