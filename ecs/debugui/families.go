package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/darkmatter/ecs"
)

// FamilyLabel describes a family definition as "all(A, B) one(C) exclude(D)".
func FamilyLabel(def ecs.FamilyDef) string {
	var parts []string
	if len(def.All) > 0 {
		parts = append(parts, "all("+typeNames(def.All)+")")
	}
	if len(def.One) > 0 {
		parts = append(parts, "one("+typeNames(def.One)+")")
	}
	if len(def.Exclude) > 0 {
		parts = append(parts, "exclude("+typeNames(def.Exclude)+")")
	}
	if len(parts) == 0 {
		return "all()"
	}
	return strings.Join(parts, " ")
}

func typeNames(types []reflect.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name()
	}
	return strings.Join(names, ", ")
}

func renderFamilies(storage *ecs.Storage) {
	if !imgui.BeginV("Families", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("FamiliesTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Family")
		imgui.TableSetupColumn("Members")
		imgui.TableHeadersRow()

		for _, family := range storage.Families() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(FamilyLabel(family.Def()))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", family.Len()))
		}
		imgui.EndTable()
	}

	imgui.End()
}
