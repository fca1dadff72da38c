package tax

import (
	"slices"

	"fopassistant/internal/model"
)

type CalendarEntry struct {
	Event            string           `json:"event"`
	Deadline         string           `json:"deadline"`
	Group            string           `json:"group"`
	ApplicableGroups []model.FopGroup `json:"applicable_groups"`
}

// PaymentCalendar returns the fixed payment deadlines of the simplified regime.
// Each call returns a fresh slice.
func PaymentCalendar() []CalendarEntry {
	all := []model.FopGroup{model.FopGroup1, model.FopGroup2, model.FopGroup3, model.FopGroup4}
	return []CalendarEntry{
		{Event: "ЄСВ (Єдиний соціальний внесок)", Deadline: "Щомісяця, до 20-го числа", Group: "Усі (1, 2, 3, 4)", ApplicableGroups: all},
		{Event: "Єдиний податок", Deadline: "Щомісяця, до 20-го числа", Group: "1, 2", ApplicableGroups: []model.FopGroup{model.FopGroup1, model.FopGroup2}},
		{Event: "Єдиний податок", Deadline: "Щокварталу, до 20-го числа", Group: "3", ApplicableGroups: []model.FopGroup{model.FopGroup3}},
		{Event: "Єдиний податок (нарахована частка)", Deadline: "Раз на рік", Group: "4", ApplicableGroups: []model.FopGroup{model.FopGroup4}},
		{Event: "Військовий збір (фіксований)", Deadline: "Щомісяця, до 20-го числа", Group: "1, 2, 4", ApplicableGroups: []model.FopGroup{model.FopGroup1, model.FopGroup2, model.FopGroup4}},
		{Event: "Військовий збір (1% від доходу)", Deadline: "Щокварталу, до 20-го числа", Group: "3", ApplicableGroups: []model.FopGroup{model.FopGroup3}},
	}
}

// CalendarFor keeps only the entries that apply to group.
func CalendarFor(group model.FopGroup) []CalendarEntry {
	entries := []CalendarEntry{}
	for _, e := range PaymentCalendar() {
		if slices.Contains(e.ApplicableGroups, group) {
			entries = append(entries, e)
		}
	}
	return entries
}
