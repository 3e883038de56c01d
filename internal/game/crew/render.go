package crew

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/firestone-manager/firestone/internal/game/stats"
)

// Localizer supplies display text for WriteTable.
type Localizer interface {
	Text(key string) string
	Number(v float64) string
}

type column struct {
	header string
	value  func(Row, Localizer) string
}

func statColumn(header string, f func(stats.Stats) float64) column {
	return column{header: header, value: func(r Row, l Localizer) string { return l.Number(f(r.Stats)) }}
}

var columns = []column{
	{"crew.header.character", func(r Row, l Localizer) string { return l.Text("character." + r.Hero.ID) }},
	{"crew.header.spec", func(r Row, l Localizer) string {
		if r.Spec == "" {
			return l.Text("crew.unassigned")
		}
		return l.Text("spec." + r.Spec)
	}},
	{"crew.header.war_machine", func(r Row, l Localizer) string {
		if r.WarMachine == "" {
			return l.Text("crew.unassigned")
		}
		return l.Text("warmachine." + r.WarMachine)
	}},
	statColumn("crew.header.damage", func(s stats.Stats) float64 { return s.Dmg }),
	statColumn("crew.header.damage_potential", func(s stats.Stats) float64 { return s.PotentialDmg }),
	statColumn("crew.header.health", func(s stats.Stats) float64 { return s.Health }),
	statColumn("crew.header.health_potential", func(s stats.Stats) float64 { return s.PotentialHealth }),
	statColumn("crew.header.armor", func(s stats.Stats) float64 { return s.Resist }),
	statColumn("crew.header.armor_potential", func(s stats.Stats) float64 { return s.PotentialResist }),
	statColumn("crew.header.health_armor", func(s stats.Stats) float64 { return s.HealthResist }),
	statColumn("crew.header.health_armor_potential", func(s stats.Stats) float64 { return s.PotentialHealthResist }),
}

// WriteTable writes rows as an aligned text table, one column per sort key
// in SortKeys order.
func WriteTable(w io.Writer, rows []Row, l Localizer) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, l.Text("crew.empty"))
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, c := range columns {
		fmt.Fprint(tw, l.Text(c.header), sep(i))
	}
	for _, r := range rows {
		for i, c := range columns {
			fmt.Fprint(tw, c.value(r, l), sep(i))
		}
	}
	return tw.Flush()
}

func sep(i int) string {
	if i == len(columns)-1 {
		return "\t\n"
	}
	return "\t"
}
