// Package export renders schedule lists for files and terminals.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"

	"github.com/kilianp07/berthplan/core/model"
)

var csvHeader = []string{
	"vessel_id", "vessel_name", "berth_id", "start_date", "end_date",
	"handling_days", "waiting_days", "berth_cost", "waiting_cost", "total_cost",
}

// WriteJSON writes the schedules to w as an indented JSON array.
func WriteJSON(w io.Writer, schedules []model.Schedule) error {
	if schedules == nil {
		schedules = []model.Schedule{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(schedules)
}

// WriteCSV writes one row per schedule. Costs are plain yen integers.
func WriteCSV(w io.Writer, schedules []model.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range schedules {
		rec := []string{
			s.Vessel.ID,
			s.Vessel.Name,
			s.Berth.ID,
			s.StartDate.Format(model.DateLayout),
			s.EndDate().Format(model.DateLayout),
			strconv.Itoa(s.HandlingDays),
			strconv.Itoa(s.WaitingDays),
			strconv.FormatInt(s.BerthCost, 10),
			strconv.FormatInt(s.WaitingCost, 10),
			strconv.FormatInt(s.TotalCost, 10),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable prints an aligned table with grouped yen and tonne figures.
func WriteTable(w io.Writer, schedules []model.Schedule) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VESSEL\tBERTH\tCARGO\tTONNES\tSTART\tEND\tDAYS\tWAIT\tTOTAL (JPY)")
	for _, s := range schedules {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			s.Vessel.Name,
			s.Berth.Name,
			CargoLabels(s.Vessel),
			humanize.Comma(s.Vessel.TotalQuantity()),
			s.StartDate.Format(model.DateLayout),
			s.EndDate().Format(model.DateLayout),
			s.HandlingDays,
			s.WaitingDays,
			humanize.Comma(s.TotalCost),
		)
	}
	return tw.Flush()
}

// CargoLabels joins the display labels of a vessel's cargo, e.g. "トウモロコシ, マイロ".
func CargoLabels(v model.Vessel) string {
	cs := v.Cargos()
	labels := make([]string, len(cs))
	for i, c := range cs {
		labels[i] = c.Type.Label()
	}
	return strings.Join(labels, ", ")
}
