package export

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/berthplan/core/model"
)

// TimelineRows lays schedules out per berth for a stacked-bar Gantt chart.
// Row k holds, for every berth, the idle gap before its k-th vessel and
// that vessel's handling days, both counted from origin.
type TimelineRows struct {
	Origin time.Time
	Berths []model.Berth
	Gaps   [][]int
	Blocks [][]model.Schedule
}

// BuildTimeline groups schedules by berth in start order. Berths without a
// schedule keep an empty row so the axis lists every berth.
func BuildTimeline(berths []model.Berth, schedules []model.Schedule) TimelineRows {
	rows := TimelineRows{Berths: berths}
	for i, s := range schedules {
		if i == 0 || s.StartDate.Before(rows.Origin) {
			rows.Origin = s.StartDate
		}
	}
	perBerth := make(map[string][]model.Schedule, len(berths))
	depth := 0
	for _, s := range schedules {
		list := append(perBerth[s.Berth.ID], s)
		perBerth[s.Berth.ID] = list
		if len(list) > depth {
			depth = len(list)
		}
	}
	rows.Gaps = make([][]int, depth)
	rows.Blocks = make([][]model.Schedule, depth)
	for k := 0; k < depth; k++ {
		rows.Gaps[k] = make([]int, len(berths))
		rows.Blocks[k] = make([]model.Schedule, len(berths))
	}
	for bi, b := range berths {
		cursor := rows.Origin
		for k, s := range sortedByStart(perBerth[b.ID]) {
			rows.Gaps[k][bi] = model.DaysBetween(cursor, s.StartDate)
			rows.Blocks[k][bi] = s
			cursor = s.EndDate()
		}
	}
	return rows
}

func sortedByStart(in []model.Schedule) []model.Schedule {
	out := append([]model.Schedule(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out
}

// WriteTimelineHTML renders the berth occupation Gantt chart as a standalone
// HTML page.
func WriteTimelineHTML(w io.Writer, berths []model.Berth, schedules []model.Schedule) error {
	rows := BuildTimeline(berths, schedules)
	var total int64
	for _, s := range schedules {
		total += s.TotalCost
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Berth timeline",
			Subtitle: fmt.Sprintf("%d vessels, total %s JPY", len(schedules), humanize.Comma(total)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "days from " + rows.Origin.Format(model.DateLayout)}),
	)

	names := make([]string, len(berths))
	for i, b := range berths {
		names[i] = b.Name
	}
	bar.SetXAxis(names)

	for k := range rows.Gaps {
		gaps := make([]opts.BarData, len(berths))
		blocks := make([]opts.BarData, len(berths))
		for bi := range berths {
			gaps[bi] = opts.BarData{Value: rows.Gaps[k][bi]}
			s := rows.Blocks[k][bi]
			if s.Vessel.ID == "" {
				blocks[bi] = opts.BarData{Value: 0}
				continue
			}
			blocks[bi] = opts.BarData{
				Name: fmt.Sprintf("%s %s..%s (%s JPY)", s.Vessel.Name,
					s.StartDate.Format(model.DateLayout), s.EndDate().Format(model.DateLayout),
					humanize.Comma(s.TotalCost)),
				Value: s.HandlingDays,
			}
		}
		bar.AddSeries(fmt.Sprintf("gap %d", k+1), gaps,
			charts.WithBarChartOpts(opts.BarChart{Stack: "timeline"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "transparent"}),
		)
		bar.AddSeries(fmt.Sprintf("vessel %d", k+1), blocks,
			charts.WithBarChartOpts(opts.BarChart{Stack: "timeline"}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "inside"}),
		)
	}
	bar.XYReversal()

	return bar.Render(w)
}
