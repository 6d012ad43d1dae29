package handler

import (
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"kudata/internal/cohort"
)

const monthLabelLayout = "2006-01"

func monthLabels(months []time.Time) []string {
	out := make([]string, len(months))
	for i, m := range months {
		out[i] = m.Format(monthLabelLayout)
	}
	return out
}

func indexLabels(indexes []int) []string {
	out := make([]string, len(indexes))
	for i, idx := range indexes {
		out[i] = "M+" + strconv.Itoa(idx)
	}
	return out
}

// newCohortSizeBar 每个获客月的新客户数
func newCohortSizeBar(months []time.Time, sizes map[time.Time]int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1180px", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: "New customers per cohort month"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	data := make([]opts.BarData, len(months))
	for i, m := range months {
		data[i] = opts.BarData{Value: sizes[m]}
	}
	bar.SetXAxis(monthLabels(months)).AddSeries("new customers", data)
	return bar
}

func newHeatMap(title string, m cohort.Matrix, value func(i, j int) any, maxVal float32) *charts.HeatMap {
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1180px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "category",
			Data:      monthLabels(m.Months),
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        maxVal,
			Orient:     "horizontal",
			Left:       "center",
		}),
	)
	data := make([]opts.HeatMapData, 0, len(m.Months)*len(m.Indexes))
	for i := range m.Months {
		for j := range m.Indexes {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, value(i, j)}})
		}
	}
	hm.SetXAxis(indexLabels(m.Indexes)).AddSeries("", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))
	return hm
}

// newCountHeatMap 同期群活跃客户数矩阵
func newCountHeatMap(m cohort.Matrix) *charts.HeatMap {
	var max int
	for _, row := range m.Counts {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}
	return newHeatMap("Active customers by cohort", m,
		func(i, j int) any { return m.Counts[i][j] }, float32(max))
}

// newRetentionHeatMap 留存率矩阵，0-100
func newRetentionHeatMap(m cohort.Matrix, rates [][]float64) *charts.HeatMap {
	return newHeatMap("Retention rate (%) by cohort", m,
		func(i, j int) any { return rates[i][j] }, 100)
}
