package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/components"
	"go.uber.org/zap"

	"kudata/internal/cohort"
	resp "kudata/internal/transport/http/response"
)

// 首页外壳：KPI 卡片 + 年份选择器，图表走 /charts 内嵌
var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Cohort Retention</title>
<style>
body { font-family: sans-serif; margin: 24px; background: #fafafa; }
.cards { display: flex; gap: 16px; margin: 16px 0; }
.card { background: #fff; border: 1px solid #ddd; border-radius: 8px; padding: 16px 24px; min-width: 180px; }
.card .value { font-size: 28px; font-weight: bold; }
.card .label { color: #666; font-size: 13px; }
iframe { border: none; width: 100%; height: 1320px; background: #fff; }
.error { color: #b00020; background: #fde7e9; padding: 12px; border-radius: 6px; }
</style>
</head>
<body>
<h1>Cohort Retention Dashboard</h1>
{{if .Err}}
<p class="error">{{.Err}}</p>
{{else}}
<form method="get">
  <label>Acquisition year:
    <select name="year" onchange="this.form.submit()">
      {{range .Years}}<option value="{{.}}" {{if eq . $.Year}}selected{{end}}>{{.}}</option>{{end}}
    </select>
  </label>
</form>
<div class="cards">
  <div class="card"><div class="value">{{.Summary.Customers}}</div><div class="label">Customers</div></div>
  <div class="card"><div class="value">{{.Summary.Rows}}</div><div class="label">Order rows</div></div>
  <div class="card"><div class="value">{{printf "%.2f" .Summary.AvgRowsPerCustomer}}</div><div class="label">Rows per customer</div></div>
</div>
<iframe src="/charts?year={{.Year}}"></iframe>
{{end}}
</body>
</html>`))

type CohortHandler struct {
	log     *zap.Logger
	rows    []cohort.Row
	years   []int
	loadErr error
}

// NewCohortHandler 启动时读一次数据集；读取失败不终止进程，
// 错误留到每个请求上呈现
func NewCohortHandler(datasetPath string, log *zap.Logger) *CohortHandler {
	h := &CohortHandler{log: log}
	rows, err := cohort.LoadDataset(datasetPath)
	if err != nil {
		log.Warn("dataset load failed", zap.String("path", datasetPath), zap.Error(err))
		h.loadErr = err
		return h
	}
	h.rows = rows
	h.years = cohort.Years(rows)
	log.Info("dataset loaded",
		zap.String("path", datasetPath),
		zap.Int("rows", len(rows)),
		zap.Ints("years", h.years))
	return h
}

// year 取查询参数，缺省用最近一个获客年份
func (h *CohortHandler) year(c *gin.Context) (int, error) {
	raw := c.Query("year")
	if raw == "" {
		if len(h.years) == 0 {
			return 0, errors.New("dataset has no acquisition years")
		}
		return h.years[len(h.years)-1], nil
	}
	return strconv.Atoi(raw)
}

func (h *CohortHandler) Index(c *gin.Context) {
	if h.loadErr != nil {
		h.renderIndex(c, http.StatusServiceUnavailable, gin.H{"Err": h.loadErr.Error()})
		return
	}
	year, err := h.year(c)
	if err != nil {
		h.renderIndex(c, http.StatusBadRequest, gin.H{"Err": "invalid year: " + c.Query("year")})
		return
	}
	filtered := cohort.FilterYear(h.rows, year)
	h.renderIndex(c, http.StatusOK, gin.H{
		"Year":    year,
		"Years":   h.years,
		"Summary": cohort.Summarize(filtered),
	})
}

func (h *CohortHandler) renderIndex(c *gin.Context, status int, data gin.H) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(c.Writer, data); err != nil {
		h.log.Error("render index", zap.Error(err))
	}
}

// Charts 柱状图 + 两张热力图，go-echarts 整页输出
func (h *CohortHandler) Charts(c *gin.Context) {
	if h.loadErr != nil {
		c.String(http.StatusServiceUnavailable, h.loadErr.Error())
		return
	}
	year, err := h.year(c)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid year: %s", c.Query("year"))
		return
	}
	filtered := cohort.FilterYear(h.rows, year)
	matrix := cohort.Pivot(filtered)
	sizes := cohort.CohortSizes(filtered)

	page := components.NewPage()
	page.PageTitle = "Cohort Retention " + strconv.Itoa(year)
	page.AddCharts(
		newCohortSizeBar(matrix.Months, sizes),
		newCountHeatMap(matrix),
		newRetentionHeatMap(matrix, cohort.Retention(matrix, sizes)),
	)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(c.Writer); err != nil {
		h.log.Error("render charts", zap.Error(err))
	}
}

type cohortPayload struct {
	Year        int         `json:"year"`
	Years       []int       `json:"years"`
	Months      []string    `json:"months"`
	Indexes     []int       `json:"indexes"`
	CohortSizes []int       `json:"cohort_sizes"`
	Counts      [][]int     `json:"counts"`
	Retention   [][]float64 `json:"retention"`
	Customers   int         `json:"customers"`
	Rows        int         `json:"rows"`
	AvgRows     float64     `json:"avg_rows_per_customer"`
}

// Cohort 同一份聚合结果的 JSON 口径
func (h *CohortHandler) Cohort(c *gin.Context) {
	if h.loadErr != nil {
		c.JSON(http.StatusServiceUnavailable, resp.Error(resp.CodeUnavailable, h.loadErr.Error()))
		return
	}
	year, err := h.year(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "invalid year"))
		return
	}
	filtered := cohort.FilterYear(h.rows, year)
	matrix := cohort.Pivot(filtered)
	sizes := cohort.CohortSizes(filtered)
	summary := cohort.Summarize(filtered)

	sizeList := make([]int, len(matrix.Months))
	for i, m := range matrix.Months {
		sizeList[i] = sizes[m]
	}
	c.JSON(http.StatusOK, resp.OK(cohortPayload{
		Year:        year,
		Years:       h.years,
		Months:      monthLabels(matrix.Months),
		Indexes:     matrix.Indexes,
		CohortSizes: sizeList,
		Counts:      matrix.Counts,
		Retention:   cohort.Retention(matrix, sizes),
		Customers:   summary.Customers,
		Rows:        summary.Rows,
		AvgRows:     summary.AvgRowsPerCustomer,
	}))
}
