package cohort

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Matrix (获客月 × cohort_index) 去重客户数透视表。
// Indexes 只含过滤后数据里真实出现的列，缺失组合补 0。
type Matrix struct {
	Months  []time.Time // 升序
	Indexes []int       // 升序
	Counts  [][]int     // Counts[i][j] 对应 Months[i] × Indexes[j]
}

// Summary 头部 KPI
type Summary struct {
	Customers          int
	Rows               int
	AvgRowsPerCustomer float64
}

// Years 出现过的获客年份，升序去重，供选择器使用
func Years(rows []Row) []int {
	set := make(map[int]struct{})
	for _, r := range rows {
		set[r.AcquisitionYear] = struct{}{}
	}
	years := make([]int, 0, len(set))
	for y := range set {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// FilterYear 严格等于指定获客年份的行
func FilterYear(rows []Row, year int) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.AcquisitionYear == year {
			out = append(out, r)
		}
	}
	return out
}

// CohortSizes 每个获客月的去重客户数
func CohortSizes(rows []Row) map[time.Time]int {
	perMonth := make(map[time.Time]map[string]struct{})
	for _, r := range rows {
		m := perMonth[r.AcquisitionMonth]
		if m == nil {
			m = make(map[string]struct{})
			perMonth[r.AcquisitionMonth] = m
		}
		m[r.CustomerID] = struct{}{}
	}
	sizes := make(map[time.Time]int, len(perMonth))
	for month, customers := range perMonth {
		sizes[month] = len(customers)
	}
	return sizes
}

// Pivot (获客月, cohort_index) 的去重客户数矩阵
func Pivot(rows []Row) Matrix {
	type cell struct {
		month time.Time
		index int
	}
	perCell := make(map[cell]map[string]struct{})
	monthSet := make(map[time.Time]struct{})
	indexSet := make(map[int]struct{})
	for _, r := range rows {
		c := cell{month: r.AcquisitionMonth, index: r.CohortIndex}
		m := perCell[c]
		if m == nil {
			m = make(map[string]struct{})
			perCell[c] = m
		}
		m[r.CustomerID] = struct{}{}
		monthSet[r.AcquisitionMonth] = struct{}{}
		indexSet[r.CohortIndex] = struct{}{}
	}

	months := make([]time.Time, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	indexes := make([]int, 0, len(indexSet))
	for i := range indexSet {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	counts := make([][]int, len(months))
	for i, month := range months {
		counts[i] = make([]int, len(indexes))
		for j, idx := range indexes {
			counts[i][j] = len(perCell[cell{month: month, index: idx}])
		}
	}
	return Matrix{Months: months, Indexes: indexes, Counts: counts}
}

// Retention 按行除以该月 cohort 规模，内部 4 位精度，输出百分比
func Retention(m Matrix, sizes map[time.Time]int) [][]float64 {
	hundred := decimal.NewFromInt(100)
	out := make([][]float64, len(m.Months))
	for i, month := range m.Months {
		out[i] = make([]float64, len(m.Indexes))
		size := sizes[month]
		if size == 0 {
			continue
		}
		den := decimal.NewFromInt(int64(size))
		for j, count := range m.Counts[i] {
			rate := decimal.NewFromInt(int64(count)).Div(den).Round(4).Mul(hundred)
			out[i][j], _ = rate.Float64()
		}
	}
	return out
}

// Summarize 去重客户数、总行数、人均行数（无客户时为 0）
func Summarize(rows []Row) Summary {
	customers := make(map[string]struct{})
	for _, r := range rows {
		customers[r.CustomerID] = struct{}{}
	}
	s := Summary{Customers: len(customers), Rows: len(rows)}
	if s.Customers > 0 {
		s.AvgRowsPerCustomer = float64(s.Rows) / float64(s.Customers)
	}
	return s
}
