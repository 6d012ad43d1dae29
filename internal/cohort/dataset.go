// Package cohort 读取扁平的留存数据集并做同期群聚合。
// 与生成管道完全独立，仅共享一个代码库。
package cohort

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// SchemaError 数据集缺少必需列；仪表盘把它展示给用户而不是崩溃
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Row 数据集一行；月份列已去掉时区，按 UTC 墙钟保存
type Row struct {
	CustomerID       string
	OrderMonth       time.Time
	AcquisitionMonth time.Time
	CohortIndex      int
	AcquisitionYear  int
}

var requiredColumns = []string{"customer_id", "order_month", "acquisition_month", "cohort_index"}

var monthLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseMonth(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime: %q", s)
}

// LoadDataset 解析数据集 CSV；必需列缺失返回 SchemaError
func LoadDataset(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, &SchemaError{Missing: requiredColumns}
	}
	if err != nil {
		return nil, err
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	var rows []Row
	line := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		field := func(name string) string {
			if i := col[name]; i < len(rec) {
				return rec[i]
			}
			return ""
		}
		orderMonth, err := parseMonth(field("order_month"))
		if err != nil {
			return nil, fmt.Errorf("line %d: order_month: %w", line, err)
		}
		acqMonth, err := parseMonth(field("acquisition_month"))
		if err != nil {
			return nil, fmt.Errorf("line %d: acquisition_month: %w", line, err)
		}
		idx, err := strconv.Atoi(strings.TrimSpace(field("cohort_index")))
		if err != nil {
			return nil, fmt.Errorf("line %d: cohort_index: %w", line, err)
		}
		rows = append(rows, Row{
			CustomerID:       strings.TrimSpace(field("customer_id")),
			OrderMonth:       orderMonth,
			AcquisitionMonth: acqMonth,
			CohortIndex:      idx,
			AcquisitionYear:  acqMonth.Year(),
		})
	}
	return rows, nil
}
