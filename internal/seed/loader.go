// Package seed 负责解析两份样本 CSV（orders / order_details），
// 产出带类型的记录，供 synth 包与生成数据做外键对账。
package seed

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// OrderRecord 样本订单行，id 必须原样保留
type OrderRecord struct {
	ID     int
	Date   time.Time
	UserID int
}

// DetailRecord 样本订单明细行
type DetailRecord struct {
	ID        int
	OrderDate time.Time
	UserID    int
	ProductID int
	Quantity  float64
}

// 日期按此优先级依次尝试
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"2006-01-02 15:04:05",
}

// ParseDate 按固定的四种格式解析日期
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &DateFormatError{Value: s}
}

// LoadOrders 解析样本订单 CSV，必需列：id, order_date, user_id
func LoadOrders(path string) ([]OrderRecord, error) {
	rows, header, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if missing := missingColumns(header, []string{"id", "order_date", "user_id"}); len(missing) > 0 {
		return nil, &SchemaError{Source: "orders", Missing: missing, Found: header}
	}

	out := make([]OrderRecord, 0, len(rows))
	for _, r := range rows {
		id, err := parseInt("id", r["id"])
		if err != nil {
			return nil, err
		}
		uid, err := parseInt("user_id", r["user_id"])
		if err != nil {
			return nil, err
		}
		d, err := ParseDate(r["order_date"])
		if err != nil {
			return nil, err
		}
		out = append(out, OrderRecord{ID: id, Date: d, UserID: uid})
	}
	return out, nil
}

// LoadOrderDetails 解析样本明细 CSV，必需列（修正别字后）：
// id, order_date, user_id, product_id, quantity。
// 源数据里存在 quality 这个已知别字列，quantity 缺失时由它顶替。
func LoadOrderDetails(path string) ([]DetailRecord, error) {
	rows, header, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []DetailRecord{}, nil
	}

	if containsColumn(header, "quality") && !containsColumn(header, "quantity") {
		header = append(header, "quantity")
		for _, r := range rows {
			r["quantity"] = r["quality"]
		}
	}

	required := []string{"id", "order_date", "user_id", "product_id", "quantity"}
	if missing := missingColumns(header, required); len(missing) > 0 {
		return nil, &SchemaError{Source: "order_details", Missing: missing, Found: header}
	}

	out := make([]DetailRecord, 0, len(rows))
	for _, r := range rows {
		id, err := parseInt("id", r["id"])
		if err != nil {
			return nil, err
		}
		uid, err := parseInt("user_id", r["user_id"])
		if err != nil {
			return nil, err
		}
		pid, err := parseInt("product_id", r["product_id"])
		if err != nil {
			return nil, err
		}
		qty, err := parseFloat("quantity", r["quantity"])
		if err != nil {
			return nil, err
		}
		d, err := ParseDate(r["order_date"])
		if err != nil {
			return nil, err
		}
		out = append(out, DetailRecord{ID: id, OrderDate: d, UserID: uid, ProductID: pid, Quantity: qty})
	}
	return out, nil
}

// readRows 把 CSV 读成 header + 按列名取值的行。
// 列校验只看表头这一行；后续行多出或缺少的字段按表头截断/留空，
// 这是沿用源数据工具的已知简化，不在这里收紧。
func readRows(path string) ([]map[string]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, &SchemaError{Source: path, Missing: []string{"<header>"}}
	}
	if err != nil {
		return nil, nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func missingColumns(header, required []string) []string {
	var missing []string
	for _, col := range required {
		if !containsColumn(header, col) {
			missing = append(missing, col)
		}
	}
	return missing
}

func containsColumn(header []string, name string) bool {
	for _, h := range header {
		if h == name {
			return true
		}
	}
	return false
}

func parseInt(field, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, &ParseError{Field: field, Value: value, Err: err}
	}
	return n, nil
}

func parseFloat(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, &ParseError{Field: field, Value: value, Err: err}
	}
	return f, nil
}
