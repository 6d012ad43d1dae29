package seed

import (
	"fmt"
	"strings"
)

// SchemaError 样本 CSV 表头缺少必需列
type SchemaError struct {
	Source  string
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s csv must contain columns [%s]; found [%s]",
		e.Source, strings.Join(e.Missing, " "), strings.Join(e.Found, " "))
}

// DateFormatError 日期字段不匹配任何已知格式
type DateFormatError struct {
	Value string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("unknown date format: %q", e.Value)
}

// ParseError 数值字段内容非法
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: bad value %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
