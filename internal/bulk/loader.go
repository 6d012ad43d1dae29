// Package bulk 把 (表名, 列, 行序列) 三元组按固定批量写入关系库。
// 整个装载跑在一个事务里：任何一批失败，全部回滚，没有重试。
package bulk

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultBatchSize 单条 INSERT 携带的最大行数
const DefaultBatchSize = 5000

// Table 一张待装载的表；Rows 可以是有限切片，也可以是惰性序列
type Table struct {
	Name    string
	Columns []string
	Rows    iter.Seq[[]any]
}

// SliceRows 把内存切片包装成行序列
func SliceRows(rows [][]any) iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for _, r := range rows {
			if !yield(r) {
				return
			}
		}
	}
}

// Sequence 装载后需要回拨的自增序列
type Sequence struct {
	Table  string
	Column string
}

type Loader struct {
	db    *gorm.DB
	log   *zap.Logger
	batch int
}

func NewLoader(db *gorm.DB, log *zap.Logger, batchSize int) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Loader{db: db, log: log, batch: batchSize}
}

// Load 按给定顺序装载所有表，一个事务，首错即止
func (l *Loader) Load(ctx context.Context, tables []Table) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, t := range tables {
			n, err := l.loadTable(tx, t)
			if err != nil {
				return fmt.Errorf("load %s: %w", t.Name, err)
			}
			l.log.Info("table loaded",
				zap.String("table", t.Name),
				zap.Int("rows", n),
				zap.Int("step", i+1),
				zap.Int("steps", len(tables)),
			)
		}
		return nil
	})
}

func (l *Loader) loadTable(tx *gorm.DB, t Table) (int, error) {
	buf := make([][]any, 0, l.batch)
	total := 0
	for row := range t.Rows {
		buf = append(buf, row)
		if len(buf) >= l.batch {
			if err := insertBatch(tx, t, buf); err != nil {
				return total, err
			}
			total += len(buf)
			buf = buf[:0]
		}
	}
	if len(buf) > 0 {
		if err := insertBatch(tx, t, buf); err != nil {
			return total, err
		}
		total += len(buf)
	}
	return total, nil
}

// insertBatch 多行 INSERT，一批一条语句；批内保持行序
func insertBatch(tx *gorm.DB, t Table, rows [][]any) error {
	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?,", len(t.Columns)), ",") + ")"

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(t.Name)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(t.Columns, ","))
	sb.WriteString(") VALUES ")

	args := make([]any, 0, len(rows)*len(t.Columns))
	for i, row := range rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row %d has %d values, want %d", i, len(row), len(t.Columns))
		}
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(placeholder)
		args = append(args, row...)
	}
	return tx.Exec(sb.String(), args...).Error
}

// SyncSequences 把 serial 序列回拨到 max(id)，后续库内自增不会
// 撞上样本带来的显式 id。仅 postgres 有此问题；mysql 的
// AUTO_INCREMENT 在显式插入后自动越过，跳过即可。
func (l *Loader) SyncSequences(ctx context.Context, seqs []Sequence) error {
	if l.db.Dialector.Name() != "postgres" {
		l.log.Warn("sequence sync skipped", zap.String("driver", l.db.Dialector.Name()))
		return nil
	}
	for _, s := range seqs {
		stmt := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence(?, ?), COALESCE(MAX(%s), 0)) FROM %s",
			s.Column, s.Table,
		)
		if err := l.db.WithContext(ctx).Exec(stmt, s.Table, s.Column).Error; err != nil {
			return fmt.Errorf("sync sequence %s.%s: %w", s.Table, s.Column, err)
		}
	}
	return nil
}
