package synth

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"kudata/internal/seed"
)

// orderKey (user_id, 下单日) 定位订单，避免逐样本扫全量订单
type orderKey struct {
	UserID int
	Date   string // 2006-01-02
}

func dayKey(userID int, t time.Time) orderKey {
	return orderKey{UserID: userID, Date: t.Format("2006-01-02")}
}

// buildOrderIndex 同键多单时先写的胜出
func buildOrderIndex(orders map[int]*Order) map[orderKey]int {
	idx := make(map[orderKey]int, len(orders))
	for _, id := range sortedKeys(orders) {
		o := orders[id]
		k := dayKey(o.UserID, o.CreatedAt)
		if _, ok := idx[k]; !ok {
			idx[k] = id
		}
	}
	return idx
}

// buildDetails 随机明细在前；样本明细走 (user_id, order_date) 索引对账，
// 索引未命中就为该用户当日新建一张订单并登记进索引。
func (s *Synthesizer) buildDetails(ds *Dataset, details []seed.DetailRecord) {
	index := buildOrderIndex(ds.Orders)
	orderIDs := sortedKeys(ds.Orders)
	nextOrderID := maxKey(ds.Orders) + 1

	ds.Details = make([]OrderDetail, 0, s.vol.Details+len(details))
	nextID := 1

	for i := 0; i < s.vol.Details; i++ {
		o := ds.Orders[orderIDs[s.intn(len(orderIDs))]]
		qty := decimal.NewFromFloat(s.fake.Float64Range(1, 5)).Round(2)
		ds.Details = append(ds.Details, OrderDetail{
			ID:             nextID,
			UserLocationID: s.ensureUserLocation(ds, o.UserID),
			OrderID:        o.ID,
			ProductID:      s.intn(s.vol.Products) + 1,
			Quantity:       qty,
			DeliveryDate:   s.randDate(o.CreatedAt, o.CreatedAt.AddDate(0, 0, 5)),
			Status:         s.intn(6) + 1,
		})
		nextID++
	}

	created := 0
	for _, d := range details {
		k := dayKey(d.UserID, d.OrderDate)
		orderID, ok := index[k]
		if !ok {
			orderID = nextOrderID
			nextOrderID++
			ds.Orders[orderID] = &Order{
				ID:        orderID,
				UserID:    d.UserID,
				Status:    1,
				CreatedAt: d.OrderDate,
				UpdatedAt: d.OrderDate,
			}
			index[k] = orderID
			created++
		}
		ds.Details = append(ds.Details, OrderDetail{
			ID:             nextID,
			UserLocationID: s.ensureUserLocation(ds, d.UserID),
			OrderID:        orderID,
			ProductID:      d.ProductID,
			Quantity:       decimal.NewFromFloat(d.Quantity).Round(2),
			DeliveryDate:   d.OrderDate,
			Status:         1, // processing
		})
		nextID++
	}
	if created > 0 {
		s.log.Info("created orders for unmatched sample details", zap.Int("count", created))
	}
}
