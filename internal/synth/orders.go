package synth

import (
	"time"

	"kudata/internal/seed"
)

var (
	orderWindowStart = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	orderWindowEnd   = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

// buildOrders 随机订单在前，样本订单随后以原 id 覆盖写入：
// 样本 id 优先，撞上随机订单时以样本为准。
func (s *Synthesizer) buildOrders(ds *Dataset, orders []seed.OrderRecord) {
	userIDs := sortedKeys(ds.Users)

	for id := 1; id <= s.vol.Orders; id++ {
		created := s.randDate(orderWindowStart, orderWindowEnd)
		ds.Orders[id] = &Order{
			ID:        id,
			UserID:    userIDs[s.intn(len(userIDs))],
			Status:    s.intn(4) + 1,
			CreatedAt: created,
			UpdatedAt: created.AddDate(0, 0, s.intn(11)),
		}
	}

	for _, o := range orders {
		ds.Orders[o.ID] = &Order{
			ID:        o.ID,
			UserID:    o.UserID,
			Status:    1,
			CreatedAt: o.Date,
			UpdatedAt: o.Date,
		}
	}
}
