package synth

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"kudata/internal/seed"
)

var (
	productEffectiveDate = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	standInUntil         = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	standInPrice         = decimal.NewFromInt(999)
)

// buildProducts 商品、品类和随机的多对多关联；
// 样本明细引用到的未知 product_id 补一个占位商品。
func (s *Synthesizer) buildProducts(ds *Dataset, details []seed.DetailRecord) {
	ds.Categories = make([]Category, 0, s.vol.Categories)
	for i := 1; i <= s.vol.Categories; i++ {
		ds.Categories = append(ds.Categories, Category{ID: i, Name: s.word()})
	}

	for i := 1; i <= s.vol.Products; i++ {
		ds.Products[i] = &Product{
			ID:             i,
			Name:           s.word() + " " + s.word(),
			EffectiveDate:  productEffectiveDate,
			EffectiveUntil: productEffectiveDate.AddDate(0, 0, 100+s.intn(701)),
			Photo:          s.fake.ImageURL(640, 480),
			Price:          decimal.NewFromFloat(s.fake.Price(10, 2000)).Round(2),
			Status:         s.intn(3) + 1,
		}
	}

	healed := 0
	for _, d := range details {
		if _, ok := ds.Products[d.ProductID]; ok {
			continue
		}
		ds.Products[d.ProductID] = &Product{
			ID:             d.ProductID,
			Name:           fmt.Sprintf("Dummy Product %d", d.ProductID),
			EffectiveDate:  productEffectiveDate,
			EffectiveUntil: standInUntil,
			Photo:          s.fake.ImageURL(640, 480),
			Price:          standInPrice,
			Status:         1,
		}
		healed++
	}
	if healed > 0 {
		s.log.Info("healed missing sample products", zap.Int("count", healed))
	}

	productIDs := sortedKeys(ds.Products)
	ds.CategoryLinks = make([]ProductCategory, 0, s.vol.CategoryLinks)
	for i := 1; i <= s.vol.CategoryLinks; i++ {
		ds.CategoryLinks = append(ds.CategoryLinks, ProductCategory{
			ID:         i,
			ProductID:  productIDs[s.intn(len(productIDs))],
			CategoryID: s.intn(len(ds.Categories)) + 1,
		})
	}
}
