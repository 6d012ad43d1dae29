package synth

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kudata/internal/seed"
)

func testVolumes() Volumes {
	return Volumes{
		Users:         40,
		Locations:     30,
		Orders:        60,
		Products:      10,
		Categories:    4,
		CategoryLinks: 8,
		Details:       50,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildUsers(t *testing.T) {
	t.Run("emails unique across generated and healed users", func(t *testing.T) {
		s := New(42, testVolumes(), nil)
		ds := s.Build(
			[]seed.OrderRecord{{ID: 1, Date: day(2023, 5, 10), UserID: 99999}},
			[]seed.DetailRecord{{ID: 1, OrderDate: day(2023, 5, 10), UserID: 99999, ProductID: 3, Quantity: 2}},
		)
		seen := make(map[string]struct{}, len(ds.Users))
		for _, u := range ds.Users {
			_, dup := seen[u.Email]
			require.False(t, dup, "duplicate email %s", u.Email)
			seen[u.Email] = struct{}{}
		}
	})

	t.Run("missing sample user healed with status 1 and dummy email", func(t *testing.T) {
		s := New(42, testVolumes(), nil)
		ds := s.Build([]seed.OrderRecord{{ID: 1, Date: day(2023, 5, 10), UserID: 77777}}, nil)
		u := ds.Users[77777]
		require.NotNil(t, u)
		assert.Equal(t, 1, u.Status)
		assert.Equal(t, "dummy_77777@mail.com", u.Email)
		assert.NotEmpty(t, u.PasswordHash)
		assert.NotEmpty(t, u.Salt)
	})
}

func TestBuildOrders(t *testing.T) {
	t.Run("sample order overwrites colliding procedural id", func(t *testing.T) {
		s := New(42, testVolumes(), nil)
		ds := s.Build([]seed.OrderRecord{{ID: 5, Date: day(2023, 5, 10), UserID: 7}}, nil)
		o := ds.Orders[5]
		require.NotNil(t, o)
		assert.Equal(t, 7, o.UserID)
		assert.Equal(t, 1, o.Status)
		assert.True(t, o.CreatedAt.Equal(day(2023, 5, 10)))
		assert.True(t, o.UpdatedAt.Equal(o.CreatedAt))
	})

	t.Run("updated_at never precedes created_at", func(t *testing.T) {
		s := New(42, testVolumes(), nil)
		ds := s.Build(nil, nil)
		for _, o := range ds.Orders {
			assert.False(t, o.UpdatedAt.Before(o.CreatedAt), "order %d", o.ID)
		}
	})
}

func TestBuildProducts(t *testing.T) {
	s := New(42, testVolumes(), nil)
	ds := s.Build(nil, []seed.DetailRecord{
		{ID: 1, OrderDate: day(2023, 5, 10), UserID: 7, ProductID: 888, Quantity: 1},
	})

	t.Run("unknown sample product healed with placeholder price", func(t *testing.T) {
		p := ds.Products[888]
		require.NotNil(t, p)
		assert.Equal(t, 1, p.Status)
		assert.True(t, p.Price.Equal(decimal.NewFromInt(999)))
	})

	t.Run("effective window is always positive", func(t *testing.T) {
		for _, p := range ds.Products {
			assert.True(t, p.EffectiveUntil.After(p.EffectiveDate), "product %d", p.ID)
		}
	})

	t.Run("category links reference real rows", func(t *testing.T) {
		for _, rel := range ds.CategoryLinks {
			assert.Contains(t, ds.Products, rel.ProductID)
			assert.LessOrEqual(t, rel.CategoryID, len(ds.Categories))
			assert.Positive(t, rel.CategoryID)
		}
	})
}

func TestBuildDetails(t *testing.T) {
	t.Run("every foreign key resolves and location belongs to order user", func(t *testing.T) {
		s := New(42, testVolumes(), nil)
		ds := s.Build(
			[]seed.OrderRecord{{ID: 1, Date: day(2023, 5, 10), UserID: 7}},
			[]seed.DetailRecord{
				{ID: 1, OrderDate: day(2023, 5, 10), UserID: 7, ProductID: 3, Quantity: 2},
				{ID: 2, OrderDate: day(2023, 8, 1), UserID: 50001, ProductID: 4, Quantity: 1.5},
			},
		)
		for _, d := range ds.Details {
			o := ds.Orders[d.OrderID]
			require.NotNil(t, o, "detail %d order %d", d.ID, d.OrderID)
			loc := ds.Locations.Get(d.UserLocationID)
			require.NotNil(t, loc, "detail %d location %d", d.ID, d.UserLocationID)
			assert.Equal(t, o.UserID, loc.UserID, "detail %d", d.ID)
			assert.Contains(t, ds.Products, d.ProductID)
		}
	})

	t.Run("unmatched sample detail creates exactly one new order", func(t *testing.T) {
		vol := testVolumes()
		s := New(42, vol, nil)
		rec := seed.DetailRecord{ID: 1, OrderDate: day(2027, 3, 2), UserID: 12, ProductID: 3, Quantity: 2.5}
		ds := s.Build(nil, []seed.DetailRecord{rec})

		var matches []*Order
		for _, o := range ds.Orders {
			if o.UserID == 12 && o.CreatedAt.Equal(rec.OrderDate) {
				matches = append(matches, o)
			}
		}
		require.Len(t, matches, 1)
		assert.Equal(t, 1, matches[0].Status)
		assert.Greater(t, matches[0].ID, vol.Orders) // 顺延的新 id

		var details []OrderDetail
		for _, d := range ds.Details {
			if d.OrderID == matches[0].ID {
				details = append(details, d)
			}
		}
		require.Len(t, details, 1)
		assert.Equal(t, 3, details[0].ProductID)
		assert.True(t, details[0].Quantity.Equal(decimal.NewFromFloat(2.5)))
		assert.Equal(t, 1, details[0].Status)
	})

	t.Run("quantities carry two decimals in 1..5", func(t *testing.T) {
		s := New(42, testVolumes(), nil)
		ds := s.Build(nil, nil)
		one := decimal.NewFromInt(1)
		five := decimal.NewFromInt(5)
		for _, d := range ds.Details {
			assert.True(t, d.Quantity.GreaterThanOrEqual(one) && d.Quantity.LessThanOrEqual(five))
			assert.LessOrEqual(t, int(d.Quantity.Exponent()*-1), 2)
		}
	})

	t.Run("delivery within five days of order creation", func(t *testing.T) {
		s := New(42, testVolumes(), nil)
		ds := s.Build(nil, nil)
		for _, d := range ds.Details {
			o := ds.Orders[d.OrderID]
			assert.False(t, d.DeliveryDate.Before(o.CreatedAt))
			assert.False(t, d.DeliveryDate.After(o.CreatedAt.AddDate(0, 0, 5)))
		}
	})
}

// 对账黄金用例：固定的单行样本必须产出固定的实体
func TestReconcileFixedSample(t *testing.T) {
	s := New(42, testVolumes(), nil)
	date := day(2023, 5, 10)
	ds := s.Build(
		[]seed.OrderRecord{{ID: 1, Date: date, UserID: 7}},
		[]seed.DetailRecord{{ID: 1, OrderDate: date, UserID: 7, ProductID: 3, Quantity: 2}},
	)

	require.Contains(t, ds.Users, 7)

	o := ds.Orders[1]
	require.NotNil(t, o)
	assert.Equal(t, 7, o.UserID)
	assert.True(t, o.CreatedAt.Equal(date))

	var hits []OrderDetail
	for _, d := range ds.Details {
		if d.OrderID == 1 && d.ProductID == 3 {
			hits = append(hits, d)
		}
	}
	require.Len(t, hits, 1)
	assert.True(t, hits[0].Quantity.Equal(decimal.NewFromInt(2)))
}

func TestEnsureUserLocation(t *testing.T) {
	t.Run("idempotent without intervening inserts", func(t *testing.T) {
		s := New(42, testVolumes(), nil)
		ds := &Dataset{
			Users:     map[int]*User{1: {ID: 1}},
			Locations: NewLocationSet(),
		}
		first := s.ensureUserLocation(ds, 1)
		second := s.ensureUserLocation(ds, 1)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, ds.Locations.Len())

		loc := ds.Locations.Get(first)
		require.NotNil(t, loc)
		assert.Equal(t, 1, loc.Type)
		assert.Equal(t, 1, loc.Status)
	})

	t.Run("returns earliest existing location", func(t *testing.T) {
		s := New(42, testVolumes(), nil)
		ds := &Dataset{Users: map[int]*User{1: {ID: 1}}, Locations: NewLocationSet()}
		ds.Locations.add(&Location{ID: 3, UserID: 1})
		ds.Locations.add(&Location{ID: 9, UserID: 1})
		assert.Equal(t, 3, s.ensureUserLocation(ds, 1))
	})
}

func TestDeterminism(t *testing.T) {
	a := New(42, testVolumes(), nil).Build(nil, nil)
	b := New(42, testVolumes(), nil).Build(nil, nil)

	require.Equal(t, len(a.Users), len(b.Users))
	for id, u := range a.Users {
		assert.Equal(t, u.Name, b.Users[id].Name)
		assert.Equal(t, u.Email, b.Users[id].Email)
	}
	for id, o := range a.Orders {
		assert.True(t, o.CreatedAt.Equal(b.Orders[id].CreatedAt))
	}
}

func TestPlan(t *testing.T) {
	s := New(42, testVolumes(), nil)
	ds := s.Build(nil, nil)
	tables := Plan(ds)

	names := make([]string, 0, len(tables))
	for _, tbl := range tables {
		names = append(names, tbl.Name)
	}
	assert.Equal(t, []string{
		"ku_user_status", "ku_user",
		"ku_user_location_type", "ku_user_location_status", "ku_user_location",
		"ku_order_status", "ku_order",
		"ku_product_status", "ku_category", "ku_product", "ku_product_category",
		"ku_order_detail_status", "ku_order_detail",
	}, names)

	t.Run("user rows stream in id order", func(t *testing.T) {
		var count, last int
		for row := range tables[1].Rows {
			require.Len(t, row, len(tables[1].Columns))
			id := row[0].(int)
			assert.Greater(t, id, last)
			last = id
			count++
		}
		assert.Equal(t, len(ds.Users), count)
	})

	t.Run("sequences cover the six serial tables", func(t *testing.T) {
		seqs := Sequences()
		require.Len(t, seqs, 6)
		assert.Equal(t, "ku_user", seqs[0].Table)
		assert.Equal(t, "id", seqs[0].Column)
	})
}
