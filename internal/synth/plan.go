package synth

import (
	"iter"

	"kudata/internal/bulk"
)

// Plan 把数据集展开成有序的装载步骤。字典表在前，外键被依赖的表
// 先于依赖方。map 背后的表按 id 升序吐行，固定种子下装载流一致。
func Plan(ds *Dataset) []bulk.Table {
	return []bulk.Table{
		{
			Name:    "ku_user_status",
			Columns: []string{"id", "name"},
			Rows: bulk.SliceRows([][]any{
				{1, "active"}, {2, "inactive"}, {3, "banned"},
			}),
		},
		{
			Name:    "ku_user",
			Columns: []string{"id", "name", "email", "phone", "password_hash", "salt", "photo", "status"},
			Rows:    userRows(ds),
		},
		{
			Name:    "ku_user_location_type",
			Columns: []string{"id", "name"},
			Rows: bulk.SliceRows([][]any{
				{1, "home"}, {2, "office"}, {3, "warehouse"},
			}),
		},
		{
			Name:    "ku_user_location_status",
			Columns: []string{"id", "name"},
			Rows: bulk.SliceRows([][]any{
				{1, "active"}, {2, "inactive"}, {3, "deleted"},
			}),
		},
		{
			Name:    "ku_user_location",
			Columns: []string{"id", "type", "status", "user_id", "location", "address"},
			Rows:    locationRows(ds),
		},
		{
			Name:    "ku_order_status",
			Columns: []string{"id", "name"},
			Rows: bulk.SliceRows([][]any{
				{1, "pending"}, {2, "success"}, {3, "waiting_payment"},
				{4, "error"}, {5, "void"}, {6, "user_cancel"},
				{7, "payment_timeout"}, {8, "refund_requested"},
				{9, "refund_approved"}, {10, "refund_declined"},
			}),
		},
		{
			Name:    "ku_order",
			Columns: []string{"id", "user_id", "status", "created_at", "updated_at"},
			Rows:    orderRows(ds),
		},
		{
			Name:    "ku_product_status",
			Columns: []string{"id", "name"},
			Rows: bulk.SliceRows([][]any{
				{1, "active"}, {2, "inactive"}, {3, "draft"},
			}),
		},
		{
			Name:    "ku_category",
			Columns: []string{"id", "name"},
			Rows:    categoryRows(ds),
		},
		{
			Name:    "ku_product",
			Columns: []string{"id", "name", "effective_date", "effective_until", "photo", "price", "status"},
			Rows:    productRows(ds),
		},
		{
			Name:    "ku_product_category",
			Columns: []string{"id", "product_id", "category_id"},
			Rows:    categoryLinkRows(ds),
		},
		{
			Name:    "ku_order_detail_status",
			Columns: []string{"id", "name"},
			Rows: bulk.SliceRows([][]any{
				{1, "processing"}, {2, "ready"}, {3, "packed"},
				{4, "shipped"}, {5, "delivered"}, {6, "canceled"},
			}),
		},
		{
			Name:    "ku_order_detail",
			Columns: []string{"id", "user_location_id", "order_id", "product_id", "quantity", "delivery_date", "status"},
			Rows:    detailRows(ds),
		},
	}
}

// Sequences 装载后需要回拨的六个 serial 列
func Sequences() []bulk.Sequence {
	return []bulk.Sequence{
		{Table: "ku_user", Column: "id"},
		{Table: "ku_user_location", Column: "id"},
		{Table: "ku_order", Column: "id"},
		{Table: "ku_product", Column: "id"},
		{Table: "ku_product_category", Column: "id"},
		{Table: "ku_order_detail", Column: "id"},
	}
}

func userRows(ds *Dataset) iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for _, id := range sortedKeys(ds.Users) {
			u := ds.Users[id]
			if !yield([]any{u.ID, u.Name, u.Email, u.Phone, u.PasswordHash, u.Salt, u.Photo, u.Status}) {
				return
			}
		}
	}
}

func locationRows(ds *Dataset) iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		all := ds.Locations.All()
		for _, id := range sortedKeys(all) {
			loc := all[id]
			if !yield([]any{loc.ID, loc.Type, loc.Status, loc.UserID, loc.Location, loc.Address}) {
				return
			}
		}
	}
}

func orderRows(ds *Dataset) iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for _, id := range sortedKeys(ds.Orders) {
			o := ds.Orders[id]
			if !yield([]any{o.ID, o.UserID, o.Status, o.CreatedAt, o.UpdatedAt}) {
				return
			}
		}
	}
}

func categoryRows(ds *Dataset) iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for _, c := range ds.Categories {
			if !yield([]any{c.ID, c.Name}) {
				return
			}
		}
	}
}

func productRows(ds *Dataset) iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for _, id := range sortedKeys(ds.Products) {
			p := ds.Products[id]
			if !yield([]any{p.ID, p.Name, p.EffectiveDate, p.EffectiveUntil, p.Photo, p.Price, p.Status}) {
				return
			}
		}
	}
}

func categoryLinkRows(ds *Dataset) iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for _, rel := range ds.CategoryLinks {
			if !yield([]any{rel.ID, rel.ProductID, rel.CategoryID}) {
				return
			}
		}
	}
}

func detailRows(ds *Dataset) iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for _, d := range ds.Details {
			if !yield([]any{d.ID, d.UserLocationID, d.OrderID, d.ProductID, d.Quantity, d.DeliveryDate, d.Status}) {
				return
			}
		}
	}
}
