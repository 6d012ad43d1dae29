package synth

import (
	"time"

	"github.com/shopspring/decimal"
)

// 实体只在一次运行的内存里存在，装载完成即丢弃，没有更新删除路径。

type User struct {
	ID           int
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Salt         string
	Photo        string
	Status       int // 1 active / 2 inactive / 3 banned
}

type Location struct {
	ID       int
	Type     int // 1 home / 2 office / 3 warehouse
	Status   int
	UserID   int
	Location string
	Address  string
}

type Order struct {
	ID        int
	UserID    int
	Status    int
	CreatedAt time.Time
	UpdatedAt time.Time // 不早于 CreatedAt
}

type Product struct {
	ID             int
	Name           string
	EffectiveDate  time.Time
	EffectiveUntil time.Time // 晚于 EffectiveDate
	Photo          string
	Price          decimal.Decimal
	Status         int
}

type Category struct {
	ID   int
	Name string
}

type ProductCategory struct {
	ID         int
	ProductID  int
	CategoryID int
}

type OrderDetail struct {
	ID             int
	UserLocationID int
	OrderID        int
	ProductID      int
	Quantity       decimal.Decimal // 保留两位
	DeliveryDate   time.Time
	Status         int // 1 processing .. 6 canceled
}

// Dataset 五张实体表加品类关联，外键在装载前已全部闭合
type Dataset struct {
	Users         map[int]*User
	Locations     *LocationSet
	Orders        map[int]*Order
	Categories    []Category
	Products      map[int]*Product
	CategoryLinks []ProductCategory
	Details       []OrderDetail
}
