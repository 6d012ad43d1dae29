// Package store 定义 12+1 张 ku_* 表的 gorm 模型，仅供 seeder 的
// 可选 automigrate 使用；批量装载本身走 bulk 包的裸 INSERT。
package store

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserStatus struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"size:32;not null"`
}

func (UserStatus) TableName() string { return "ku_user_status" }

type User struct {
	ID           int    `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"size:255;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	Phone        string `gorm:"size:20"`
	PasswordHash string `gorm:"size:64;not null"`
	Salt         string `gorm:"size:32;not null"`
	Photo        string `gorm:"size:255"`
	Status       int    `gorm:"not null"`
}

func (User) TableName() string { return "ku_user" }

type UserLocationType struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"size:32;not null"`
}

func (UserLocationType) TableName() string { return "ku_user_location_type" }

type UserLocationStatus struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"size:32;not null"`
}

func (UserLocationStatus) TableName() string { return "ku_user_location_status" }

type UserLocation struct {
	ID       int    `gorm:"primaryKey;autoIncrement"`
	Type     int    `gorm:"not null"`
	Status   int    `gorm:"not null"`
	UserID   int    `gorm:"not null;index"`
	Location string `gorm:"size:255"`
	Address  string `gorm:"size:255"`
}

func (UserLocation) TableName() string { return "ku_user_location" }

type OrderStatus struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"size:32;not null"`
}

func (OrderStatus) TableName() string { return "ku_order_status" }

type Order struct {
	ID        int       `gorm:"primaryKey;autoIncrement"`
	UserID    int       `gorm:"not null;index"`
	Status    int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Order) TableName() string { return "ku_order" }

type ProductStatus struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"size:32;not null"`
}

func (ProductStatus) TableName() string { return "ku_product_status" }

type Category struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"size:64;not null"`
}

func (Category) TableName() string { return "ku_category" }

type Product struct {
	ID             int             `gorm:"primaryKey;autoIncrement"`
	Name           string          `gorm:"size:255;not null"`
	EffectiveDate  time.Time       `gorm:"type:date;not null"`
	EffectiveUntil time.Time       `gorm:"type:date;not null"`
	Photo          string          `gorm:"size:255"`
	Price          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status         int             `gorm:"not null"`
}

func (Product) TableName() string { return "ku_product" }

type ProductCategory struct {
	ID         int `gorm:"primaryKey;autoIncrement"`
	ProductID  int `gorm:"not null;index"`
	CategoryID int `gorm:"not null;index"`
}

func (ProductCategory) TableName() string { return "ku_product_category" }

type OrderDetailStatus struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"size:32;not null"`
}

func (OrderDetailStatus) TableName() string { return "ku_order_detail_status" }

type OrderDetail struct {
	ID             int             `gorm:"primaryKey;autoIncrement"`
	UserLocationID int             `gorm:"not null;index"`
	OrderID        int             `gorm:"not null;index"`
	ProductID      int             `gorm:"not null;index"`
	Quantity       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	DeliveryDate   time.Time       `gorm:"type:date;not null"`
	Status         int             `gorm:"not null"`
}

func (OrderDetail) TableName() string { return "ku_order_detail" }

// All automigrate 的建表顺序：被引用方在前
func All() []any {
	return []any{
		&UserStatus{}, &User{},
		&UserLocationType{}, &UserLocationStatus{}, &UserLocation{},
		&OrderStatus{}, &Order{},
		&ProductStatus{}, &Category{}, &Product{}, &ProductCategory{},
		&OrderDetailStatus{}, &OrderDetail{},
	}
}
