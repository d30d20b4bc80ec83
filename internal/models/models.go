package models

type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"userId"`
	Email    string `gorm:"uniqueIndex;not null"     json:"email"`
	Nickname string `gorm:"uniqueIndex;not null"     json:"nickname"`
	Password string `gorm:"not null"                 json:"-"`
}

type Goods struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"goodsId"`
	Name         string  `gorm:"not null"                 json:"name"`
	Category     string  `gorm:"index;not null"           json:"category"`
	Price        float64 `gorm:"not null"                 json:"price"`
	ThumbnailURL string  `json:"thumbnailUrl"`
}

func (Goods) TableName() string { return "goods" }

type CartItem struct {
	ID       uint `gorm:"primaryKey;autoIncrement"                 json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_cart_user_goods" json:"userId"`
	GoodsID  uint `gorm:"not null;uniqueIndex:idx_cart_user_goods" json:"goodsId"`
	Quantity uint `gorm:"not null"                                 json:"quantity"`
}
