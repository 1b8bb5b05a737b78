package models

type User struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `json:"name"`
	Email string `gorm:"index;not null"           json:"email"`
	Role  string `gorm:"not null;default:user"    json:"role"`
}

type MenuItem struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"not null"                 json:"name"`
	Recipe   string  `json:"recipe"`
	Image    string  `json:"image"`
	Category string  `gorm:"index;not null"           json:"category"`
	Price    float64 `gorm:"not null"                 json:"price"`
}

type Review struct {
	ID      uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string  `json:"name"`
	Email   string  `gorm:"index"                    json:"email"`
	Details string  `json:"details"`
	Rating  float64 `json:"rating"`
}

type CartLine struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"   json:"id"`
	MenuItemID uint   `gorm:"not null"                   json:"menu_item_id"`
	UserEmail  string `gorm:"index;not null"             json:"user_email"`
	Quantity   uint   `gorm:"default:1;check:quantity>0" json:"quantity"`
}

type Payment struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserEmail     string  `gorm:"index;not null"           json:"user_email"`
	Price         float64 `gorm:"not null"                 json:"price"`
	TransactionID string  `gorm:"not null"                 json:"transaction_id"`
	CreatedAt     int64   `json:"created_at"`
}

type PaymentItem struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	PaymentID  uint    `gorm:"index;not null"           json:"payment_id"`
	MenuItemID uint    `gorm:"not null"                 json:"menu_item_id"`
	Category   string  `gorm:"index"                    json:"category"`
	Price      float64 `json:"price"`
}
