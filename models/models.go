package models

import (
	"time"
)

const (
	RoleManager = "MANAGER"
	RoleCashier = "CASHIER"
)

type User struct {
	Username string   `json:"username"`
	Password string   `json:"-"`
	Role     string   `json:"role"`
	Contact  *Contact `json:"contact,omitempty"`
}

type Contact struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Price      float64    `json:"price"`
	Stock      int        `json:"stock"`
	CategoryID *int       `json:"category_id,omitempty"`
	Category   *Category  `json:"category,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// ProductRef is the snapshot of a product carried on line item payloads:
// the identity and the price the subtotal was derived from.
type ProductRef struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Order struct {
	ID        int             `json:"id"`
	Username  string          `json:"username"`
	Total     float64         `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
	LineItems []OrderLineItem `json:"order_line_items,omitempty"`
}

type OrderLineItem struct {
	ID        int         `json:"id"`
	OrderID   int         `json:"order_id"`
	ProductID int         `json:"-"`
	Product   *ProductRef `json:"product,omitempty"`
	Quantity  int         `json:"quantity"`
	Subtotal  float64     `json:"subtotal"`
}

// OrderEvent is the message published after a committed order mutation.
type OrderEvent struct {
	OrderID  int       `json:"order_id"`
	Username string    `json:"username"`
	Type     string    `json:"type"` // order_created, order_deleted, line_item_created, line_item_updated, line_item_deleted
	Total    float64   `json:"total"`
	Occurred time.Time `json:"occurred"`
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}
