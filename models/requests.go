package models

type RegisterUserRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=100"`
	Role     string `json:"role" binding:"omitempty,oneof=MANAGER CASHIER"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=100"`
}

type CreateContactRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email,max=200"`
	Phone     string `json:"phone" binding:"required,max=20"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type CreateProductRequest struct {
	Name       string  `json:"name" binding:"required,max=100"`
	Price      float64 `json:"price" binding:"required,gt=0"`
	Stock      int     `json:"stock" binding:"required,gt=0"`
	CategoryID int     `json:"category_id" binding:"required,min=1"`
}

// CreateOrderRequest carries the client's view of an order. Price is kept
// for wire compatibility with existing clients but subtotals are derived
// from the product row read under lock, not from this hint.
type CreateOrderRequest struct {
	Username  string                 `json:"username" binding:"required,max=100"`
	LineItems []OrderLineItemRequest `json:"order_line_items" binding:"required,min=1,dive"`
}

type OrderLineItemRequest struct {
	ProductID int     `json:"product_id" binding:"required,min=1"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Price     float64 `json:"price" binding:"omitempty,min=0"`
}

type CreateLineItemRequest struct {
	OrderID   int `json:"order_id" binding:"required,min=1"`
	ProductID int `json:"product_id" binding:"required,min=1"`
	Quantity  int `json:"quantity" binding:"required,min=1"`
}

type UpdateLineItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}
