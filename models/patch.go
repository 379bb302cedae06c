package models

// Patch types spell out which attributes an update may touch. A nil field
// means "leave as is"; Apply merges the patch into the current entity
// without mutating it.

type UserPatch struct {
	Password *string `json:"password" binding:"omitempty,max=100"`
	Role     *string `json:"role" binding:"omitempty,oneof=MANAGER CASHIER"`
}

func (p UserPatch) Apply(u User) User {
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	return u
}

type ContactPatch struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Email     *string `json:"email" binding:"omitempty,email,max=200"`
	Phone     *string `json:"phone" binding:"omitempty,max=20"`
}

func (p ContactPatch) Apply(c Contact) Contact {
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	return c
}

type ProductPatch struct {
	Name       *string  `json:"name" binding:"omitempty,max=100"`
	Price      *float64 `json:"price" binding:"omitempty,gt=0"`
	Stock      *int     `json:"stock" binding:"omitempty,min=0"`
	CategoryID *int     `json:"category_id" binding:"omitempty,min=1"`
}

func (p ProductPatch) Apply(prod Product) Product {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.Price != nil {
		prod.Price = *p.Price
	}
	if p.Stock != nil {
		prod.Stock = *p.Stock
	}
	if p.CategoryID != nil {
		id := *p.CategoryID
		prod.CategoryID = &id
	}
	return prod
}
