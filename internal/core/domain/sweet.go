package domain

import (
	"strings"
	"time"
)

// Sweet is an inventory item.
type Sweet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the invariants every stored sweet must hold.
func (s *Sweet) Validate() error {
	ve := &ValidationError{}
	if strings.TrimSpace(s.Name) == "" {
		ve.Add("name is required")
	}
	if strings.TrimSpace(s.Category) == "" {
		ve.Add("category is required")
	}
	if s.Price < 0 {
		ve.Add("price must not be negative")
	}
	if s.Quantity < 0 {
		ve.Add("quantity must not be negative")
	}
	return ve.OrNil()
}

// SweetPatch is a partial update; nil fields are left untouched.
type SweetPatch struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int
}

// Empty reports whether the patch changes nothing.
func (p SweetPatch) Empty() bool {
	return p.Name == nil && p.Category == nil && p.Price == nil && p.Quantity == nil
}

// Normalize trims the string fields in place.
func (p *SweetPatch) Normalize() {
	if p.Name != nil {
		v := strings.TrimSpace(*p.Name)
		p.Name = &v
	}
	if p.Category != nil {
		v := strings.TrimSpace(*p.Category)
		p.Category = &v
	}
}

// Validate checks only the fields present in the patch.
func (p SweetPatch) Validate() error {
	ve := &ValidationError{}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		ve.Add("name must not be empty")
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		ve.Add("category must not be empty")
	}
	if p.Price != nil && *p.Price < 0 {
		ve.Add("price must not be negative")
	}
	if p.Quantity != nil && *p.Quantity < 0 {
		ve.Add("quantity must not be negative")
	}
	return ve.OrNil()
}

// Apply returns a copy of s with the patch applied.
func (p SweetPatch) Apply(s Sweet) Sweet {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.Quantity != nil {
		s.Quantity = *p.Quantity
	}
	return s
}
