package handler

// --- Request / Response types ---

type createSweetRequest struct {
	Name     string   `json:"name" validate:"required"`
	Category string   `json:"category" validate:"required"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	Quantity *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
}

// updateSweetRequest carries a partial update; absent fields are untouched.
type updateSweetRequest struct {
	Name     *string  `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Quantity *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
}

// quantityRequest is the body of purchase and restock. Quantity is decoded
// as a number so that fractional amounts are reported as invalid amounts
// rather than as malformed JSON.
type quantityRequest struct {
	Quantity *float64 `json:"quantity"`
}

type sweetResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type movementResponse struct {
	Kind          string `json:"kind"`
	Amount        int    `json:"amount"`
	QuantityAfter int    `json:"quantity_after"`
	Actor         string `json:"actor"`
	At            string `json:"at"`
}
