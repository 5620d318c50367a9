package bakery

import "time"

// Bakery is a shop that sells baked goods.
type Bakery struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// BakedGoods is never nil once loaded from the repository, so it
	// serialises as [] rather than null.
	BakedGoods []BakedGood `json:"baked_goods"`
}

// BakedGood is an item for sale at exactly one bakery.
type BakedGood struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	BakeryID  int64     `json:"bakery_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BakeryUpdate is a partial update to a bakery. Nil fields are left unchanged.
type BakeryUpdate struct {
	Name *string
}

// IsEmpty reports whether the update changes nothing.
func (u BakeryUpdate) IsEmpty() bool {
	return u.Name == nil
}
