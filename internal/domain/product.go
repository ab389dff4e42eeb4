package domain

// Product is a catalog record. The catalog is read-only from the cart's
// point of view; carts embed a copy of this struct, never a reference.
type Product struct {
	ID       string  `bson:"_id" json:"_id"`
	Name     string  `bson:"name" json:"name"`
	Category string  `bson:"category" json:"category"`
	Rating   float64 `bson:"rating" json:"rating"`
	Cost     float64 `bson:"cost" json:"cost"`
	Image    string  `bson:"image" json:"image"`
}
