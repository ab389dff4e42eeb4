package domain

import "time"

// DefaultPaymentOption is assigned to every newly created cart.
const DefaultPaymentOption = "PAYMENT_OPTION_DEFAULT"

type Cart struct {
	ID            string     `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string     `bson:"email" json:"email"`
	Items         []CartItem `bson:"cartItems" json:"cartItems"`
	PaymentOption string     `bson:"paymentOption" json:"paymentOption"`
	// Version guards read-modify-write cycles: saves match on the version
	// they loaded and bump it, so a stale writer never clobbers a newer cart.
	Version   int64     `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}

// CartItem pairs a product snapshot with a quantity. Product is an owned
// copy frozen at add-time; the price charged at checkout is the price the
// item was added at, not the current catalog price.
type CartItem struct {
	Product  Product `bson:"product" json:"product"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

// ItemFor returns the index of the item holding productID, or -1.
// A cart holds at most one item per distinct product id.
func (c *Cart) ItemFor(productID string) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Total is the checkout price: sum of snapshot cost times quantity.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Product.Cost * float64(item.Quantity)
	}
	return total
}
