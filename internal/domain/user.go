package domain

import "time"

// AddressNotSet is the placeholder address every user starts with.
// Checkout refuses to ship to it.
const AddressNotSet = "ADDRESS_NOT_SET"

type User struct {
	ID          string    `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	Password    string    `bson:"password" json:"-"`
	WalletMoney float64   `bson:"walletMoney" json:"walletMoney"`
	Address     string    `bson:"address" json:"address"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasSetNonDefaultAddress reports whether the user ever replaced the
// placeholder shipping address.
func (u *User) HasSetNonDefaultAddress() bool {
	return u.Address != AddressNotSet
}
