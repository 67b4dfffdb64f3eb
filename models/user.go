package models

import "time"

// User is a cooperative member. The school-issued code is the primary key;
// credit and debt are stored in integer cents and mutated only through
// guarded atomic increments.
type User struct {
	Code            string    `bson:"code" json:"code"`
	FirstName       string    `bson:"firstName" json:"firstName"`
	LastName        string    `bson:"lastName" json:"lastName"`
	PasswordHash    string    `bson:"passwordHash" json:"-"`
	SecretCode      string    `bson:"secretCode" json:"-"`
	IsActive        bool      `bson:"isActive" json:"isActive"`
	IsStaff         bool      `bson:"isStaff" json:"isStaff"`
	IsSuperuser     bool      `bson:"isSuperuser" json:"isSuperuser"`
	IsSeller        bool      `bson:"isSeller" json:"isSeller"`
	CooperativeName string    `bson:"cooperativeName,omitempty" json:"cooperativeName,omitempty"`
	CreditCents     int64     `bson:"creditCents" json:"creditCents"`
	DebtCents       int64     `bson:"debtCents" json:"debtCents"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Privileged reports whether the user bypasses the availability gate.
func (u *User) Privileged() bool {
	return u.IsStaff || u.IsSuperuser || u.IsSeller
}
