package models

import "time"

// User is a back-office account: an admin or a booking agent.
type User struct {
	UserID        string    `bson:"userid" json:"userid"`
	Username      string    `bson:"username" json:"username"`
	Name          string    `bson:"name,omitempty" json:"name,omitempty"`
	Email         string    `bson:"email,omitempty" json:"email,omitempty"`
	Password      string    `bson:"password" json:"password,omitempty"`
	Role          []string  `bson:"role" json:"role"`
	Active        bool      `bson:"active" json:"active"`
	PhotoPath     string    `bson:"photoPath,omitempty" json:"photoPath,omitempty"`
	RefreshToken  string    `bson:"refresh_token,omitempty" json:"-"`
	RefreshExpiry time.Time `bson:"refresh_expiry,omitempty" json:"-"`
	LastLogin     time.Time `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
