package models

import "time"

// Inquiry statuses
const (
	InquiryStatusNew       = "new"
	InquiryStatusContacted = "contacted"
	InquiryStatusConverted = "converted"
	InquiryStatusClosed    = "closed"
)

// Inquiry is an inbound customer request, created from the public site.
type Inquiry struct {
	InquiryID   string    `bson:"inquiryid" json:"inquiryid"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	Phone       string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Destination string    `bson:"destination,omitempty" json:"destination,omitempty"`
	TravelDate  string    `bson:"travelDate,omitempty" json:"travelDate,omitempty"`
	Message     string    `bson:"message,omitempty" json:"message,omitempty"`
	Status      string    `bson:"status" json:"status"`
	AgentID     string    `bson:"agent,omitempty" json:"agent,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
