// Package models defines the core data structures for the event portal.
package models

// Identity represents one entry of the login allow-list.
type Identity struct {
	// Phone is the normalized 10-digit mobile number.
	Phone string
	// Name is the display name associated with the number.
	Name string
}

// Registration is one participation entry submitted by a parent.
type Registration struct {
	// Timestamp records when the entry was submitted.
	Timestamp string `json:"timestamp"`
	// Name is the participating student's name.
	Name string `json:"name"`
	// Class is the student's class.
	Class string `json:"class"`
	// Section is the student's section.
	Section string `json:"section"`
	// Item is the event or item the student participates in.
	Item string `json:"item"`
	// Contact is the phone number to reach the family at.
	Contact string `json:"contact"`
	// Address is the family's address.
	Address string `json:"address"`
	// Bus indicates whether the school bus is used ("Yes"/"No").
	Bus string `json:"bus"`
	// Status is the review status; always "Pending" when submitted.
	Status string `json:"status"`
}

// Announcement is one notice on the announcement board.
type Announcement struct {
	// Timestamp records when the notice was posted.
	Timestamp string `json:"timestamp"`
	// Title is the notice headline.
	Title string `json:"title"`
	// Message is the notice body.
	Message string `json:"message"`
	// PostedBy names the author shown with the notice.
	PostedBy string `json:"posted_by"`
}

// RegistrationStatusPending is the only status this service ever writes;
// entries are reviewed out of band.
const RegistrationStatusPending = "Pending"
