package model

import "time"

// EventRequest is a planning enquiry submitted from the public site.
type EventRequest struct {
	ID         string    `bson:"_id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Email      string    `bson:"email" json:"email"`
	Phone      string    `bson:"phone" json:"phone"`
	EventType  string    `bson:"event_type" json:"event_type"`
	EventDate  string    `bson:"event_date" json:"event_date"`
	GuestCount int       `bson:"guest_count" json:"guest_count"`
	Location   string    `bson:"location" json:"location"`
	Message    string    `bson:"message" json:"message"`
	Status     string    `bson:"status" json:"status"` // pending, confirmed, completed, cancelled
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// ContactMessage is a message from the public contact form.
type ContactMessage struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone" json:"phone"`
	Subject   string    `bson:"subject" json:"subject"`
	Message   string    `bson:"message" json:"message"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type GalleryItem struct {
	ID          string    `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Category    string    `bson:"category" json:"category"`
	ImageURL    string    `bson:"image_url" json:"image_url"`
	Description string    `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

type Product struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Category    string    `bson:"category" json:"category"`
	Price       float64   `bson:"price" json:"price"`
	ImageURL    string    `bson:"image_url" json:"image_url"`
	Description string    `bson:"description" json:"description"`
	Available   bool      `bson:"available" json:"available"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

type Testimonial struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	EventType string    `bson:"event_type" json:"event_type"`
	Rating    int       `bson:"rating" json:"rating"`
	Message   string    `bson:"message" json:"message"`
	ImageURL  string    `bson:"image_url" json:"image_url"`
	Approved  bool      `bson:"approved" json:"approved"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
