// Package dto holds the typed request bodies for each record kind.
// Update variants use pointer fields so handlers can build a partial
// field set from only what the client sent.
package dto

type CreateEventRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	EventType  string `json:"event_type" binding:"required"`
	EventDate  string `json:"event_date"`
	GuestCount int    `json:"guest_count" binding:"gte=0"`
	Location   string `json:"location"`
	Message    string `json:"message"`
}

type UpdateEventRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Phone      *string `json:"phone"`
	EventType  *string `json:"event_type"`
	EventDate  *string `json:"event_date"`
	GuestCount *int    `json:"guest_count" binding:"omitempty,gte=0"`
	Location   *string `json:"location"`
	Message    *string `json:"message"`
	Status     *string `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
}

// Fields returns the partial $set document for the update.
func (u *UpdateEventRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	setString(fields, "name", u.Name)
	setString(fields, "email", u.Email)
	setString(fields, "phone", u.Phone)
	setString(fields, "event_type", u.EventType)
	setString(fields, "event_date", u.EventDate)
	if u.GuestCount != nil {
		fields["guest_count"] = *u.GuestCount
	}
	setString(fields, "location", u.Location)
	setString(fields, "message", u.Message)
	setString(fields, "status", u.Status)
	return fields
}

type CreateContactMessage struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

type UpdateContactMessage struct {
	Read *bool `json:"read"`
}

func (u *UpdateContactMessage) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.Read != nil {
		fields["read"] = *u.Read
	}
	return fields
}

type CreateGalleryItem struct {
	Title       string `json:"title" binding:"required"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url" binding:"required,url"`
	Description string `json:"description"`
}

type UpdateGalleryItem struct {
	Title       *string `json:"title"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
	Description *string `json:"description"`
}

func (u *UpdateGalleryItem) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	setString(fields, "title", u.Title)
	setString(fields, "category", u.Category)
	setString(fields, "image_url", u.ImageURL)
	setString(fields, "description", u.Description)
	return fields
}

type CreateProduct struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" binding:"gte=0"`
	ImageURL    string  `json:"image_url" binding:"omitempty,url"`
	Description string  `json:"description"`
	Available   bool    `json:"available"`
}

type UpdateProduct struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	ImageURL    *string  `json:"image_url" binding:"omitempty,url"`
	Description *string  `json:"description"`
	Available   *bool    `json:"available"`
}

func (u *UpdateProduct) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	setString(fields, "name", u.Name)
	setString(fields, "category", u.Category)
	if u.Price != nil {
		fields["price"] = *u.Price
	}
	setString(fields, "image_url", u.ImageURL)
	setString(fields, "description", u.Description)
	if u.Available != nil {
		fields["available"] = *u.Available
	}
	return fields
}

type CreateTestimonial struct {
	Name      string `json:"name" binding:"required"`
	EventType string `json:"event_type"`
	Rating    int    `json:"rating" binding:"required,gte=1,lte=5"`
	Message   string `json:"message" binding:"required"`
	ImageURL  string `json:"image_url" binding:"omitempty,url"`
}

type UpdateTestimonial struct {
	Name      *string `json:"name"`
	EventType *string `json:"event_type"`
	Rating    *int    `json:"rating" binding:"omitempty,gte=1,lte=5"`
	Message   *string `json:"message"`
	ImageURL  *string `json:"image_url" binding:"omitempty,url"`
	Approved  *bool   `json:"approved"`
}

func (u *UpdateTestimonial) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	setString(fields, "name", u.Name)
	setString(fields, "event_type", u.EventType)
	if u.Rating != nil {
		fields["rating"] = *u.Rating
	}
	setString(fields, "message", u.Message)
	setString(fields, "image_url", u.ImageURL)
	if u.Approved != nil {
		fields["approved"] = *u.Approved
	}
	return fields
}

func setString(fields map[string]interface{}, key string, value *string) {
	if value != nil {
		fields[key] = *value
	}
}
