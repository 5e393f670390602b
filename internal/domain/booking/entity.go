package booking

import "time"

// Collection names used in the document store.
const (
	CollectionAppointments = "appointments"
	CollectionServices     = "services"
)

type Appointment struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Phone   string    `json:"phone"`
	Date    time.Time `json:"date"`
	Service string    `json:"service"`
}

type Service struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`
}

// AppointmentInput is an appointment before the store has assigned an id.
type AppointmentInput struct {
	Name    string
	Email   string
	Phone   string
	Date    time.Time
	Service string
}

type ServiceInput struct {
	Name     string
	Duration int
	Price    float64
}

func (in AppointmentInput) Fields() map[string]any {
	return map[string]any{
		"name":    in.Name,
		"email":   in.Email,
		"phone":   in.Phone,
		"date":    in.Date.UTC(),
		"service": in.Service,
	}
}

func (in ServiceInput) Fields() map[string]any {
	return map[string]any{
		"name":     in.Name,
		"duration": in.Duration,
		"price":    in.Price,
	}
}

func (in AppointmentInput) WithID(id string) Appointment {
	return Appointment{
		ID:      id,
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Date:    in.Date,
		Service: in.Service,
	}
}

func (in ServiceInput) WithID(id string) Service {
	return Service{
		ID:       id,
		Name:     in.Name,
		Duration: in.Duration,
		Price:    in.Price,
	}
}
