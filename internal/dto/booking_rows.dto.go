package dto

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
)

// DateTimeLayout is how appointment dates are shown in the dashboard.
const DateTimeLayout = "Jan 2, 2006 3:04 PM"

type AppointmentRowDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	ServiceID   string    `json:"service_id"`
	ServiceName string    `json:"service_name"`
	Date        time.Time `json:"date"`
	DateLabel   string    `json:"date_label"`
}

type ServiceRowDTO struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Duration   int     `json:"duration"`
	Price      float64 `json:"price"`
	PriceLabel string  `json:"price_label"`
}

// AppointmentRows resolves each appointment's service id to the current
// service name. Ids of removed services are shown as stored.
func AppointmentRows(appts []booking.Appointment, services []booking.Service, loc *time.Location) []AppointmentRowDTO {
	names := make(map[string]string, len(services))
	for _, s := range services {
		names[s.ID] = s.Name
	}

	rows := make([]AppointmentRowDTO, 0, len(appts))
	for _, a := range appts {
		name, ok := names[a.Service]
		if !ok {
			name = a.Service
		}
		rows = append(rows, AppointmentRowDTO{
			ID:          a.ID,
			Name:        a.Name,
			Email:       a.Email,
			Phone:       a.Phone,
			ServiceID:   a.Service,
			ServiceName: name,
			Date:        a.Date,
			DateLabel:   a.Date.In(loc).Format(DateTimeLayout),
		})
	}
	return rows
}

func ServiceRows(services []booking.Service) []ServiceRowDTO {
	rows := make([]ServiceRowDTO, 0, len(services))
	for _, s := range services {
		rows = append(rows, ServiceRowDTO{
			ID:         s.ID,
			Name:       s.Name,
			Duration:   s.Duration,
			Price:      s.Price,
			PriceLabel: FormatPrice(s.Price),
		})
	}
	return rows
}

func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}
