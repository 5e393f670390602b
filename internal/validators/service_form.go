package validators

import (
	"math"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
)

var serviceMessages = map[string]string{
	"name.min":         "Service name must be at least 2 characters",
	"duration.integer": "Duration must be a whole number of minutes",
	"duration.min":     "Duration must be at least 1 minute",
	"price.number":     "Price must be a number",
	"price.min":        "Price must be a positive number",
}

// ServiceForm is the raw service form. Numeric fields stay textual until parsed.
type ServiceForm struct {
	Name     string `form:"name" json:"name"`
	Duration string `form:"duration" json:"duration"`
	Price    string `form:"price" json:"price"`
}

type serviceValues struct {
	Name     string  `form:"name" validate:"min=2"`
	Duration int     `form:"duration" validate:"min=1"`
	Price    float64 `form:"price" validate:"min=0"`
}

// Validate parses the numeric fields before checking the rules; unparseable
// input is a field error, never a zero value.
func (f ServiceForm) Validate() (booking.ServiceInput, error) {
	errs := FieldErrors{}
	values := serviceValues{Name: f.Name}

	duration, err := strconv.Atoi(strings.TrimSpace(f.Duration))
	if err != nil {
		errs.add("duration", serviceMessages["duration.integer"])
	}
	values.Duration = duration

	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		errs.add("price", serviceMessages["price.number"])
	}
	values.Price = price

	errs.collect(validate.Struct(values), serviceMessages)

	if err := errs.orNil(); err != nil {
		return booking.ServiceInput{}, err
	}

	return booking.ServiceInput{
		Name:     values.Name,
		Duration: values.Duration,
		Price:    values.Price,
	}, nil
}
