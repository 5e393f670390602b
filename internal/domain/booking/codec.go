package booking

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// AppointmentFromRecord decodes a stored appointment. Missing fields decode to
// their zero value; fields of the wrong type are an error.
func AppointmentFromRecord(rec Record) (Appointment, error) {
	ap := Appointment{ID: rec.ID}

	var err error
	if ap.Name, err = stringField(rec.Fields, "name"); err != nil {
		return Appointment{}, err
	}
	if ap.Email, err = stringField(rec.Fields, "email"); err != nil {
		return Appointment{}, err
	}
	if ap.Phone, err = stringField(rec.Fields, "phone"); err != nil {
		return Appointment{}, err
	}
	if ap.Service, err = stringField(rec.Fields, "service"); err != nil {
		return Appointment{}, err
	}
	if ap.Date, err = timeField(rec.Fields, "date"); err != nil {
		return Appointment{}, err
	}

	return ap, nil
}

func ServiceFromRecord(rec Record) (Service, error) {
	svc := Service{ID: rec.ID}

	var err error
	if svc.Name, err = stringField(rec.Fields, "name"); err != nil {
		return Service{}, err
	}

	duration, err := numberField(rec.Fields, "duration")
	if err != nil {
		return Service{}, err
	}
	if duration != math.Trunc(duration) {
		return Service{}, fmt.Errorf("field duration: %v is not a whole number", duration)
	}
	svc.Duration = int(duration)

	if svc.Price, err = numberField(rec.Fields, "price"); err != nil {
		return Service{}, err
	}

	return svc, nil
}

func stringField(fields map[string]any, key string) (string, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %s: want string, got %T", key, v)
	}
	return s, nil
}

func timeField(fields map[string]any, key string) (time.Time, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return time.Time{}, nil
	}

	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, fmt.Errorf("field %s: %w", key, err)
		}
		return parsed, nil
	default:
		return time.Time{}, fmt.Errorf("field %s: want time, got %T", key, v)
	}
}

func numberField(fields map[string]any, key string) (float64, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return 0, nil
	}

	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("field %s: %w", key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("field %s: want number, got %T", key, v)
	}
}
