package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var (
	ErrEndDateOnCurrent  = errors.New("current experience must not have an end date")
	ErrMissingEndDate    = errors.New("past experience must have an end date")
	ErrEndBeforeStart    = errors.New("end date is before start date")
	ErrMissingExperience = errors.New("experience id is required")
)

// WorkExperience is one entry of the work history.
type WorkExperience struct {
	ID           string   `json:"id"`
	Role         string   `json:"cargo"`
	Company      string   `json:"empresa"`
	Location     string   `json:"localizacao"`
	StartDate    Date     `json:"data_inicio"`
	EndDate      *Date    `json:"data_fim"`
	Description  string   `json:"descricao"`
	Technologies []string `json:"tecnologias"`
	Current      bool     `json:"atual"`
}

// NewWorkExperience checks the date invariants: an end date is absent iff
// the experience is current, and never precedes the start date.
func NewWorkExperience(e WorkExperience) (WorkExperience, error) {
	if e.ID == "" {
		return WorkExperience{}, ErrMissingExperience
	}
	switch {
	case e.Current && e.EndDate != nil:
		return WorkExperience{}, fmt.Errorf("experience %s: %w", e.ID, ErrEndDateOnCurrent)
	case !e.Current && e.EndDate == nil:
		return WorkExperience{}, fmt.Errorf("experience %s: %w", e.ID, ErrMissingEndDate)
	case e.EndDate != nil && e.EndDate.Before(e.StartDate.Time):
		return WorkExperience{}, fmt.Errorf("experience %s: %w", e.ID, ErrEndBeforeStart)
	}
	return e, nil
}
