package model

import (
	"errors"
	"fmt"
	"strings"
)

// IncidentRules holds the validation thresholds an Incident is
// checked against. The values come from the repository so they can
// be tuned without touching the domain type.
type IncidentRules struct {
	MinDescriptionLength int
}

// defaultMinDescription applies when rules carry no explicit minimum.
const defaultMinDescription = 10

// ErrTipNameTooShort is returned by SetTipName for names under 3 characters.
var ErrTipNameTooShort = errors.New("tip name must be at least 3 characters")

// ErrLocationEmpty is returned by SetLocation for blank locations.
var ErrLocationEmpty = errors.New("location cannot be empty")

// Incident is the domain view of a single tip, independent of
// storage. Tip name and location are guarded by validating setters;
// every other field is unconstrained at this layer.
type Incident struct {
	ID           uint64
	IncidentType string
	Description  string
	Urgency      string
	CreatedBy    *uint64

	tipName  string
	location string
}

// NewIncident builds an Incident, running the guarded fields
// through their setters.
func NewIncident(tipName, incidentType, location, description, urgency string, createdBy *uint64) (Incident, error) {
	inc := Incident{
		IncidentType: incidentType,
		Description:  description,
		Urgency:      urgency,
		CreatedBy:    createdBy,
	}
	if err := inc.SetTipName(tipName); err != nil {
		return Incident{}, err
	}
	if err := inc.SetLocation(location); err != nil {
		return Incident{}, err
	}
	return inc, nil
}

// TipName returns the guarded tip name.
func (i Incident) TipName() string { return i.tipName }

// SetTipName rejects names shorter than 3 characters after trimming.
func (i *Incident) SetTipName(v string) error {
	if len(strings.TrimSpace(v)) < 3 {
		return ErrTipNameTooShort
	}
	i.tipName = v
	return nil
}

// Location returns the guarded location.
func (i Incident) Location() string { return i.location }

// SetLocation rejects locations that are empty after trimming.
func (i *Incident) SetLocation(v string) error {
	if strings.TrimSpace(v) == "" {
		return ErrLocationEmpty
	}
	i.location = v
	return nil
}

// Validate reports whether the trimmed description meets the
// configured minimum length (10 when the rules carry none).
func (i Incident) Validate(rules IncidentRules) bool {
	min := rules.MinDescriptionLength
	if min <= 0 {
		min = defaultMinDescription
	}
	return len(strings.TrimSpace(i.Description)) >= min
}

// DisplaySummary renders the fixed one-line form
// "[INCIDENT_TYPE] tip_name — location (urgency)".
func (i Incident) DisplaySummary() string {
	return fmt.Sprintf("[%s] %s — %s (%s)",
		strings.ToUpper(i.IncidentType), i.tipName, i.location, i.Urgency)
}
