package entity

// DateLayout is the calendar date format used by every dated record
const DateLayout = "2006-01-02"

// PlaceholderVital marks a vital sign that has not been measured yet
const PlaceholderVital = "-"

// PatientStatus represents a patient's position in the care flow
type PatientStatus string

const (
	PatientStatusWaiting      PatientStatus = "Waiting"
	PatientStatusTriage       PatientStatus = "Triage"
	PatientStatusConsultation PatientStatus = "Consultation"
	PatientStatusObservation  PatientStatus = "Observation"
	PatientStatusDischarged   PatientStatus = "Discharged"
)

// PatientFlow is the linear order patients move through
var PatientFlow = []PatientStatus{
	PatientStatusWaiting,
	PatientStatusTriage,
	PatientStatusConsultation,
	PatientStatusObservation,
	PatientStatusDischarged,
}

// Valid reports whether s is part of the patient flow
func (s PatientStatus) Valid() bool {
	return s.index() >= 0
}

// Next returns the following status in the flow. ok is false for Discharged.
func (s PatientStatus) Next() (next PatientStatus, ok bool) {
	i := s.index()
	if i < 0 || i == len(PatientFlow)-1 {
		return "", false
	}
	return PatientFlow[i+1], true
}

// CanTransitionTo reports whether a patient in s may move to next.
// Staying in place or moving exactly one step forward is allowed.
func (s PatientStatus) CanTransitionTo(next PatientStatus) bool {
	if s == next {
		return s.Valid()
	}
	n, ok := s.Next()
	return ok && n == next
}

func (s PatientStatus) index() int {
	for i, st := range PatientFlow {
		if st == s {
			return i
		}
	}
	return -1
}

// PatientNote is a dated chart entry
type PatientNote struct {
	Date   string `json:"date"`
	Text   string `json:"text"`
	Author string `json:"author"`
}

// Vitals holds the last recorded vital signs
type Vitals struct {
	BP        string `json:"bp"`
	HeartRate string `json:"heart_rate"`
	Temp      string `json:"temp"`
}

// PlaceholderVitals returns vitals for a patient that has not been measured
func PlaceholderVitals() Vitals {
	return Vitals{BP: PlaceholderVital, HeartRate: PlaceholderVital, Temp: PlaceholderVital}
}

// Patient represents a registered patient and their chart
type Patient struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	DOB       string        `json:"dob"`
	Contact   string        `json:"contact"`
	History   string        `json:"history"`
	LastVisit string        `json:"last_visit"`
	Status    PatientStatus `json:"status"`
	Notes     []PatientNote `json:"notes"`
	Vitals    Vitals        `json:"vitals"`
}

// Clone returns a copy that shares no slices with p
func (p Patient) Clone() Patient {
	p.Notes = append([]PatientNote{}, p.Notes...)
	return p
}
