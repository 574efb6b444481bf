package appointments

import "strings"

// Service types offered by the clinic. The set is closed: the conversational
// tools and the price catalog both enumerate exactly these values.
const (
	ServiceTraumatology = "Consulta Traumatología"
	ServicePosturology  = "Estudio de Posturología"
	ServiceFollowUp     = "Control"
)

// Source channels a booking request can arrive through.
const (
	SourceWhatsApp  = "WhatsApp"
	SourceInstagram = "Instagram"
	SourceEmail     = "Email"
	SourceWeb       = "Web"
)

// Appointment statuses. There is deliberately no transition graph: the
// dashboard may move an appointment from any status to any other.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Appointment is a scheduled patient visit. Cost is resolved from the price
// catalog once at creation time and never recalculated afterwards.
type Appointment struct {
	ID          string `json:"id"`
	PatientName string `json:"patientName"`
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"` // HH:mm
	Service     string `json:"service"`
	Cost        int    `json:"cost"`
	Status      string `json:"status"`
	Source      string `json:"source"`
	IsFollowUp  bool   `json:"isFollowUp"`
}

// Services returns the closed set of bookable services.
func Services() []string {
	return []string{ServiceTraumatology, ServicePosturology, ServiceFollowUp}
}

// Sources returns the known booking channels.
func Sources() []string {
	return []string{SourceWhatsApp, SourceInstagram, SourceEmail, SourceWeb}
}

// ValidStatus reports whether s is one of the known appointment statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// ValidSource reports whether s is a known booking channel.
func ValidSource(s string) bool {
	switch s {
	case SourceWhatsApp, SourceInstagram, SourceEmail, SourceWeb:
		return true
	}
	return false
}

// Validate checks the fields required to persist an appointment.
func (a *Appointment) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(a.PatientName) == "" {
		return ErrMissingPatientName
	}
	if strings.TrimSpace(a.Date) == "" || strings.TrimSpace(a.Time) == "" {
		return ErrMissingSchedule
	}
	if !ValidStatus(a.Status) {
		return ErrInvalidStatus
	}
	return nil
}
