package leads

import "time"

// Lead is an unconverted inbound inquiry. Leads are illustrative dashboard
// data only; the booking loop never reads or mutates them.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// MockLeads returns the static demo inquiries shown on the dashboard.
func MockLeads(now time.Time) []Lead {
	return []Lead{
		{ID: "l1", Name: "Laura M.", Message: "Hola! Precio de posturología?", Source: "Instagram", Timestamp: now},
		{ID: "l2", Name: "Pedro S.", Message: "Tienen turno para mañana?", Source: "WhatsApp", Timestamp: now},
	}
}
