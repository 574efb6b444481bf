package appointments

import (
	"fmt"
	"math/rand"
	"time"
)

var seedHours = []string{"09:00", "10:00", "11:00", "15:00", "16:00", "17:00"}

// GenerateHistory produces a synthetic appointment history spread over the
// trailing twelve months. Roughly 20% of records come out cancelled, 60%
// completed and 20% confirmed. Costs are resolved from the given price map.
// The result is demo/seed data only, never part of the booking loop.
func GenerateHistory(n int, prices map[string]int, now time.Time) []Appointment {
	services := Services()
	sources := Sources()

	out := make([]Appointment, 0, n)
	for i := 0; i < n; i++ {
		date := now.AddDate(0, -rand.Intn(12), 0)
		date = time.Date(date.Year(), date.Month(), rand.Intn(28)+1, 0, 0, 0, 0, date.Location())

		service := services[rand.Intn(len(services))]

		status := StatusConfirmed
		switch r := rand.Float64(); {
		case r > 0.8:
			status = StatusCancelled
		case r > 0.2:
			status = StatusCompleted
		}

		out = append(out, Appointment{
			ID:          fmt.Sprintf("hist-%d", i),
			PatientName: fmt.Sprintf("Paciente Histórico %d", i),
			Date:        date.Format("2006-01-02"),
			Time:        seedHours[rand.Intn(len(seedHours))],
			Service:     service,
			Cost:        prices[service],
			Status:      status,
			Source:      sources[rand.Intn(len(sources))],
			IsFollowUp:  service == ServiceFollowUp || rand.Float64() > 0.7,
		})
	}
	return out
}
