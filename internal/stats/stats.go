// Package stats computes the dashboard aggregates. Everything here is pure
// and recomputed from the full appointment list on each request; at clinic
// scale there is nothing worth maintaining incrementally.
package stats

import (
	"sort"
	"time"

	"github.com/drojedanicolas-commits/drojedanicolas/internal/appointments"
)

// Spanish short month names, January first.
var monthNames = []string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

// MonthBucket is one bar of the trailing 12-month histogram.
type MonthBucket struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
	Count int    `json:"count"`
}

// SlotCount is one entry of the most-requested time slots ranking.
type SlotCount struct {
	Time  string `json:"time"`
	Count int    `json:"count"`
}

// Summary holds every aggregate the dashboard renders.
type Summary struct {
	TotalAppointments  int           `json:"totalAppointments"`
	TotalCompleted     int           `json:"totalCompleted"`
	TotalCancelled     int           `json:"totalCancelled"`
	CancelRate         float64       `json:"cancelRate"` // percent
	CompletedFollowUps int           `json:"completedFollowUps"`
	EstimatedRevenue   int           `json:"estimatedRevenue"`
	Monthly            []MonthBucket `json:"monthly"`  // oldest first, 12 buckets
	TopSlots           []SlotCount   `json:"topSlots"` // at most 5, busiest first
}

// Aggregate computes the dashboard summary over the full appointment list.
// The monthly histogram covers the 12 months ending at now.
func Aggregate(apts []appointments.Appointment, now time.Time) Summary {
	s := Summary{TotalAppointments: len(apts)}

	slotCounts := make(map[string]int)
	for _, a := range apts {
		switch a.Status {
		case appointments.StatusCompleted:
			s.TotalCompleted++
			s.EstimatedRevenue += a.Cost
			if a.IsFollowUp {
				s.CompletedFollowUps++
			}
		case appointments.StatusCancelled:
			s.TotalCancelled++
		}
		slotCounts[a.Time]++
	}

	if len(apts) > 0 {
		s.CancelRate = float64(s.TotalCancelled) / float64(len(apts)) * 100
	}

	s.Monthly = monthly(apts, now)
	s.TopSlots = topSlots(slotCounts, 5)
	return s
}

func monthly(apts []appointments.Appointment, now time.Time) []MonthBucket {
	buckets := make([]MonthBucket, 12)
	index := make(map[[2]int]int, 12)
	// Anchor on the first of the month so AddDate never skips short months.
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		m := anchor.AddDate(0, i-11, 0)
		buckets[i] = MonthBucket{Month: monthNames[m.Month()-1], Year: m.Year()}
		index[[2]int{m.Year(), int(m.Month())}] = i
	}

	for _, a := range apts {
		d, err := time.Parse("2006-01-02", a.Date)
		if err != nil {
			continue
		}
		if i, ok := index[[2]int{d.Year(), int(d.Month())}]; ok {
			buckets[i].Count++
		}
	}
	return buckets
}

func topSlots(counts map[string]int, n int) []SlotCount {
	out := make([]SlotCount, 0, len(counts))
	for t, c := range counts {
		out = append(out, SlotCount{Time: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Time < out[j].Time
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
