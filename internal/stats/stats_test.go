package stats

import (
	"testing"
	"time"

	"github.com/drojedanicolas-commits/drojedanicolas/internal/appointments"
)

func apt(date, slot, status string, cost int, followUp bool) appointments.Appointment {
	return appointments.Appointment{
		ID:          "t-" + date + "-" + slot,
		PatientName: "Paciente",
		Date:        date,
		Time:        slot,
		Service:     appointments.ServiceTraumatology,
		Cost:        cost,
		Status:      status,
		Source:      appointments.SourceWeb,
		IsFollowUp:  followUp,
	}
}

func TestAggregateTotals(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	apts := []appointments.Appointment{
		apt("2024-06-01", "09:00", appointments.StatusCompleted, 5000, false),
		apt("2024-06-02", "09:00", appointments.StatusCompleted, 3000, true),
		apt("2024-06-03", "11:30", appointments.StatusCancelled, 5000, false),
		apt("2024-06-04", "16:00", appointments.StatusConfirmed, 8500, false),
	}

	s := Aggregate(apts, now)

	if s.TotalAppointments != 4 {
		t.Fatalf("total = %d, want 4", s.TotalAppointments)
	}
	if s.TotalCompleted != 2 || s.TotalCancelled != 1 {
		t.Fatalf("completed/cancelled = %d/%d, want 2/1", s.TotalCompleted, s.TotalCancelled)
	}
	if s.CancelRate != 25 {
		t.Fatalf("cancel rate = %v, want 25", s.CancelRate)
	}
	if s.CompletedFollowUps != 1 {
		t.Fatalf("completed follow-ups = %d, want 1", s.CompletedFollowUps)
	}
	// Revenue only counts completed visits.
	if s.EstimatedRevenue != 8000 {
		t.Fatalf("revenue = %d, want 8000", s.EstimatedRevenue)
	}
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC))
	if s.TotalAppointments != 0 || s.CancelRate != 0 || s.EstimatedRevenue != 0 {
		t.Fatalf("empty aggregate not zeroed: %+v", s)
	}
	if len(s.Monthly) != 12 {
		t.Fatalf("monthly histogram has %d buckets, want 12", len(s.Monthly))
	}
	for _, b := range s.Monthly {
		if b.Count != 0 {
			t.Fatalf("empty history produced nonzero bucket: %+v", b)
		}
	}
	if len(s.TopSlots) != 0 {
		t.Fatalf("empty history produced slots: %+v", s.TopSlots)
	}
}

func TestMonthlyWindow(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	apts := []appointments.Appointment{
		apt("2024-06-01", "09:00", appointments.StatusConfirmed, 5000, false),
		apt("2024-06-20", "10:00", appointments.StatusConfirmed, 5000, false),
		apt("2023-07-05", "09:00", appointments.StatusConfirmed, 5000, false),
		// Outside the trailing year, must be ignored.
		apt("2023-06-05", "09:00", appointments.StatusConfirmed, 5000, false),
		apt("2022-01-01", "09:00", appointments.StatusConfirmed, 5000, false),
	}

	m := Aggregate(apts, now).Monthly
	if len(m) != 12 {
		t.Fatalf("got %d buckets, want 12", len(m))
	}
	if m[0].Month != "jul" || m[0].Year != 2023 {
		t.Fatalf("first bucket = %+v, want jul 2023", m[0])
	}
	if m[11].Month != "jun" || m[11].Year != 2024 {
		t.Fatalf("last bucket = %+v, want jun 2024", m[11])
	}
	if m[0].Count != 1 {
		t.Fatalf("jul 2023 count = %d, want 1", m[0].Count)
	}
	if m[11].Count != 2 {
		t.Fatalf("jun 2024 count = %d, want 2", m[11].Count)
	}
	total := 0
	for _, b := range m {
		total += b.Count
	}
	if total != 3 {
		t.Fatalf("histogram total = %d, want 3 (out-of-window records leaked in)", total)
	}
}

func TestMonthlyAnchorsOnMonthEnd(t *testing.T) {
	// March 31 minus one month must land on February, not skip to March.
	now := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	m := Aggregate(nil, now).Monthly
	if m[10].Month != "feb" || m[10].Year != 2024 {
		t.Fatalf("bucket 10 = %+v, want feb 2024", m[10])
	}
	if m[11].Month != "mar" {
		t.Fatalf("bucket 11 = %+v, want mar 2024", m[11])
	}
}

func TestTopSlotsRanking(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	var apts []appointments.Appointment
	add := func(slot string, n int) {
		for i := 0; i < n; i++ {
			apts = append(apts, apt("2024-06-01", slot, appointments.StatusConfirmed, 5000, false))
		}
	}
	add("09:00", 3)
	add("10:00", 5)
	add("11:00", 3)
	add("15:00", 1)
	add("16:00", 2)
	add("17:00", 4)

	slots := Aggregate(apts, now).TopSlots
	if len(slots) != 5 {
		t.Fatalf("got %d slots, want 5", len(slots))
	}
	if slots[0].Time != "10:00" || slots[0].Count != 5 {
		t.Fatalf("busiest slot = %+v, want 10:00 x5", slots[0])
	}
	// Tied counts resolve by earlier time.
	if slots[2].Time != "09:00" || slots[3].Time != "11:00" {
		t.Fatalf("tie break wrong: %+v", slots)
	}
	for _, s := range slots {
		if s.Time == "15:00" {
			t.Fatalf("least requested slot should have been cut: %+v", slots)
		}
	}
}
