package catalog

import "testing"

func TestDefaultPrices(t *testing.T) {
	c := Default()

	tests := []struct {
		service string
		want    int
	}{
		{"Consulta Traumatología", 5000},
		{"Estudio de Posturología", 8500},
		{"Control", 3000},
	}
	for _, tt := range tests {
		if got := c.Cost(tt.service); got != tt.want {
			t.Errorf("Cost(%q) = %d, want %d", tt.service, got, tt.want)
		}
	}
}

func TestUnknownServiceFallsBack(t *testing.T) {
	c := Default()
	if got := c.Cost("Masajes"); got != DefaultCost {
		t.Errorf("Cost for unknown service = %d, want %d", got, DefaultCost)
	}
	if c.Has("Masajes") {
		t.Error("Has() should be false for unknown service")
	}
}

func TestLoadFromJSON(t *testing.T) {
	c, err := Load(`{"Consulta Traumatología": 6000, "Control": 3500}`, 4000)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := c.Cost("Consulta Traumatología"); got != 6000 {
		t.Errorf("expected overridden cost 6000, got %d", got)
	}
	if got := c.Cost("Otra Cosa"); got != 4000 {
		t.Errorf("expected fallback 4000, got %d", got)
	}
}

func TestLoadRejectsBadJSON(t *testing.T) {
	if _, err := Load(`{"Control": "tres mil"}`, 0); err == nil {
		t.Fatal("expected error for non-numeric price")
	}
}

func TestPricesCopyIsDetached(t *testing.T) {
	c := Default()
	p := c.Prices()
	p["Control"] = 1

	if got := c.Cost("Control"); got != 3000 {
		t.Errorf("catalog mutated through Prices() copy: %d", got)
	}
}
