package conversation

import (
	"fmt"
	"strings"

	"github.com/drojedanicolas-commits/drojedanicolas/internal/appointments"
	"github.com/drojedanicolas-commits/drojedanicolas/internal/catalog"
)

// ToolGetAvailableSlots and ToolBookAppointment are the only actions the
// model may request; everything else must stay in natural language.
const (
	ToolGetAvailableSlots = "getAvailableSlots"
	ToolBookAppointment   = "bookAppointment"
)

// AppointmentTools declares the two callable tools exposed to the model.
func AppointmentTools() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        ToolGetAvailableSlots,
			Description: "Consulta los horarios disponibles para una fecha específica.",
			Params: map[string]ToolParam{
				"date": {Type: "string", Description: "Formato YYYY-MM-DD"},
			},
			Required: []string{"date"},
		},
		{
			Name:        ToolBookAppointment,
			Description: "Reserva un turno final una vez que el paciente confirmó el horario.",
			Params: map[string]ToolParam{
				"patientName": {Type: "string", Description: "Nombre completo del paciente"},
				"date":        {Type: "string", Description: "Fecha elegida YYYY-MM-DD"},
				"time":        {Type: "string", Description: "Hora elegida HH:mm"},
				"service":     {Type: "string", Enum: appointments.Services()},
				"source":      {Type: "string", Enum: appointments.Sources()},
			},
			Required: []string{"patientName", "date", "time", "service", "source"},
		},
	}
}

// PromptConfig carries the clinic details interpolated into the system
// instruction.
type PromptConfig struct {
	DoctorName  string
	Specialties []string
	WorkHours   string
	Catalog     *catalog.Catalog
}

// SystemPrompt builds the fixed system instruction describing the booking
// flow. The flow is deliberate: greet, identify the patient, quote prices on
// request, offer a few nearby slots, repeat the details, and only call the
// booking tool after an explicit confirmation.
func SystemPrompt(cfg PromptConfig) string {
	doctor := cfg.DoctorName
	if doctor == "" {
		doctor = "Dr. Carlos Rodríguez"
	}
	specialties := cfg.Specialties
	if len(specialties) == 0 {
		specialties = []string{"Traumatología", "Posturología"}
	}
	cat := cfg.Catalog
	if cat == nil {
		cat = catalog.Default()
	}

	prices := fmt.Sprintf("Traumatología $%d, Posturología $%d, Control $%d",
		cat.Cost(appointments.ServiceTraumatology),
		cat.Cost(appointments.ServicePosturology),
		cat.Cost(appointments.ServiceFollowUp),
	)

	return fmt.Sprintf(`Eres la Secretaria Virtual del %s (%s).
Tu objetivo es que el paciente NO tenga que salir del chat para sacar un turno.

FLUJO DE CONVERSACIÓN:
1. Saludo: Sé amable y profesional.
2. Identificación: Si no sabes el nombre del paciente, pregúntaselo educadamente.
3. Costos: Si preguntan precios, informa: %s.
4. Disponibilidad: Ofrece siempre 2 o 3 opciones de horarios cercanos.
5. Confirmación: Antes de agendar, repite los datos: "Entonces, ¿confirmamos para el martes a las 10hs?".
6. Acción: Solo cuando el paciente diga "Sí" o "Confirmado", usa la herramienta 'bookAppointment'.

TONO SEGÚN CANAL:
- WhatsApp: Usa emojis médicos (👨‍⚕️, 🦴, 📅), sé ejecutivo y cálido.
- Web/Link: Sé más formal y estructurado.

REGLA DE ORO: Si el paciente está indeciso, ayúdalo. No esperes a que él adivine los horarios.`,
		doctor,
		joinSpecialties(specialties),
		prices,
	)
}

// joinSpecialties renders the list in Spanish: commas between items, "y"
// before the last one.
func joinSpecialties(specialties []string) string {
	out := make([]string, 0, len(specialties))
	for _, s := range specialties {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	switch len(out) {
	case 0:
		return ""
	case 1:
		return out[0]
	default:
		return strings.Join(out[:len(out)-1], ", ") + " y " + out[len(out)-1]
	}
}
