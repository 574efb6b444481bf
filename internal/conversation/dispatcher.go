package conversation

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/drojedanicolas-commits/drojedanicolas/internal/appointments"
	"github.com/drojedanicolas-commits/drojedanicolas/internal/catalog"
	"github.com/drojedanicolas-commits/drojedanicolas/internal/observability/metrics"
	"github.com/drojedanicolas-commits/drojedanicolas/pkg/logging"
)

// Synthetic system-authored notes fed back into the session after handling a
// tool call. The model phrases these for the patient.
const (
	// Availability is a deliberate stub: the slots are fixed and are never
	// checked against existing appointments.
	slotsNote = "SISTEMA: Informa que hay cupos libres a las 09:00, 11:30 y 16:00 para esa fecha."

	bookedNote = "SISTEMA: Turno agendado con éxito. Confirma al paciente."

	failedNote = "SISTEMA: No se pudo agendar el turno por un problema interno. Pide disculpas al paciente y ofrécele intentar de nuevo."

	badArgsNote = "SISTEMA: Faltan datos para agendar el turno. Pide al paciente la información que falta y vuelve a intentarlo."
)

// Dispatcher translates model-issued tool calls into domain actions and
// produces the next conversational turn for each.
type Dispatcher struct {
	repo    appointments.Repository
	catalog *catalog.Catalog
	metrics *metrics.ConversationMetrics
	logger  *logging.Logger
}

// NewDispatcher creates a tool dispatcher bound to the appointment store and
// price catalog.
func NewDispatcher(repo appointments.Repository, cat *catalog.Catalog, m *metrics.ConversationMetrics, logger *logging.Logger) *Dispatcher {
	if repo == nil {
		panic("conversation: appointment repository cannot be nil")
	}
	if cat == nil {
		cat = catalog.Default()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{repo: repo, catalog: cat, metrics: m, logger: logger}
}

// Dispatch handles a single tool call and returns the assistant text produced
// by the follow-up round-trip. Unknown tool names are logged and skipped.
func (d *Dispatcher) Dispatch(ctx context.Context, sess *Session, call ToolCall, channel string) string {
	switch call.Name {
	case ToolGetAvailableSlots:
		return d.availableSlots(ctx, sess, call)
	case ToolBookAppointment:
		return d.bookAppointment(ctx, sess, call, channel)
	default:
		d.logger.Warn("conversation: model requested unknown tool", "tool", call.Name, "session_id", sess.ID())
		return ""
	}
}

func (d *Dispatcher) availableSlots(ctx context.Context, sess *Session, call ToolCall) string {
	if _, ok := stringArg(call.Args, "date"); !ok {
		d.logger.Warn("conversation: getAvailableSlots called without a date", "session_id", sess.ID())
		return sess.sendSystem(ctx, badArgsNote)
	}
	return sess.sendSystem(ctx, slotsNote)
}

func (d *Dispatcher) bookAppointment(ctx context.Context, sess *Session, call ToolCall, channel string) string {
	patientName, okName := stringArg(call.Args, "patientName")
	date, okDate := stringArg(call.Args, "date")
	timeStr, okTime := stringArg(call.Args, "time")
	service, okService := stringArg(call.Args, "service")
	if !okName || !okDate || !okTime || !okService {
		// Fail the turn explicitly instead of constructing a broken record;
		// the model gets to ask the patient for whatever is missing.
		d.logger.Warn("conversation: bookAppointment with missing arguments",
			"session_id", sess.ID(),
			"has_name", okName, "has_date", okDate, "has_time", okTime, "has_service", okService,
		)
		return sess.sendSystem(ctx, badArgsNote)
	}

	source, _ := stringArg(call.Args, "source")
	if !appointments.ValidSource(source) {
		source = channel
	}

	apt := appointments.Appointment{
		ID:          uuid.New().String(),
		PatientName: patientName,
		Date:        date,
		Time:        timeStr,
		Service:     service,
		Cost:        d.catalog.Cost(service),
		Status:      appointments.StatusConfirmed,
		Source:      source,
		IsFollowUp:  service == appointments.ServiceFollowUp,
	}

	if err := d.repo.Add(ctx, apt); err != nil {
		// Never confirm a booking the store did not accept.
		d.logger.Error("conversation: failed to store booking", "error", err, "session_id", sess.ID())
		return sess.sendSystem(ctx, failedNote)
	}

	d.metrics.ObserveBooking(apt.Service, apt.Source)
	d.logger.Info("conversation: appointment booked",
		"session_id", sess.ID(),
		"appointment_id", apt.ID,
		"service", apt.Service,
		"source", apt.Source,
		"date", apt.Date,
		"time", apt.Time,
	)
	return sess.sendSystem(ctx, bookedNote)
}

func stringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
