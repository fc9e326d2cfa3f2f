// Package eventhandler contains domain event handlers. They are the
// reactive part of the system: they run after a command commits and
// trigger side effects like log alerts, without slowing the command path.
package eventhandler

import (
	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
	"github.com/campus-hub/campus-schedule-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ON RISK CHANGED HANDLER
// Reacts to a course crossing an attendance risk threshold. A worsening
// crossing is the signal worth surfacing; recoveries are logged quietly.
// ══════════════════════════════════════════════════════════════════════════════

// Alerter delivers risk alerts to the student. Implementations live in
// the infrastructure layer; tests use a recording fake.
type Alerter interface {
	Alert(courseID, message string) error
}

// OnRiskChangedHandler handles attendance risk threshold crossings.
type OnRiskChangedHandler struct {
	alerter Alerter
	log     *logger.Logger
}

// NewOnRiskChangedHandler creates a new OnRiskChangedHandler. A nil
// alerter degrades to log-only.
func NewOnRiskChangedHandler(alerter Alerter, log *logger.Logger) *OnRiskChangedHandler {
	if log == nil {
		log = logger.Default()
	}
	return &OnRiskChangedHandler{
		alerter: alerter,
		log:     log.With(logger.Component("on_risk_changed")),
	}
}

// Handle implements shared.EventHandler.
func (h *OnRiskChangedHandler) Handle(event shared.Event) error {
	riskEvent, ok := event.(shared.AttendanceRiskChangedEvent)
	if !ok {
		h.log.Warn("received unexpected event", logger.String("event_type", string(event.EventType())))
		return nil
	}

	h.log.Info("attendance risk changed",
		logger.CourseID(riskEvent.CourseID),
		logger.String("old_status", riskEvent.OldStatus),
		logger.String("new_status", riskEvent.NewStatus),
		logger.Float64("percentage", riskEvent.Percentage),
	)

	if !riskEvent.Worsened() || h.alerter == nil {
		return nil
	}

	msg := riskMessage(riskEvent)
	if err := h.alerter.Alert(riskEvent.CourseID, msg); err != nil {
		h.log.Error("failed to deliver risk alert",
			logger.CourseID(riskEvent.CourseID),
			logger.Err(err),
		)
		return err
	}

	return nil
}

// riskMessage builds the user-facing alert text.
func riskMessage(e shared.AttendanceRiskChangedEvent) string {
	switch e.NewStatus {
	case "danger":
		return "Attendance dropped below the minimum. Missing another class puts the course at risk."
	case "warning":
		return "Attendance is approaching the minimum. Plan remaining absences carefully."
	default:
		return "Attendance status changed to " + e.NewStatus + "."
	}
}
