package notify

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gdmcare/portal-api/internal/models"
)

// Notification kinds.
const (
	KindAppointmentBooked      = "appointment_booked"
	KindAppointmentCancelled   = "appointment_cancelled"
	KindAppointmentRescheduled = "appointment_rescheduled"
	KindDateBlocked            = "date_blocked"
	KindGlucoseHigh            = "glucose_high"
)

type Message struct {
	RecipientID uint
	Kind        string
	Text        string
}

// Dispatcher persists notification rows off the request path.
// Fire-and-forget: delivery failures are logged, never propagated.
type Dispatcher struct {
	db    *gorm.DB
	log   *zap.Logger
	queue chan Message
}

func NewDispatcher(db *gorm.DB, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		db:    db,
		log:   log,
		queue: make(chan Message, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		n := models.Notification{
			RecipientID: msg.RecipientID,
			Kind:        msg.Kind,
			Message:     msg.Text,
		}
		if err := d.db.Create(&n).Error; err != nil {
			d.log.Error("notification write failed",
				zap.String("kind", msg.Kind),
				zap.Uint("recipient_id", msg.RecipientID),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(msg Message) {
	select {
	case d.queue <- msg:
	default:
		d.log.Warn("notification queue full, dropping message",
			zap.String("kind", msg.Kind),
		)
	}
}
