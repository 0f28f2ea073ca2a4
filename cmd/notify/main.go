package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mmttc/workshop-registration/internal/platform/mailer"
	"github.com/mmttc/workshop-registration/pkg/config"
	"github.com/mmttc/workshop-registration/pkg/events"
	"github.com/mmttc/workshop-registration/pkg/logger"
)

// The notify worker is the event-triggered confirmation path: it consumes
// registration.created and sends the fixed-subject plain-text email the old
// document-store function used to send on document creation.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	bus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer bus.Close()

	emailSvc := mailer.FromConfig(cfg.Email)

	err = bus.QueueSubscribe(events.RegistrationCreated, "notify", func(msg *events.Message) {
		var ev events.RegistrationCreatedEvent
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			logger.Error("Bad registration.created payload", "error", err)
			return
		}

		body := confirmationBody(ev, cfg.Workshop)
		if _, err := emailSvc.Send(ev.Email, ev.Name, mailer.ConfirmationSubject, body, ""); err != nil {
			logger.Error("Confirmation email failed", "error", err, "registration_id", ev.RegistrationID)
			return
		}
		logger.Info("Confirmation email sent", "registration_id", ev.RegistrationID, "to", ev.Email)
	})
	if err != nil {
		logger.Error("Subscribe failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Notify worker running", "subject", events.RegistrationCreated)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("Notify worker stopped")
}

func confirmationBody(ev events.RegistrationCreatedEvent, w config.WorkshopConfig) string {
	return fmt.Sprintf(`Hello %s,

Thank you for registering for the workshop on %q (%s).

Here are your registration details:
Name: %s
Email: %s
Phone: %s
Organisation: %s
Designation: %s
Contact Method: %s

Regards,
MMTTC, University of Jammu
`, ev.Name, w.Title, w.Dates, ev.Name, ev.Email, ev.Phone, ev.Affiliation, ev.Designation, ev.ContactMethod)
}
