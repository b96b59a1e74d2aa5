package jobs

import (
	"log"
	"time"

	"github.com/dcabrera/music_academy/database"
	"github.com/dcabrera/music_academy/ledger"
	"github.com/dcabrera/music_academy/models"
	"github.com/dcabrera/music_academy/notifications"
)

// SendPaymentReminders emails students whose pending payments come due
// within the next three days.
func SendPaymentReminders() {
	log.Println("Running job: SendPaymentReminders...")

	now := time.Now()
	horizon := now.AddDate(0, 0, 3)

	var duePayments []models.Payment
	err := database.DB.
		Preload("Student").
		Where("status = ? AND due_date BETWEEN ? AND ?", models.PaymentPending, now, horizon).
		Find(&duePayments).Error
	if err != nil {
		log.Printf("Error fetching payments due soon: %v", err)
		return
	}

	if len(duePayments) == 0 {
		log.Println("No payments due soon.")
		return
	}

	for _, payment := range duePayments {
		studentEmail := ""
		if payment.Student.Email != nil {
			studentEmail = *payment.Student.Email
		}
		guardianEmail := ""
		if payment.Student.GuardianEmail != nil {
			guardianEmail = *payment.Student.GuardianEmail
		}
		notifications.SendPaymentReminder(
			payment.Student.FullName,
			studentEmail,
			guardianEmail,
			payment.Concept,
			ledger.FormatAmount(ledger.PendingBalance(&payment), payment.Currency),
			payment.DueDate.Format("January 2, 2006"),
		)
	}

	log.Printf("Sent %d payment reminder(s).", len(duePayments))
}
