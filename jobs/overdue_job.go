package jobs

import (
	"log"
	"time"

	"github.com/dcabrera/music_academy/database"
	"github.com/dcabrera/music_academy/ledger"
)

// SweepOverduePayments flips pending payments past their due date to
// overdue. Runs from the cron scheduler.
func SweepOverduePayments() {
	log.Println("Running job: SweepOverduePayments...")

	updated, err := ledger.MarkOverdue(database.DB, time.Now())
	if err != nil {
		log.Printf("Error sweeping overdue payments: %v", err)
		return
	}

	if updated == 0 {
		log.Println("No payments became overdue.")
		return
	}
	log.Printf("Marked %d payment(s) as overdue.", updated)
}
