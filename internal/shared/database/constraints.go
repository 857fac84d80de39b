package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// One live ticket per (event, seat). Partial so cancelled and expired
	// tickets free the seat for re-booking. This index backstops the
	// FOR UPDATE serialization in the seat ledger.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_live_seat_per_event
		ON tickets (event_id, seat_number)
		WHERE status IN ('ACTIVE', 'USED');
	`).Error
	if err != nil {
		return err
	}

	// Index for the expiry sweep scan
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_status_valid_until
		ON tickets (status, valid_until);
	`).Error
	if err != nil {
		return err
	}

	// Index for user ticket history ordered by purchase date
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_user_purchase_date
		ON tickets (user_id, purchase_date DESC);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
