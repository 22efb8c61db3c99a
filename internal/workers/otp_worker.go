package workers

import (
	"context"
	"time"

	"giglink_backend/internal/logger"

	"gorm.io/gorm"
)

// OTPWorker clears codes whose expiry passed. Verification checks expiry
// itself, so the sweep is hygiene for the users table, not a security gate.
type OTPWorker struct {
	db       *gorm.DB
	interval time.Duration
}

func NewOTPWorker(db *gorm.DB) *OTPWorker {
	return &OTPWorker{
		db:       db,
		interval: 10 * time.Minute,
	}
}

func (w *OTPWorker) Start(ctx context.Context) {
	go w.sweepExpiredCodes(ctx)
}

func (w *OTPWorker) sweepExpiredCodes(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("OTP worker stopped")
			return
		case <-ticker.C:
			result := w.db.Exec(`
				UPDATE users
				SET otp = NULL, otp_expiry = NULL, updated_at = NOW()
				WHERE otp IS NOT NULL
				AND otp_expiry < NOW()
			`)
			if result.Error != nil {
				logger.Error("Error sweeping expired OTP codes", "error", result.Error)
			} else if result.RowsAffected > 0 {
				logger.Info("Cleared expired OTP codes", "count", result.RowsAffected)
			}
		}
	}
}
