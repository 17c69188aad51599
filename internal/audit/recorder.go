package audit

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"studiocrm/internal/models/db_models"
	"studiocrm/pkg/logger"
	"studiocrm/pkg/metrics"
	"studiocrm/pkg/utils"
)

// Store appends entries using the caller's transaction.
type Store interface {
	Insert(ctx context.Context, tx *gorm.DB, entry *db_models.AuditLog) error
}

type Recorder struct {
	store Store
}

func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

// Record appends entry inside tx. A nil entry is a no-op. Any failure is
// reported as utils.ErrAuditWrite so the caller rolls the mutation back.
func (r *Recorder) Record(ctx context.Context, tx *gorm.DB, entry *db_models.AuditLog) error {
	if entry == nil {
		return nil
	}

	if err := r.store.Insert(ctx, tx, entry); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrAuditWrite, err)
	}

	metrics.RecordAuditEntry(string(entry.ActionType))
	logger.FromContext(ctx).Debug("Audit entry appended",
		zap.String("action_type", string(entry.ActionType)),
		zap.String("target_model", entry.TargetModel),
		zap.String("target_id", entry.TargetID.String()),
		zap.String("user_email", entry.UserEmail),
	)
	return nil
}
