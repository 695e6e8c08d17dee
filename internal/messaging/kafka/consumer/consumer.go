package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-attendance/internal/bootstrap"
	"go-attendance/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Purger removes everything a feature stores for one employee code.
type Purger interface {
	PurgeEmployee(ctx context.Context, employeeID string) (int64, error)
}

// Backoff between purge attempts of one lifecycle message. It doubles after
// each failure up to maxPurgeBackoff.
var (
	purgeBackoff    = time.Second
	maxPurgeBackoff = time.Minute
)

// ConsumeEmployeeLifecycle purges timesheets and WFH approvals of deleted
// employees. A failed purge is retried with backoff on the same message,
// which is committed only once every purger succeeded. Cancelling ctx
// mid-retry leaves the message uncommitted for the next group member.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	timesheets Purger,
	approvals Purger,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.EventType != events.EmployeeDeleted || event.EmployeeCode == "" {
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		removedTimesheets, ok := purgeWithRetry(ctx, timesheets, event.EmployeeCode, log.With(zap.String("purger", "timesheets")))
		if !ok {
			log.Info("employee lifecycle consumer stopped")
			return
		}
		removedApprovals, ok := purgeWithRetry(ctx, approvals, event.EmployeeCode, log.With(zap.String("purger", "wfh_approvals")))
		if !ok {
			log.Info("employee lifecycle consumer stopped")
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		audit.Log(ctx, bootstrap.AuditLog{
			Action:  "EMPLOYEE_DELETED",
			Message: "Employee records purged",
			Meta: map[string]any{
				"employee_code":      event.EmployeeCode,
				"request_id":         event.RequestID,
				"timesheets_removed": removedTimesheets,
				"approvals_removed":  removedApprovals,
			},
		})
	}
}

// purgeWithRetry calls purger until it succeeds. It reports false when ctx
// ends first.
func purgeWithRetry(ctx context.Context, purger Purger, employeeCode string, log *zap.Logger) (int64, bool) {
	backoff := purgeBackoff
	for attempt := 1; ; attempt++ {
		removed, err := purger.PurgeEmployee(ctx, employeeCode)
		if err == nil {
			return removed, true
		}
		log.Error("purge employee failed",
			zap.String("employee_code", employeeCode),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", backoff),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return 0, false
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxPurgeBackoff {
			backoff = maxPurgeBackoff
		}
	}
}

// ConsumeAttendanceAudit writes WFH approvals from the attendance topic to
// the audit log. Other attendance events are acknowledged and skipped.
func ConsumeAttendanceAudit(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_audit")
	log.Info("attendance audit consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance audit consumer stopped")
				return
			}
			log.Error("fetch attendance message failed", zap.Error(err))
			continue
		}

		var envelope struct {
			EventType string `json:"event_type"`
		}
		if err := json.Unmarshal(msg.Value, &envelope); err != nil {
			log.Error("decode attendance event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if envelope.EventType == events.WFHApproved {
			var event events.WFHApprovedEvent
			if err := json.Unmarshal(msg.Value, &event); err == nil {
				audit.Log(ctx, bootstrap.AuditLog{
					Action:  "WFH_APPROVED",
					Message: "Work from home approved",
					Meta: map[string]any{
						"approval_id": event.ApprovalID,
						"employee_id": event.EmployeeID,
						"start_date":  event.StartDate,
						"end_date":    event.EndDate,
						"approved_by": event.ApprovedBy,
					},
				})
			}
		} else {
			log.Debug("attendance event observed", zap.String("event_type", envelope.EventType))
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit attendance message failed", zap.Error(err))
		}
	}
}
