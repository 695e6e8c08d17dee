package wfh

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/dateutil"
	wfherrors "go-attendance/internal/wfh/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	ApprovalsKeyPrefix = "wfh:approvals:"
	approvalsCacheTTL  = 10 * time.Minute
)

func GetApprovalsKey(employeeID string) string {
	return ApprovalsKeyPrefix + employeeID
}

//go:generate mockgen -source=wfh_service.go -destination=mock/wfh_service_mock.go -package=mock
type Service interface {
	Approve(ctx context.Context, actorID string, req ApproveWFHRequest) (ApprovalResponse, error)
	IsApprovedForDate(ctx context.Context, employeeID, date string) (bool, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]ApprovalResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]ApprovalResponse, error)
	PurgeEmployee(ctx context.Context, employeeID string) (int64, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("wfh.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("wfh.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Approve(ctx context.Context, actorID string, req ApproveWFHRequest) (ApprovalResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	employeeID := strings.TrimSpace(req.EmployeeID)
	s.logger.Debug("approve wfh requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("employee_id", employeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	if err := validateApproveRequest(employeeID, req); err != nil {
		s.logger.Warn("approve wfh validation failed", zap.String("employee_id", employeeID), zap.Error(err))
		return ApprovalResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve wfh begin tx failed", zap.Error(err))
		return ApprovalResponse{}, wfherrors.ErrApprovalFailed
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, employeeID)
	if err != nil {
		s.logger.Error("approve wfh employee lookup failed", zap.Error(err))
		return ApprovalResponse{}, wfherrors.ErrApprovalFailed
	}
	if !exists {
		return ApprovalResponse{}, wfherrors.ErrEmployeeNotFound
	}

	a := &Approval{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     strings.TrimSpace(req.Reason),
		ApprovedBy: actorID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := qtx.Create(ctx, a); err != nil {
		s.logger.Error("approve wfh persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return ApprovalResponse{}, wfherrors.ErrApprovalFailed
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(rid, "wfh_approval", employeeID, events.WFHApproved, events.AttendanceTopic, events.WFHApprovedEvent{
			EventType:  events.WFHApproved,
			RequestID:  rid,
			ApprovalID: a.ID.String(),
			EmployeeID: employeeID,
			StartDate:  a.StartDate,
			EndDate:    a.EndDate,
			ApprovedBy: actorID,
			OccurredAt: a.CreatedAt,
		})
		if err != nil {
			return ApprovalResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("approve wfh outbox persist failed", zap.Error(err))
			return ApprovalResponse{}, wfherrors.ErrApprovalFailed
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve wfh commit failed", zap.Error(err))
		return ApprovalResponse{}, wfherrors.ErrApprovalFailed
	}

	s.invalidate(ctx, employeeID)
	s.logger.Info("approve wfh success",
		zap.String("request_id", rid),
		zap.String("approval_id", a.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return mapToResponse(*a), nil
}

func (s *service) IsApprovedForDate(ctx context.Context, employeeID, date string) (bool, error) {
	approvals, err := s.loadApprovals(ctx, employeeID)
	if err != nil {
		return false, err
	}
	return Covers(approvals, date), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]ApprovalResponse, error) {
	approvals, err := s.loadApprovals(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(approvals), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]ApprovalResponse, error) {
	if filter.Date != "" && !dateutil.Valid(filter.Date) {
		return nil, wfherrors.ErrInvalidDateFormat
	}
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list wfh approvals failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) PurgeEmployee(ctx context.Context, employeeID string) (int64, error) {
	n, err := s.repo.DeleteByEmployee(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, employeeID)
	return n, nil
}

// loadApprovals reads through the redis cache; concurrent misses share one query.
func (s *service) loadApprovals(ctx context.Context, employeeID string) ([]Approval, error) {
	cacheKey := GetApprovalsKey(employeeID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var approvals []Approval
			if json.Unmarshal([]byte(cached), &approvals) == nil {
				return approvals, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		approvals, err := s.repo.FindByEmployee(ctx, employeeID)
		if err != nil {
			s.logger.Error("load wfh approvals failed", zap.String("employee_id", employeeID), zap.Error(err))
			return nil, err
		}

		if s.rdb != nil {
			if data, err := json.Marshal(approvals); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, data, approvalsCacheTTL).Err(); err != nil {
					s.logger.Warn("cache wfh approvals failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return approvals, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Approval), nil
}

func (s *service) invalidate(ctx context.Context, employeeID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetApprovalsKey(employeeID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate wfh approvals cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func validateApproveRequest(employeeID string, req ApproveWFHRequest) error {
	if employeeID == "" {
		return wfherrors.ErrInvalidEmployeeID
	}
	if !dateutil.Valid(req.StartDate) || !dateutil.Valid(req.EndDate) {
		return wfherrors.ErrInvalidDateFormat
	}
	if req.StartDate > req.EndDate {
		return wfherrors.ErrInvalidDateRange
	}
	return nil
}

func mapToResponse(a Approval) ApprovalResponse {
	return ApprovalResponse{
		ID:         a.ID.String(),
		EmployeeID: a.EmployeeID,
		StartDate:  a.StartDate,
		EndDate:    a.EndDate,
		Reason:     a.Reason,
		ApprovedBy: a.ApprovedBy,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(rows []Approval) []ApprovalResponse {
	res := make([]ApprovalResponse, len(rows))
	for i, a := range rows {
		res[i] = mapToResponse(a)
	}
	return res
}
