package timesheet

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/report"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/dateutil"
	timesheeterrors "go-attendance/internal/timesheet/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ActionSubmitted = "submitted"
	ActionUpdated   = "updated"

	recentFetchLimit = 10
	recentShowLimit  = 5
	adminListLimit   = 100
)

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID string, req SubmitTimesheetRequest) (SubmitTimesheetResponse, error)
	HasSubmitted(ctx context.Context, employeeID, date string) (bool, error)
	GetToday(ctx context.Context, employeeID string) (TodayTimesheetResponse, error)
	GetMine(ctx context.Context, employeeID string) ([]TimesheetResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]TimesheetResponse, error)
	Export(ctx context.Context, filter ListFilter, w io.Writer) error
	PurgeEmployee(ctx context.Context, employeeID string) (int64, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	now    dateutil.Clock
	loc    *time.Location
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, now dateutil.Clock, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		now:    now,
		loc:    loc,
		logger: l,
	}
}

func (s *service) today() string {
	return dateutil.Today(s.now(), s.loc)
}

func (s *service) Submit(ctx context.Context, employeeID string, req SubmitTimesheetRequest) (SubmitTimesheetResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	date := s.today()
	s.logger.Debug("submit timesheet requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("date", date),
	)

	dailyReport := strings.TrimSpace(req.DailyReport)
	if dailyReport == "" {
		s.logger.Warn("submit timesheet validation failed", zap.String("employee_id", employeeID))
		return SubmitTimesheetResponse{}, timesheeterrors.ErrDailyReportRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit timesheet begin tx failed", zap.Error(err))
		return SubmitTimesheetResponse{}, timesheeterrors.ErrSubmitFailed
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		s.logger.Error("submit timesheet lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
		return SubmitTimesheetResponse{}, timesheeterrors.ErrSubmitFailed
	}
	action := ActionSubmitted
	if existing != nil {
		action = ActionUpdated
	}

	now := s.now().UTC()
	t := &Timesheet{
		ID:              uuid.New(),
		EmployeeID:      employeeID,
		Date:            date,
		TasksCompleted:  dailyReport,
		ChallengesFaced: strings.TrimSpace(req.ChallengesFaced),
		Achievements:    strings.TrimSpace(req.Achievements),
		TomorrowPlans:   strings.TrimSpace(req.TomorrowPlans),
		AdditionalNotes: strings.TrimSpace(req.AdditionalNotes),
		SubmittedAt:     now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if existing != nil {
		t.ID = existing.ID
		t.CreatedAt = existing.CreatedAt
	}

	if err := qtx.Upsert(ctx, t); err != nil {
		s.logger.Error("submit timesheet persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return SubmitTimesheetResponse{}, timesheeterrors.ErrSubmitFailed
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(rid, "timesheet", employeeID, events.TimesheetSubmitted, events.AttendanceTopic, events.AttendanceRecordedEvent{
			EventType:  events.TimesheetSubmitted,
			RequestID:  rid,
			EmployeeID: employeeID,
			Date:       date,
			OccurredAt: now,
		})
		if err != nil {
			return SubmitTimesheetResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("submit timesheet outbox persist failed", zap.Error(err))
			return SubmitTimesheetResponse{}, timesheeterrors.ErrSubmitFailed
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit timesheet commit failed", zap.Error(err))
		return SubmitTimesheetResponse{}, timesheeterrors.ErrSubmitFailed
	}

	s.logger.Info("submit timesheet success",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("date", date),
		zap.String("action", action),
	)
	return SubmitTimesheetResponse{
		Action:    action,
		Message:   fmt.Sprintf("Your timesheet has been %s successfully!", action),
		Timesheet: mapToResponse(*t),
	}, nil
}

func (s *service) HasSubmitted(ctx context.Context, employeeID, date string) (bool, error) {
	t, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		s.logger.Error("timesheet lookup failed",
			zap.String("employee_id", employeeID),
			zap.String("date", date),
			zap.Error(err),
		)
		return false, err
	}
	return t != nil, nil
}

func (s *service) GetToday(ctx context.Context, employeeID string) (TodayTimesheetResponse, error) {
	date := s.today()
	t, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return TodayTimesheetResponse{}, err
	}

	resp := TodayTimesheetResponse{Date: date, Submitted: t != nil}
	if t != nil {
		r := mapToResponse(*t)
		resp.Timesheet = &r
	}
	return resp, nil
}

// GetMine lists the most recent reports before today.
func (s *service) GetMine(ctx context.Context, employeeID string) ([]TimesheetResponse, error) {
	rows, err := s.repo.FindByEmployee(ctx, employeeID, recentFetchLimit)
	if err != nil {
		return nil, err
	}

	today := s.today()
	res := make([]TimesheetResponse, 0, recentShowLimit)
	for _, t := range rows {
		if t.Date == today {
			continue
		}
		res = append(res, mapToResponse(t))
		if len(res) == recentShowLimit {
			break
		}
	}
	return res, nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]TimesheetResponse, error) {
	rows, err := s.list(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := make([]TimesheetResponse, len(rows))
	for i, t := range rows {
		res[i] = mapToResponse(t)
	}
	return res, nil
}

func (s *service) Export(ctx context.Context, filter ListFilter, w io.Writer) error {
	rows, err := s.list(ctx, filter)
	if err != nil {
		return err
	}

	out := make([]report.TimesheetRow, len(rows))
	for i, t := range rows {
		out[i] = report.TimesheetRow{
			Date:        t.Date,
			EmployeeID:  t.EmployeeID,
			SubmittedAt: t.SubmittedAt.In(s.loc),
			Report:      t.Report(),
		}
		if t.Employee != nil {
			out[i].Name = t.Employee.Name
			out[i].Department = t.Employee.Department
		}
	}
	return report.WriteTimesheetCSV(w, out)
}

func (s *service) PurgeEmployee(ctx context.Context, employeeID string) (int64, error) {
	return s.repo.DeleteByEmployee(ctx, employeeID)
}

func (s *service) list(ctx context.Context, filter ListFilter) ([]Timesheet, error) {
	filter.EmployeeID = strings.TrimSpace(filter.EmployeeID)
	if filter.Date != "" && !dateutil.Valid(filter.Date) {
		return nil, timesheeterrors.ErrInvalidDateFormat
	}

	rows, err := s.repo.FindAll(ctx, filter, adminListLimit)
	if err != nil {
		s.logger.Error("list timesheets failed", zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func mapToResponse(t Timesheet) TimesheetResponse {
	res := TimesheetResponse{
		ID:              t.ID.String(),
		EmployeeID:      t.EmployeeID,
		Date:            t.Date,
		TasksCompleted:  t.TasksCompleted,
		ChallengesFaced: t.ChallengesFaced,
		Achievements:    t.Achievements,
		TomorrowPlans:   t.TomorrowPlans,
		AdditionalNotes: t.AdditionalNotes,
		SubmittedAt:     t.SubmittedAt.Format(time.RFC3339),
	}
	if t.Employee != nil {
		res.EmployeeName = t.Employee.Name
		res.Department = t.Employee.Department
	}
	return res
}
