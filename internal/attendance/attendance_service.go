package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"math"
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/report"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/dateutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	historyLimit   = 50
	adminListLimit = 100
)

// GeofenceChecker is satisfied by *geofence.Evaluator.
type GeofenceChecker interface {
	IsWithinAnyOffice(lat, lon *float64) (bool, string)
}

type WFHChecker interface {
	IsApprovedForDate(ctx context.Context, employeeID, date string) (bool, error)
}

type TimesheetChecker interface {
	HasSubmitted(ctx context.Context, employeeID, date string) (bool, error)
}

type Options struct {
	RequireTimesheetForSignOut bool
	Location                   *time.Location
	Now                        dateutil.Clock
	IsOfficeHours              func(time.Time) bool
}

// HoursWorked splits a session length for display. Total is rounded to two
// decimals; Hours and Minutes come from the unrounded duration.
type HoursWorked struct {
	Total   float64 `json:"total"`
	Hours   int     `json:"hours"`
	Minutes int     `json:"minutes"`
}

func ComputeHours(signIn, signOut time.Time) HoursWorked {
	raw := signOut.Sub(signIn).Seconds() / 3600
	if raw < 0 {
		raw = 0
	}
	hours := math.Floor(raw)
	return HoursWorked{
		Total:   report.Round(raw, 2),
		Hours:   int(hours),
		Minutes: int(math.Floor((raw - hours) * 60)),
	}
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	SignIn(ctx context.Context, employeeID string, req SignInRequest) (SignInResponse, error)
	SignOut(ctx context.Context, employeeID string, req SignOutRequest) (SignOutResponse, error)
	GetMine(ctx context.Context, employeeID, date string) (MyAttendanceResponse, error)
	GetToday(ctx context.Context, employeeID string) (TodayAttendanceResponse, error)
	GetAll(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)
	Export(ctx context.Context, filter AttendanceFilter, w io.Writer) error
	Dashboard(ctx context.Context) (DashboardResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	outbox     kafka.OutboxRepository
	geofence   GeofenceChecker
	wfh        WFHChecker
	timesheets TimesheetChecker
	opts       Options
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	geo GeofenceChecker,
	wfh WFHChecker,
	timesheets TimesheetChecker,
	opts Options,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &service{
		db:         db,
		repo:       repo,
		outbox:     outboxRepo,
		geofence:   geo,
		wfh:        wfh,
		timesheets: timesheets,
		opts:       opts,
		logger:     l,
	}
}

func (s *service) SignIn(ctx context.Context, employeeID string, req SignInRequest) (SignInResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	now := s.opts.Now()
	today := dateutil.Today(now, s.opts.Location)
	s.logger.Debug("sign in requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("date", today),
		zap.Bool("work_from_home", req.WorkFromHome),
	)

	emp, err := s.lookupEmployee(ctx, employeeID)
	if err != nil {
		return SignInResponse{}, err
	}

	approved, err := s.wfh.IsApprovedForDate(ctx, employeeID, today)
	if err != nil {
		s.logger.Error("sign in wfh lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
		return SignInResponse{}, attendanceerrors.ErrLookupFailed
	}
	workFromHome := req.WorkFromHome && approved

	if approved != req.WorkFromHome && !req.ConfirmOfficeSignIn {
		s.logger.Info("sign in needs office confirmation",
			zap.String("employee_id", employeeID),
			zap.Bool("wfh_approved", approved),
			zap.Bool("work_from_home", req.WorkFromHome),
		)
		return SignInResponse{}, attendanceerrors.ErrOfficeConfirmationRequired.WithDetails(map[string]any{
			"confirmation_required": true,
			"wfh_approved":          approved,
			"work_from_home":        req.WorkFromHome,
		})
	}

	var officeName string
	if !workFromHome {
		inside, name := s.geofence.IsWithinAnyOffice(req.Latitude, req.Longitude)
		if !inside {
			s.logger.Warn("sign in outside geofence", zap.String("employee_id", employeeID))
			return SignInResponse{}, attendanceerrors.ErrOutsideOfficeSignIn
		}
		officeName = name
	}

	existing, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		s.logger.Error("sign in lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
		return SignInResponse{}, attendanceerrors.ErrLookupFailed
	}
	if existing.State() != StateNone {
		s.logger.Warn("sign in rejected, already signed in", zap.String("employee_id", employeeID))
		return SignInResponse{}, attendanceerrors.ErrAlreadySignedIn
	}

	signedInAt := now.UTC()
	row := &Attendance{
		ID:              uuid.New(),
		EmployeeID:      employeeID,
		Date:            today,
		SignInTime:      &signedInAt,
		WorkLocation:    WorkLocationOffice,
		WFHApproved:     workFromHome,
		OfficeName:      officeName,
		SignInLatitude:  req.Latitude,
		SignInLongitude: req.Longitude,
		CreatedAt:       signedInAt,
		UpdatedAt:       signedInAt,
	}
	if workFromHome {
		row.WorkLocation = WorkLocationHome
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("sign in begin tx failed", zap.Error(err))
		return SignInResponse{}, attendanceerrors.ErrPersistFailed
	}
	defer tx.Rollback()

	inserted, err := s.repo.WithTx(tx).SignIn(ctx, row)
	if err != nil {
		s.logger.Error("sign in persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return SignInResponse{}, attendanceerrors.ErrPersistFailed
	}
	if !inserted {
		s.logger.Warn("sign in lost race, already signed in", zap.String("employee_id", employeeID))
		return SignInResponse{}, attendanceerrors.ErrAlreadySignedIn
	}

	if err := s.writeEvent(ctx, tx, events.AttendanceSignedIn, row); err != nil {
		return SignInResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("sign in commit failed", zap.Error(err))
		return SignInResponse{}, attendanceerrors.ErrPersistFailed
	}

	local := now.In(s.opts.Location)
	s.logger.Info("sign in success",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("work_location", row.WorkLocation),
		zap.String("office", officeName),
	)

	resp := SignInResponse{
		Message:    fmt.Sprintf("Welcome %s! You have successfully signed in at %s", emp.Name, local.Format("15:04:05")),
		Attendance: s.mapToResponse(*row),
	}
	if s.opts.IsOfficeHours != nil {
		resp.WithinOfficeHours = s.opts.IsOfficeHours(local)
	}
	return resp, nil
}

func (s *service) SignOut(ctx context.Context, employeeID string, req SignOutRequest) (SignOutResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	now := s.opts.Now()
	today := dateutil.Today(now, s.opts.Location)
	s.logger.Debug("sign out requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("date", today),
	)

	emp, err := s.lookupEmployee(ctx, employeeID)
	if err != nil {
		return SignOutResponse{}, err
	}

	row, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		s.logger.Error("sign out lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
		return SignOutResponse{}, attendanceerrors.ErrLookupFailed
	}
	switch row.State() {
	case StateNone:
		return SignOutResponse{}, attendanceerrors.ErrNotSignedIn
	case StateSignedOut:
		return SignOutResponse{}, attendanceerrors.ErrAlreadySignedOut
	}

	// Either the recorded location or today's approval exempts the geofence.
	workFromHome := row.WorkLocation == WorkLocationHome
	if !workFromHome {
		approved, err := s.wfh.IsApprovedForDate(ctx, employeeID, today)
		if err != nil {
			s.logger.Error("sign out wfh lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
			return SignOutResponse{}, attendanceerrors.ErrLookupFailed
		}
		workFromHome = approved
	}

	if !workFromHome {
		if inside, _ := s.geofence.IsWithinAnyOffice(req.Latitude, req.Longitude); !inside {
			s.logger.Warn("sign out outside geofence", zap.String("employee_id", employeeID))
			return SignOutResponse{}, attendanceerrors.ErrOutsideOfficeSignOut
		}
	}

	if s.opts.RequireTimesheetForSignOut {
		submitted, err := s.timesheets.HasSubmitted(ctx, employeeID, today)
		if err != nil {
			return SignOutResponse{}, attendanceerrors.ErrLookupFailed
		}
		if !submitted {
			s.logger.Info("sign out blocked, timesheet missing", zap.String("employee_id", employeeID))
			return SignOutResponse{}, attendanceerrors.ErrTimesheetRequired
		}
	}

	signedOutAt := now.UTC()
	worked := ComputeHours(*row.SignInTime, signedOutAt)
	row.SignOutTime = &signedOutAt
	row.TotalHours = &worked.Total
	row.SignOutLatitude = req.Latitude
	row.SignOutLongitude = req.Longitude
	row.UpdatedAt = signedOutAt

	persistFailed := func(err error) (SignOutResponse, error) {
		s.logger.Error("sign out persist failed",
			zap.String("employee_id", employeeID),
			zap.Float64("total_hours", worked.Total),
			zap.Int("hours", worked.Hours),
			zap.Int("minutes", worked.Minutes),
			zap.Error(err),
		)
		return SignOutResponse{}, attendanceerrors.ErrPersistFailed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return persistFailed(err)
	}
	defer tx.Rollback()

	updated, err := s.repo.WithTx(tx).SignOut(ctx, row)
	if err != nil {
		return persistFailed(err)
	}
	if !updated {
		s.logger.Warn("sign out lost race, already signed out", zap.String("employee_id", employeeID))
		return SignOutResponse{}, attendanceerrors.ErrAlreadySignedOut
	}

	if err := s.writeEvent(ctx, tx, events.AttendanceSignedOut, row); err != nil {
		return SignOutResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return persistFailed(err)
	}

	s.logger.Info("sign out success",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.Float64("total_hours", worked.Total),
	)
	return SignOutResponse{
		Message:     fmt.Sprintf("Goodbye %s! You have worked for %d hours and %d minutes today.", emp.Name, worked.Hours, worked.Minutes),
		HoursWorked: worked,
		Attendance:  s.mapToResponse(*row),
	}, nil
}

func (s *service) GetMine(ctx context.Context, employeeID, date string) (MyAttendanceResponse, error) {
	var rows []Attendance
	if date != "" {
		if !dateutil.Valid(date) {
			return MyAttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
		}
		row, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, date)
		if err != nil {
			return MyAttendanceResponse{}, err
		}
		if row != nil {
			rows = append(rows, *row)
		}
	} else {
		var err error
		rows, err = s.repo.FindByEmployee(ctx, employeeID, historyLimit)
		if err != nil {
			return MyAttendanceResponse{}, err
		}
	}

	return MyAttendanceResponse{
		Records: s.mapToListResponse(rows),
		Stats:   report.Summarize(s.toRecords(rows)),
	}, nil
}

func (s *service) GetToday(ctx context.Context, employeeID string) (TodayAttendanceResponse, error) {
	today := dateutil.Today(s.opts.Now(), s.opts.Location)

	row, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return TodayAttendanceResponse{}, err
	}
	approved, err := s.wfh.IsApprovedForDate(ctx, employeeID, today)
	if err != nil {
		return TodayAttendanceResponse{}, attendanceerrors.ErrLookupFailed
	}

	resp := TodayAttendanceResponse{
		Date:        today,
		State:       row.State(),
		WFHApproved: approved,
	}
	if row != nil {
		r := s.mapToResponse(*row)
		resp.Attendance = &r
	}
	return resp, nil
}

func (s *service) GetAll(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error) {
	rows, err := s.list(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.mapToListResponse(rows), nil
}

func (s *service) Export(ctx context.Context, filter AttendanceFilter, w io.Writer) error {
	rows, err := s.list(ctx, filter)
	if err != nil {
		return err
	}

	out := make([]report.AttendanceRow, len(rows))
	for i, a := range rows {
		out[i] = report.AttendanceRow{
			Date:         a.Date,
			EmployeeID:   a.EmployeeID,
			SignInTime:   s.local(a.SignInTime),
			SignOutTime:  s.local(a.SignOutTime),
			TotalHours:   a.TotalHours,
			WorkLocation: a.WorkLocation,
			WFHApproved:  a.WFHApproved,
		}
		if a.Employee != nil {
			out[i].Name = a.Employee.Name
			out[i].Department = a.Employee.Department
		}
	}
	return report.WriteAttendanceCSV(w, out)
}

func (s *service) Dashboard(ctx context.Context) (DashboardResponse, error) {
	today := dateutil.Today(s.opts.Now(), s.opts.Location)

	active, err := s.repo.CountActiveEmployees(ctx)
	if err != nil {
		s.logger.Error("dashboard count employees failed", zap.Error(err))
		return DashboardResponse{}, err
	}
	rows, err := s.repo.FindAll(ctx, AttendanceFilter{Date: today}, 0)
	if err != nil {
		s.logger.Error("dashboard list attendance failed", zap.Error(err))
		return DashboardResponse{}, err
	}

	return DashboardResponse{
		Summary: report.SummarizeDay(today, active, s.toRecords(rows)),
		Records: s.mapToListResponse(rows),
	}, nil
}

func (s *service) list(ctx context.Context, filter AttendanceFilter) ([]Attendance, error) {
	if filter.Date != "" && !dateutil.Valid(filter.Date) {
		return nil, attendanceerrors.ErrInvalidDateFormat
	}
	switch filter.Status {
	case "", StatusIncompleteSessions, StatusCompletedSessions:
	default:
		return nil, attendanceerrors.ErrInvalidStatusFilter
	}

	rows, err := s.repo.FindAll(ctx, filter, adminListLimit)
	if err != nil {
		s.logger.Error("list attendance failed", zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (s *service) lookupEmployee(ctx context.Context, employeeID string) (*EmployeeRef, error) {
	emp, err := s.repo.FindEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("employee lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, attendanceerrors.ErrLookupFailed
	}
	if emp == nil {
		return nil, attendanceerrors.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *service) writeEvent(ctx context.Context, tx *sql.Tx, eventType string, a *Attendance) error {
	if s.outbox == nil {
		return nil
	}
	rid := contextutil.GetRequestID(ctx)
	event, err := kafka.NewOutboxEvent(rid, "attendance", a.EmployeeID, eventType, events.AttendanceTopic, events.AttendanceRecordedEvent{
		EventType:    eventType,
		RequestID:    rid,
		EmployeeID:   a.EmployeeID,
		Date:         a.Date,
		WorkLocation: a.WorkLocation,
		OfficeName:   a.OfficeName,
		TotalHours:   a.TotalHours,
		OccurredAt:   a.UpdatedAt,
	})
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("attendance outbox persist failed", zap.String("event_type", eventType), zap.Error(err))
		return attendanceerrors.ErrPersistFailed
	}
	return nil
}

func (s *service) local(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.In(s.opts.Location)
	return &v
}

func (s *service) toRecords(rows []Attendance) []report.Record {
	out := make([]report.Record, len(rows))
	for i, a := range rows {
		out[i] = report.Record{
			Date:        a.Date,
			SignInTime:  s.local(a.SignInTime),
			SignOutTime: s.local(a.SignOutTime),
			TotalHours:  a.TotalHours,
		}
	}
	return out
}

func (s *service) mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID.String(),
		EmployeeID:   a.EmployeeID,
		Date:         a.Date,
		State:        a.State(),
		TotalHours:   a.TotalHours,
		WorkLocation: a.WorkLocation,
		WFHApproved:  a.WFHApproved,
		OfficeName:   a.OfficeName,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.Name
		resp.Department = a.Employee.Department
	}
	if t := s.local(a.SignInTime); t != nil {
		v := t.Format(time.RFC3339)
		resp.SignInTime = &v
	}
	if t := s.local(a.SignOutTime); t != nil {
		v := t.Format(time.RFC3339)
		resp.SignOutTime = &v
	}
	return resp
}

func (s *service) mapToListResponse(rows []Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, a := range rows {
		res[i] = s.mapToResponse(a)
	}
	return res
}
