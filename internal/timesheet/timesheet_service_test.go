package timesheet_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go-attendance/internal/messaging/kafka"
	kafkaMock "go-attendance/internal/messaging/kafka/mock"
	"go-attendance/internal/timesheet"
	timesheeterrors "go-attendance/internal/timesheet/errors"
	timesheetMock "go-attendance/internal/timesheet/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 5, 2, 17, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type serviceDeps struct {
	sqlMock sqlmock.Sqlmock
	service timesheet.Service
	repo    *timesheetMock.MockRepository
	outbox  *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := timesheetMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)

	return &serviceDeps{
		sqlMock: sqlMock,
		service: timesheet.NewService(db, repo, outbox, fixedClock, time.UTC, zap.NewNop()),
		repo:    repo,
		outbox:  outbox,
	}
}

func TestTimesheetService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("blank report rejected before the store is touched", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Submit(ctx, "EMP001", timesheet.SubmitTimesheetRequest{DailyReport: "   \n\t"})

		assert.ErrorIs(t, err, timesheeterrors.ErrDailyReportRequired)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("first submission", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEmployeeAndDate(ctx, "EMP001", "2024-05-02").Return(nil, nil)
		deps.repo.EXPECT().Upsert(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, ts *timesheet.Timesheet) error {
			assert.Equal(t, "EMP001", ts.EmployeeID)
			assert.Equal(t, "2024-05-02", ts.Date)
			assert.Equal(t, "shipped the export", ts.TasksCompleted)
			assert.Equal(t, fixedNow, ts.SubmittedAt)
			return nil
		})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, "timesheet_submitted", e.EventType)
			return nil
		})
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Submit(ctx, "EMP001", timesheet.SubmitTimesheetRequest{DailyReport: "  shipped the export  "})

		assert.NoError(t, err)
		assert.Equal(t, timesheet.ActionSubmitted, resp.Action)
		assert.Equal(t, "Your timesheet has been submitted successfully!", resp.Message)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("resubmission overwrites content and keeps identity", func(t *testing.T) {
		deps := setupServiceTest(t)
		existingID := uuid.New()
		created := fixedNow.Add(-2 * time.Hour)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEmployeeAndDate(ctx, "EMP001", "2024-05-02").Return(&timesheet.Timesheet{
			ID:              existingID,
			EmployeeID:      "EMP001",
			Date:            "2024-05-02",
			TasksCompleted:  "first draft",
			ChallengesFaced: "old challenge",
			CreatedAt:       created,
		}, nil)
		deps.repo.EXPECT().Upsert(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, ts *timesheet.Timesheet) error {
			assert.Equal(t, existingID, ts.ID)
			assert.Equal(t, created, ts.CreatedAt)
			assert.Equal(t, "final version", ts.TasksCompleted)
			assert.Empty(t, ts.ChallengesFaced)
			return nil
		})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Submit(ctx, "EMP001", timesheet.SubmitTimesheetRequest{DailyReport: "final version"})

		assert.NoError(t, err)
		assert.Equal(t, timesheet.ActionUpdated, resp.Action)
		assert.Equal(t, "Your timesheet has been updated successfully!", resp.Message)
	})

	t.Run("store failure", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEmployeeAndDate(ctx, "EMP001", "2024-05-02").Return(nil, nil)
		deps.repo.EXPECT().Upsert(ctx, gomock.Any()).Return(errors.New("connection reset"))
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Submit(ctx, "EMP001", timesheet.SubmitTimesheetRequest{DailyReport: "work"})

		assert.ErrorIs(t, err, timesheeterrors.ErrSubmitFailed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestTimesheetService_HasSubmitted(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)

	deps.repo.EXPECT().FindByEmployeeAndDate(ctx, "EMP001", "2024-05-02").Return(&timesheet.Timesheet{}, nil)
	deps.repo.EXPECT().FindByEmployeeAndDate(ctx, "EMP002", "2024-05-02").Return(nil, nil)

	ok, err := deps.service.HasSubmitted(ctx, "EMP001", "2024-05-02")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = deps.service.HasSubmitted(ctx, "EMP002", "2024-05-02")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestTimesheetService_GetMine_ExcludesTodayAndCapsAtFive(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)

	rows := []timesheet.Timesheet{{Date: "2024-05-02"}}
	for d := 1; d <= 9; d++ {
		rows = append(rows, timesheet.Timesheet{Date: time.Date(2024, 4, 30-d, 0, 0, 0, 0, time.UTC).Format("2006-01-02")})
	}
	deps.repo.EXPECT().FindByEmployee(ctx, "EMP001", 10).Return(rows, nil)

	res, err := deps.service.GetMine(ctx, "EMP001")

	assert.NoError(t, err)
	assert.Len(t, res, 5)
	for _, r := range res {
		assert.NotEqual(t, "2024-05-02", r.Date)
	}
}

func TestTimesheetService_GetToday(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)

	deps.repo.EXPECT().FindByEmployeeAndDate(ctx, "EMP001", "2024-05-02").Return(nil, nil)

	res, err := deps.service.GetToday(ctx, "EMP001")

	assert.NoError(t, err)
	assert.Equal(t, "2024-05-02", res.Date)
	assert.False(t, res.Submitted)
	assert.Nil(t, res.Timesheet)
}

func TestTimesheetService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid date", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetAll(ctx, timesheet.ListFilter{Date: "2024/05/02"})

		assert.ErrorIs(t, err, timesheeterrors.ErrInvalidDateFormat)
	})

	t.Run("filters pass through with admin limit", func(t *testing.T) {
		deps := setupServiceTest(t)
		filter := timesheet.ListFilter{Date: "2024-05-02", EmployeeID: "EMP001"}

		deps.repo.EXPECT().FindAll(ctx, filter, 100).Return([]timesheet.Timesheet{
			{ID: uuid.New(), EmployeeID: "EMP001", Date: "2024-05-02", Employee: &timesheet.EmployeeRef{Name: "John Doe", Department: "IT"}},
		}, nil)

		res, err := deps.service.GetAll(ctx, timesheet.ListFilter{Date: "2024-05-02", EmployeeID: " EMP001 "})

		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, "John Doe", res[0].EmployeeName)
	})
}

func TestTimesheetService_Export(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)

	deps.repo.EXPECT().FindAll(ctx, timesheet.ListFilter{}, 100).Return([]timesheet.Timesheet{
		{
			EmployeeID:     "EMP001",
			Date:           "2024-05-02",
			TasksCompleted: "wrote tests",
			TomorrowPlans:  "review",
			SubmittedAt:    fixedNow,
			Employee:       &timesheet.EmployeeRef{Name: "John Doe", Department: "IT"},
		},
	}, nil)

	var buf bytes.Buffer
	err := deps.service.Export(ctx, timesheet.ListFilter{}, &buf)

	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "2024-05-02,EMP001,John Doe,IT,2024-05-02T17:30:00Z,wrote tests | review", lines[1])
}

func TestTimesheet_Report(t *testing.T) {
	ts := timesheet.Timesheet{TasksCompleted: "a", Achievements: " ", AdditionalNotes: "c"}
	assert.Equal(t, "a | c", ts.Report())
}
