package attendance_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-attendance/internal/attendance"
	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/middleware"
	"go-attendance/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	signInFn    func(ctx context.Context, employeeID string, req attendance.SignInRequest) (attendance.SignInResponse, error)
	signOutFn   func(ctx context.Context, employeeID string, req attendance.SignOutRequest) (attendance.SignOutResponse, error)
	getMineFn   func(ctx context.Context, employeeID, date string) (attendance.MyAttendanceResponse, error)
	getTodayFn  func(ctx context.Context, employeeID string) (attendance.TodayAttendanceResponse, error)
	getAllFn    func(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error)
	exportFn    func(ctx context.Context, filter attendance.AttendanceFilter, w io.Writer) error
	dashboardFn func(ctx context.Context) (attendance.DashboardResponse, error)
}

func (f *fakeService) SignIn(ctx context.Context, employeeID string, req attendance.SignInRequest) (attendance.SignInResponse, error) {
	return f.signInFn(ctx, employeeID, req)
}
func (f *fakeService) SignOut(ctx context.Context, employeeID string, req attendance.SignOutRequest) (attendance.SignOutResponse, error) {
	return f.signOutFn(ctx, employeeID, req)
}
func (f *fakeService) GetMine(ctx context.Context, employeeID, date string) (attendance.MyAttendanceResponse, error) {
	return f.getMineFn(ctx, employeeID, date)
}
func (f *fakeService) GetToday(ctx context.Context, employeeID string) (attendance.TodayAttendanceResponse, error) {
	return f.getTodayFn(ctx, employeeID)
}
func (f *fakeService) GetAll(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	return f.getAllFn(ctx, filter)
}
func (f *fakeService) Export(ctx context.Context, filter attendance.AttendanceFilter, w io.Writer) error {
	return f.exportFn(ctx, filter, w)
}
func (f *fakeService) Dashboard(ctx context.Context) (attendance.DashboardResponse, error) {
	return f.dashboardFn(ctx)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	apperror.Init()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextEmployeeID, "EMP001")
	return c, w
}

func TestHandler_SignIn(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeService{
			signInFn: func(ctx context.Context, employeeID string, req attendance.SignInRequest) (attendance.SignInResponse, error) {
				assert.Equal(t, "EMP001", employeeID)
				assert.True(t, req.WorkFromHome)
				return attendance.SignInResponse{Message: "Welcome John Doe! You have successfully signed in at 09:00:00"}, nil
			},
		}
		c, w := newTestContext(http.MethodPost, "/attendances/sign-in", `{"work_from_home":true}`)

		attendance.NewHandler(svc, nil).SignIn(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Welcome John Doe!")
	})

	t.Run("string coordinates reach the service", func(t *testing.T) {
		svc := &fakeService{
			signInFn: func(ctx context.Context, employeeID string, req attendance.SignInRequest) (attendance.SignInResponse, error) {
				if assert.NotNil(t, req.Latitude) {
					assert.Equal(t, 12.9040293, *req.Latitude)
				}
				assert.Nil(t, req.Longitude)
				return attendance.SignInResponse{}, attendanceerrors.ErrOutsideOfficeSignIn
			},
		}
		c, w := newTestContext(http.MethodPost, "/attendances/sign-in", `{"latitude":"12.9040293","longitude":""}`)

		attendance.NewHandler(svc, nil).SignIn(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "outside any office location")
	})

	t.Run("confirmation prompt carries details", func(t *testing.T) {
		svc := &fakeService{
			signInFn: func(ctx context.Context, employeeID string, req attendance.SignInRequest) (attendance.SignInResponse, error) {
				return attendance.SignInResponse{}, attendanceerrors.ErrOfficeConfirmationRequired.WithDetails(map[string]any{
					"confirmation_required": true,
				})
			},
		}
		c, w := newTestContext(http.MethodPost, "/attendances/sign-in", `{}`)

		attendance.NewHandler(svc, nil).SignIn(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"CONFIRMATION_REQUIRED"`)
		assert.Contains(t, w.Body.String(), `"confirmation_required":true`)
	})

	t.Run("releases idempotency lock on failure", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectDel("idemp:lock").SetVal(1)

		svc := &fakeService{
			signInFn: func(ctx context.Context, employeeID string, req attendance.SignInRequest) (attendance.SignInResponse, error) {
				return attendance.SignInResponse{}, attendanceerrors.ErrAlreadySignedIn
			},
		}
		c, w := newTestContext(http.MethodPost, "/attendances/sign-in", `{}`)
		c.Set(middleware.ContextIdempotencyLockKey, "idemp:lock")

		attendance.NewHandler(svc, rdb).SignIn(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestHandler_SignOut(t *testing.T) {
	svc := &fakeService{
		signOutFn: func(ctx context.Context, employeeID string, req attendance.SignOutRequest) (attendance.SignOutResponse, error) {
			return attendance.SignOutResponse{}, attendanceerrors.ErrTimesheetRequired
		},
	}
	c, w := newTestContext(http.MethodPost, "/attendances/sign-out", `{"latitude":12.9,"longitude":77.5}`)

	attendance.NewHandler(svc, nil).SignOut(c)

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Contains(t, w.Body.String(), `"timesheet_required":true`)
}

func TestHandler_GetAllPaginates(t *testing.T) {
	svc := &fakeService{
		getAllFn: func(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
			assert.Equal(t, attendance.StatusIncompleteSessions, filter.Status)
			return []attendance.AttendanceResponse{{ID: uuid.New().String()}, {ID: uuid.New().String()}}, nil
		},
	}
	c, w := newTestContext(http.MethodGet, "/attendances?status=incomplete_sessions&page=1&page_size=1", "")

	attendance.NewHandler(svc, nil).GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"meta"`)
	assert.Contains(t, w.Body.String(), `"total":2`)
}

func TestHandler_GetAllRejectsUnknownStatus(t *testing.T) {
	svc := &fakeService{}
	c, w := newTestContext(http.MethodGet, "/attendances?status=late", "")

	attendance.NewHandler(svc, nil).GetAll(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Export(t *testing.T) {
	svc := &fakeService{
		exportFn: func(ctx context.Context, filter attendance.AttendanceFilter, w io.Writer) error {
			_, err := io.WriteString(w, "date,employee_id\n")
			return err
		},
	}
	c, w := newTestContext(http.MethodGet, "/attendances/export", "")

	attendance.NewHandler(svc, nil).Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attendance.csv")
}

func TestHandler_Dashboard(t *testing.T) {
	svc := &fakeService{
		dashboardFn: func(ctx context.Context) (attendance.DashboardResponse, error) {
			return attendance.DashboardResponse{}, nil
		},
	}
	c, w := newTestContext(http.MethodGet, "/dashboard", "")

	attendance.NewHandler(svc, nil).Dashboard(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"summary"`)
}
