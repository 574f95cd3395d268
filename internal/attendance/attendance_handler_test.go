package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/attendance"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/domain"
)

type fakeAttendanceService struct {
	clockInFn  func(ctx context.Context, companyID string, actor domain.Principal, req attendance.ClockInRequest) (attendance.AttendanceResponse, error)
	clockOutFn func(ctx context.Context, companyID string, actor domain.Principal, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error)
	getAllFn   func(ctx context.Context, companyID string, actor domain.Principal) ([]attendance.AttendanceResponse, error)
}

func (f *fakeAttendanceService) ClockIn(ctx context.Context, companyID string, actor domain.Principal, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	return f.clockInFn(ctx, companyID, actor, req)
}

func (f *fakeAttendanceService) ClockOut(ctx context.Context, companyID string, actor domain.Principal, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	return f.clockOutFn(ctx, companyID, actor, req)
}

func (f *fakeAttendanceService) GetAll(ctx context.Context, companyID string, actor domain.Principal) ([]attendance.AttendanceResponse, error) {
	return f.getAllFn(ctx, companyID, actor)
}

func newAttendanceTestContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	c.Request = req

	c.Set("company_id", uuid.NewString())
	c.Set("employee_id", uuid.NewString())
	c.Set("role", domain.RoleEmployee)
	return c, rec
}

func TestAttendanceHandler_ClockIn(t *testing.T) {
	t.Run("success returns 201", func(t *testing.T) {
		svc := &fakeAttendanceService{
			clockInFn: func(ctx context.Context, companyID string, actor domain.Principal, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{EmployeeID: actor.ID, Status: attendance.StatusPresent}, nil
			},
		}
		handler := attendance.NewHandler(svc)

		c, rec := newAttendanceTestContext(t, http.MethodPost, "/api/v1/attendances/clock-in", `{}`)

		handler.ClockIn(c)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("negative conflict maps to 409", func(t *testing.T) {
		svc := &fakeAttendanceService{
			clockInFn: func(ctx context.Context, companyID string, actor domain.Principal, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
			},
		}
		handler := attendance.NewHandler(svc)

		c, rec := newAttendanceTestContext(t, http.MethodPost, "/api/v1/attendances/clock-in", `{}`)

		handler.ClockIn(c)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestAttendanceHandler_ClockOut(t *testing.T) {
	t.Run("negative no clock-in maps to 404", func(t *testing.T) {
		svc := &fakeAttendanceService{
			clockOutFn: func(ctx context.Context, companyID string, actor domain.Principal, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{}, attendance.ErrNoClockInToday
			},
		}
		handler := attendance.NewHandler(svc)

		c, rec := newAttendanceTestContext(t, http.MethodPost, "/api/v1/attendances/clock-out", `{}`)

		handler.ClockOut(c)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
