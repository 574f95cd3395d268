package attendance_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/attendance"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/domain"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/rbac"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/rbac/infra"
)

type memAttendanceRepository struct {
	mu      sync.Mutex
	records []*attendance.Attendance
}

func (m *memAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository { return m }

func (m *memAttendanceRepository) Create(ctx context.Context, a *attendance.Attendance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.records = append(m.records, &cp)
	return nil
}

func (m *memAttendanceRepository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.CompanyID.String() == companyID &&
			r.EmployeeID.String() == employeeID &&
			r.AttendanceDate.Equal(date) {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memAttendanceRepository) FindAllByCompany(ctx context.Context, companyID string) ([]attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Attendance
	for _, r := range m.records {
		if r.CompanyID.String() == companyID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memAttendanceRepository) FindAllByCompanyAndEmployee(ctx context.Context, companyID, employeeID string) ([]attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Attendance
	for _, r := range m.records {
		if r.CompanyID.String() == companyID && r.EmployeeID.String() == employeeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memAttendanceRepository) Update(ctx context.Context, a *attendance.Attendance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.records {
		if r.ID == a.ID {
			cp := *a
			m.records[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func setupAttendanceTest(t *testing.T) (attendance.Service, *memAttendanceRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	repo := &memAttendanceRepository{}
	svc := attendance.NewService(db, repo, rbac.NewService(enforcer))
	return svc, repo, sqlMock, func() { db.Close() }
}

func TestClassifyClockIn(t *testing.T) {
	onTime := time.Date(2024, 3, 1, 8, 45, 0, 0, time.UTC)
	assert.Equal(t, attendance.StatusPresent, attendance.ClassifyClockIn(onTime))

	boundary := time.Date(2024, 3, 1, 9, 15, 0, 0, time.UTC)
	assert.Equal(t, attendance.StatusPresent, attendance.ClassifyClockIn(boundary))

	late := time.Date(2024, 3, 1, 9, 16, 0, 0, time.UTC)
	assert.Equal(t, attendance.StatusLate, attendance.ClassifyClockIn(late))

	veryLate := time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, attendance.StatusLate, attendance.ClassifyClockIn(veryLate))
}

func TestAttendanceService_ClockIn(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actor := domain.Principal{ID: uuid.New().String(), Name: "E", Role: domain.RoleEmployee}

	t.Run("success records a row for today", func(t *testing.T) {
		svc, repo, sqlMock, cleanup := setupAttendanceTest(t)
		defer cleanup()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		resp, err := svc.ClockIn(ctx, companyID, actor, attendance.ClockInRequest{})
		assert.NoError(t, err)
		assert.Equal(t, actor.ID, resp.EmployeeID)
		assert.Equal(t, "manual", resp.Source)
		assert.Len(t, repo.records, 1)
	})

	t.Run("negative second clock-in same day", func(t *testing.T) {
		svc, _, sqlMock, cleanup := setupAttendanceTest(t)
		defer cleanup()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		_, err := svc.ClockIn(ctx, companyID, actor, attendance.ClockInRequest{})
		assert.NoError(t, err)

		_, err = svc.ClockIn(ctx, companyID, actor, attendance.ClockInRequest{})
		assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
	})
}

func TestAttendanceService_ClockOut(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actor := domain.Principal{ID: uuid.New().String(), Name: "E", Role: domain.RoleEmployee}

	t.Run("success closes today's row", func(t *testing.T) {
		svc, repo, sqlMock, cleanup := setupAttendanceTest(t)
		defer cleanup()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		_, err := svc.ClockIn(ctx, companyID, actor, attendance.ClockInRequest{})
		assert.NoError(t, err)

		resp, err := svc.ClockOut(ctx, companyID, actor, attendance.ClockOutRequest{})
		assert.NoError(t, err)
		assert.NotNil(t, resp.ClockOut)
		assert.NotNil(t, repo.records[0].ClockOut)
	})

	t.Run("negative clock-out without clock-in", func(t *testing.T) {
		svc, _, sqlMock, cleanup := setupAttendanceTest(t)
		defer cleanup()

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		_, err := svc.ClockOut(ctx, companyID, actor, attendance.ClockOutRequest{})
		assert.ErrorIs(t, err, attendance.ErrNoClockInToday)
	})

	t.Run("negative double clock-out", func(t *testing.T) {
		svc, _, sqlMock, cleanup := setupAttendanceTest(t)
		defer cleanup()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		_, err := svc.ClockIn(ctx, companyID, actor, attendance.ClockInRequest{})
		assert.NoError(t, err)
		_, err = svc.ClockOut(ctx, companyID, actor, attendance.ClockOutRequest{})
		assert.NoError(t, err)

		_, err = svc.ClockOut(ctx, companyID, actor, attendance.ClockOutRequest{})
		assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
	})
}

func TestAttendanceService_GetAll(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	alice := domain.Principal{ID: uuid.New().String(), Name: "A", Role: domain.RoleEmployee}
	bob := domain.Principal{ID: uuid.New().String(), Name: "B", Role: domain.RoleEmployee}
	hr := domain.Principal{ID: uuid.New().String(), Name: "H", Role: domain.RoleHR}

	t.Run("employee sees own rows, hr sees the whole company", func(t *testing.T) {
		svc, _, sqlMock, cleanup := setupAttendanceTest(t)
		defer cleanup()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		_, err := svc.ClockIn(ctx, companyID, alice, attendance.ClockInRequest{})
		assert.NoError(t, err)
		_, err = svc.ClockIn(ctx, companyID, bob, attendance.ClockInRequest{})
		assert.NoError(t, err)

		mine, err := svc.GetAll(ctx, companyID, alice)
		assert.NoError(t, err)
		assert.Len(t, mine, 1)
		assert.Equal(t, alice.ID, mine[0].EmployeeID)

		all, err := svc.GetAll(ctx, companyID, hr)
		assert.NoError(t, err)
		assert.Len(t, all, 2)
	})
}
