package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/employee"
	employeeerrors "github.com/gmi-gj-dev-krushna/employcentric/internal/employee/errors"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/events"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/messaging/kafka"
)

type fakeEmployeeRepository struct {
	createFn       func(ctx context.Context, empl *employee.Employee) error
	findAllFn      func(ctx context.Context, companyID string) ([]employee.Employee, error)
	findOptionsFn  func(ctx context.Context, companyID string) ([]employee.Employee, error)
	findByIDCoFn   func(ctx context.Context, companyID, id string) (*employee.Employee, error)
	findByIDFn     func(ctx context.Context, id string) (*employee.Employee, error)
	updateFn       func(ctx context.Context, empl *employee.Employee) error
	deleteFn       func(ctx context.Context, companyID, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	return f.createFn(ctx, empl)
}

func (f *fakeEmployeeRepository) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return f.findAllFn(ctx, companyID)
}

func (f *fakeEmployeeRepository) FindOptionsByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return f.findOptionsFn(ctx, companyID)
}

func (f *fakeEmployeeRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	return f.findByIDCoFn(ctx, companyID, id)
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	return f.updateFn(ctx, empl)
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error { return nil }

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success generates a number and queues the lifecycle event", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, redisMock := redismock.NewClientMock()

		var created *employee.Employee
		repo := &fakeEmployeeRepository{
			createFn: func(ctx context.Context, empl *employee.Employee) error {
				created = empl
				return nil
			},
		}
		outbox := &fakeOutbox{}
		svc := employee.NewServiceWithOutbox(db, repo, &fakeCounter{}, outbox, rdb)

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()
		redisMock.ExpectDel(employee.GetEmployeeOptionsKey(companyID)).SetVal(1)

		resp, err := svc.Create(ctx, companyID, employee.CreateEmployeeRequest{
			FullName: "Jordan Pratama",
			Email:    "jordan@acme.test",
			HireDate: "2024-02-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, "EMP-000001", resp.EmployeeNumber)
		assert.Equal(t, employee.StatusActive, resp.EmploymentStatus)
		assert.NotNil(t, created)

		assert.Len(t, outbox.created, 1)
		assert.Equal(t, events.EmployeeCreatedTopic, outbox.created[0].Topic)
		assert.Equal(t, kafka.OutboxStatusPending, outbox.created[0].Status)

		var event events.EmployeeCreatedEvent
		assert.NoError(t, json.Unmarshal(outbox.created[0].Payload, &event))
		assert.Equal(t, "employee_created", event.EventType)
		assert.Equal(t, created.ID.String(), event.EmployeeID)
		assert.Equal(t, "jordan@acme.test", event.Email)

		assert.NoError(t, sqlMock.ExpectationsWereMet())
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("explicit employee number is kept", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := &fakeEmployeeRepository{
			createFn: func(ctx context.Context, empl *employee.Employee) error { return nil },
		}
		svc := employee.NewService(db, repo, &fakeCounter{}, nil)

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		resp, err := svc.Create(ctx, companyID, employee.CreateEmployeeRequest{
			FullName:       "Sasha Lee",
			Email:          "sasha@acme.test",
			EmployeeNumber: "EMP-CUSTOM",
			HireDate:       "2024-02-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, "EMP-CUSTOM", resp.EmployeeNumber)
	})

	t.Run("negative invalid hire date", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := &fakeEmployeeRepository{}
		svc := employee.NewService(db, repo, &fakeCounter{}, nil)

		_, err = svc.Create(ctx, companyID, employee.CreateEmployeeRequest{
			FullName: "Jordan Pratama",
			Email:    "jordan@acme.test",
			HireDate: "01-02-2024",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	})

	t.Run("negative duplicate email maps to conflict", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := &fakeEmployeeRepository{
			createFn: func(ctx context.Context, empl *employee.Employee) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"}
			},
		}
		svc := employee.NewService(db, repo, &fakeCounter{}, nil)

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		_, err = svc.Create(ctx, companyID, employee.CreateEmployeeRequest{
			FullName: "Jordan Pratama",
			Email:    "jordan@acme.test",
			HireDate: "2024-02-01",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	cacheKey := employee.GetEmployeeOptionsKey(companyID)

	t.Run("cache hit skips the repository", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, redisMock := redismock.NewClientMock()

		cached := []employee.EmployeeResponse{{ID: uuid.NewString(), FullName: "Cached Person"}}
		payload, _ := json.Marshal(cached)
		redisMock.ExpectGet(cacheKey).SetVal(string(payload))

		repo := &fakeEmployeeRepository{
			findOptionsFn: func(ctx context.Context, companyID string) ([]employee.Employee, error) {
				t.Fatal("repository must not be hit on cache hit")
				return nil, nil
			},
		}
		svc := employee.NewService(db, repo, &fakeCounter{}, rdb)

		resp, err := svc.GetOptions(ctx, companyID)
		assert.NoError(t, err)
		assert.Equal(t, "Cached Person", resp[0].FullName)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.Regexp().ExpectSet(cacheKey, `.*`, time.Hour).SetVal("OK")

		repo := &fakeEmployeeRepository{
			findOptionsFn: func(ctx context.Context, companyID string) ([]employee.Employee, error) {
				return []employee.Employee{{ID: uuid.New(), FullName: "Fresh Person"}}, nil
			},
		}
		svc := employee.NewService(db, repo, &fakeCounter{}, rdb)

		resp, err := svc.GetOptions(ctx, companyID)
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Fresh Person", resp[0].FullName)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("negative unknown employee", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := &fakeEmployeeRepository{
			findByIDCoFn: func(ctx context.Context, companyID, id string) (*employee.Employee, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := employee.NewService(db, repo, &fakeCounter{}, nil)

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		_, err = svc.Update(ctx, companyID, uuid.NewString(), employee.UpdateEmployeeRequest{
			FullName:         "X",
			Email:            "x@acme.test",
			EmployeeNumber:   "EMP-000001",
			HireDate:         "2024-02-01",
			EmploymentStatus: employee.StatusActive,
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
