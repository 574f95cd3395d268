package employee_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/employee"
	employeeerrors "github.com/gmi-gj-dev-krushna/employcentric/internal/employee/errors"
)

type fakeEmployeeService struct {
	createFn  func(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	getAllFn  func(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error)
	optionsFn func(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error)
	getByIDFn func(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error)
	updateFn  func(ctx context.Context, companyID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	deleteFn  func(ctx context.Context, companyID, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.createFn(ctx, companyID, req)
}

func (f *fakeEmployeeService) GetAll(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error) {
	return f.getAllFn(ctx, companyID)
}

func (f *fakeEmployeeService) GetOptions(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error) {
	return f.optionsFn(ctx, companyID)
}

func (f *fakeEmployeeService) GetByID(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error) {
	return f.getByIDFn(ctx, companyID, id)
}

func (f *fakeEmployeeService) Update(ctx context.Context, companyID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.updateFn(ctx, companyID, id, req)
}

func (f *fakeEmployeeService) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}

func newEmployeeTestContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	c.Request = req
	c.Set("company_id", uuid.NewString())
	return c, rec
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success returns 201", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{ID: uuid.NewString(), FullName: req.FullName}, nil
			},
		}
		handler := employee.NewHandler(svc)

		body, _ := json.Marshal(employee.CreateEmployeeRequest{
			FullName: "Jordan Pratama",
			Email:    "jordan@acme.test",
			HireDate: "2024-02-01",
		})
		c, rec := newEmployeeTestContext(t, http.MethodPost, "/api/v1/employees", body)

		handler.Create(c)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("negative invalid email fails binding", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				t.Fatal("service must not be called on binding failure")
				return employee.EmployeeResponse{}, nil
			},
		}
		handler := employee.NewHandler(svc)

		c, rec := newEmployeeTestContext(t, http.MethodPost, "/api/v1/employees",
			[]byte(`{"full_name":"Jordan","email":"not-an-email","hire_date":"2024-02-01"}`))

		handler.Create(c)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("negative duplicate maps to 409", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
			},
		}
		handler := employee.NewHandler(svc)

		body, _ := json.Marshal(employee.CreateEmployeeRequest{
			FullName: "Jordan Pratama",
			Email:    "jordan@acme.test",
			HireDate: "2024-02-01",
		})
		c, rec := newEmployeeTestContext(t, http.MethodPost, "/api/v1/employees", body)

		handler.Create(c)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestEmployeeHandler_GetById(t *testing.T) {
	t.Run("negative not found maps to 404", func(t *testing.T) {
		svc := &fakeEmployeeService{
			getByIDFn: func(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}
		handler := employee.NewHandler(svc)

		c, rec := newEmployeeTestContext(t, http.MethodGet, "/api/v1/employees/x", nil)
		c.Params = gin.Params{{Key: "id", Value: "x"}}

		handler.GetById(c)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
