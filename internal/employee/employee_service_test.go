package employee_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ImanMustopaKamal/deptech-be/internal/employee"
	employeeerrors "github.com/ImanMustopaKamal/deptech-be/internal/employee/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	createFn               func(ctx context.Context, e *employee.Employee) error
	findAllFn              func(ctx context.Context) ([]employee.Employee, error)
	findAllOrderedByNameFn func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn             func(ctx context.Context, id string) (*employee.Employee, error)
	updateFn               func(ctx context.Context, e *employee.Employee) error
	deleteFn               func(ctx context.Context, id string) error
	existsFn               func(ctx context.Context, id string) (bool, error)
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindAllOrderedByName(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllOrderedByNameFn != nil {
		return f.findAllOrderedByNameFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeEmployeeRepository) Exists(ctx context.Context, id string) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, id)
	}
	return true, nil
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeEmployeeRepository{}
		repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			assert.NotEqual(t, uuid.Nil, e.ID)
			assert.Equal(t, "budi@mail.com", e.Email)
			return nil
		}
		svc := employee.NewService(repo, nil)

		resp, err := svc.Create(ctx, employee.CreateEmployeeRequest{
			FirstName: "Budi",
			LastName:  "Santoso",
			Email:     "budi@mail.com",
			Gender:    "male",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Budi", resp.FirstName)
	})

	t.Run("negative duplicate email", func(t *testing.T) {
		repo := &fakeEmployeeRepository{}
		repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"}
		}
		svc := employee.NewService(repo, nil)

		_, err := svc.Create(ctx, employee.CreateEmployeeRequest{
			FirstName: "Budi",
			LastName:  "Santoso",
			Email:     "budi@mail.com",
			Gender:    "male",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("negative invalid id", func(t *testing.T) {
		svc := employee.NewService(&fakeEmployeeRepository{}, nil)

		_, err := svc.GetByID(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})

	t.Run("negative not found", func(t *testing.T) {
		svc := employee.NewService(&fakeEmployeeRepository{}, nil)

		_, err := svc.GetByID(ctx, uuid.New().String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("success cache miss hits db then fills cache", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		stored := []employee.Employee{
			{ID: uuid.New(), FirstName: "Anna", LastName: "Lee", Email: "anna@mail.com", Gender: "female"},
			{ID: uuid.New(), FirstName: "Budi", LastName: "Santoso", Email: "budi@mail.com", Gender: "male"},
		}
		repo := &fakeEmployeeRepository{
			findAllOrderedByNameFn: func(ctx context.Context) ([]employee.Employee, error) {
				return stored, nil
			},
		}

		expected := []employee.EmployeeResponse{
			{ID: stored[0].ID.String(), FirstName: "Anna", LastName: "Lee", Email: "anna@mail.com", Gender: "female"},
			{ID: stored[1].ID.String(), FirstName: "Budi", LastName: "Santoso", Email: "budi@mail.com", Gender: "male"},
		}
		payload, err := json.Marshal(expected)
		assert.NoError(t, err)

		redisMock.ExpectGet(employee.OptionsCacheKey).RedisNil()
		redisMock.ExpectSet(employee.OptionsCacheKey, payload, 1*time.Hour).SetVal("OK")

		svc := employee.NewService(repo, rdb)

		resp, err := svc.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Equal(t, expected, resp)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("success cache hit skips db", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		cached := []employee.EmployeeResponse{
			{ID: uuid.New().String(), FirstName: "Anna", LastName: "Lee", Email: "anna@mail.com", Gender: "female"},
		}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)
		redisMock.ExpectGet(employee.OptionsCacheKey).SetVal(string(payload))

		repo := &fakeEmployeeRepository{
			findAllOrderedByNameFn: func(ctx context.Context) ([]employee.Employee, error) {
				t.Fatal("db must not be hit on cache hit")
				return nil, nil
			},
		}
		svc := employee.NewService(repo, rdb)

		resp, err := svc.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Equal(t, cached, resp)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates options cache", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectDel(employee.OptionsCacheKey).SetVal(1)

		id := uuid.New()
		repo := &fakeEmployeeRepository{
			findByIDFn: func(ctx context.Context, targetID string) (*employee.Employee, error) {
				return &employee.Employee{ID: id}, nil
			},
		}
		svc := employee.NewService(repo, rdb)

		err := svc.Delete(ctx, id.String())

		assert.NoError(t, err)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		svc := employee.NewService(&fakeEmployeeRepository{}, nil)

		err := svc.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
