package admin_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ImanMustopaKamal/deptech-be/internal/admin"
	adminerrors "github.com/ImanMustopaKamal/deptech-be/internal/admin/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeAdminService struct {
	createFn  func(ctx context.Context, req admin.CreateAdminRequest) (admin.AdminResponse, error)
	getAllFn  func(ctx context.Context) ([]admin.AdminResponse, error)
	getByIDFn func(ctx context.Context, id string) (admin.AdminResponse, error)
	updateFn  func(ctx context.Context, id string, req admin.UpdateAdminRequest) (admin.AdminResponse, error)
	deleteFn  func(ctx context.Context, actorID, id string) error
}

func (f *fakeAdminService) Create(ctx context.Context, req admin.CreateAdminRequest) (admin.AdminResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeAdminService) GetAll(ctx context.Context) ([]admin.AdminResponse, error) {
	return f.getAllFn(ctx)
}
func (f *fakeAdminService) GetByID(ctx context.Context, id string) (admin.AdminResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeAdminService) Update(ctx context.Context, id string, req admin.UpdateAdminRequest) (admin.AdminResponse, error) {
	return f.updateFn(ctx, id, req)
}
func (f *fakeAdminService) Delete(ctx context.Context, actorID, id string) error {
	return f.deleteFn(ctx, actorID, id)
}

func TestAdminHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAdminService{
			createFn: func(ctx context.Context, req admin.CreateAdminRequest) (admin.AdminResponse, error) {
				assert.Equal(t, "siti@mail.com", req.Email)
				return admin.AdminResponse{ID: uuid.New().String(), Email: req.Email}, nil
			},
		}

		h := admin.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"first_name":"Siti","last_name":"Rahma","email":"siti@mail.com","date_of_birth":"1992-04-01","gender":"female","password":"secret123"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/admins", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative short password", func(t *testing.T) {
		svc := &fakeAdminService{
			createFn: func(ctx context.Context, req admin.CreateAdminRequest) (admin.AdminResponse, error) {
				t.Fatal("service must not be called on invalid input")
				return admin.AdminResponse{}, nil
			},
		}

		h := admin.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"first_name":"Siti","last_name":"Rahma","email":"siti@mail.com","date_of_birth":"1992-04-01","gender":"female","password":"123"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/admins", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})
}

func TestAdminHandler_Delete(t *testing.T) {
	t.Run("success passes actor from context", func(t *testing.T) {
		actorID := uuid.New().String()
		id := uuid.New().String()
		svc := &fakeAdminService{
			deleteFn: func(ctx context.Context, aid, targetID string) error {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, id, targetID)
				return nil
			},
		}

		h := admin.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/admins/"+id, nil)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("admin_id", actorID)

		h.Delete(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative delete self", func(t *testing.T) {
		id := uuid.New().String()
		svc := &fakeAdminService{
			deleteFn: func(ctx context.Context, aid, targetID string) error {
				return adminerrors.ErrCannotDeleteSelf
			},
		}

		h := admin.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/admins/"+id, nil)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("admin_id", id)

		h.Delete(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}
