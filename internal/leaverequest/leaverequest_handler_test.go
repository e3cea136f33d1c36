package leaverequest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/meharshjain/leave-approval-system/internal/leaverequest"
	leaverequesterrors "github.com/meharshjain/leave-approval-system/internal/leaverequest/errors"
)

type fakeService struct {
	submitFn         func(ctx context.Context, employeeID string, req leaverequest.SubmitLeaveRequest) (leaverequest.LeaveRequestResponse, error)
	decideFn         func(ctx context.Context, actorID, id string, req leaverequest.DecideLeaveRequest) (leaverequest.LeaveRequestResponse, error)
	cancelFn         func(ctx context.Context, employeeID, id string) (leaverequest.LeaveRequestResponse, error)
	listMineFn       func(ctx context.Context, employeeID string, filter leaverequest.ListMineFilter, page, pageSize int) ([]leaverequest.LeaveRequestResponse, int64, error)
	listPendingForFn func(ctx context.Context, actorRole string) ([]leaverequest.LeaveRequestResponse, error)
	listRecordsFn    func(ctx context.Context, academicYear, employeeID string) ([]leaverequest.LeaveRequestResponse, error)
}

func (f *fakeService) Submit(ctx context.Context, employeeID string, req leaverequest.SubmitLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
	return f.submitFn(ctx, employeeID, req)
}
func (f *fakeService) Decide(ctx context.Context, actorID, id string, req leaverequest.DecideLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
	return f.decideFn(ctx, actorID, id, req)
}
func (f *fakeService) Cancel(ctx context.Context, employeeID, id string) (leaverequest.LeaveRequestResponse, error) {
	return f.cancelFn(ctx, employeeID, id)
}
func (f *fakeService) ListMine(ctx context.Context, employeeID string, filter leaverequest.ListMineFilter, page, pageSize int) ([]leaverequest.LeaveRequestResponse, int64, error) {
	return f.listMineFn(ctx, employeeID, filter, page, pageSize)
}
func (f *fakeService) ListPendingFor(ctx context.Context, actorRole string) ([]leaverequest.LeaveRequestResponse, error) {
	return f.listPendingForFn(ctx, actorRole)
}
func (f *fakeService) ListRecords(ctx context.Context, academicYear, employeeID string) ([]leaverequest.LeaveRequestResponse, error) {
	return f.listRecordsFn(ctx, academicYear, employeeID)
}

func TestHandler_Submit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		submitFn: func(ctx context.Context, eid string, req leaverequest.SubmitLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, "VACATION", req.LeaveType)
			return leaverequest.LeaveRequestResponse{ID: uuid.New().String(), Status: "PENDING"}, nil
		},
	}
	h := leaverequest.NewHandler(svc)

	body := `{"leave_type":"VACATION","start_date":"2026-06-10","end_date":"2026-06-12","reason":"family trip"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodPost, "/leave/request", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Submit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
	assert.Contains(t, w.Body.String(), `"PENDING"`)
}

func TestHandler_Submit_BadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := leaverequest.NewHandler(&fakeService{
		submitFn: func(ctx context.Context, eid string, req leaverequest.SubmitLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
			t.Fatal("service must not be called on a binding failure")
			return leaverequest.LeaveRequestResponse{}, nil
		},
	})

	body := `{"leave_type":"HOLIDAY","start_date":"2026-06-10"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/leave/request", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}

func TestHandler_Decide_Conflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	requestID := uuid.New().String()

	h := leaverequest.NewHandler(&fakeService{
		decideFn: func(ctx context.Context, actorID, id string, req leaverequest.DecideLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
			assert.Equal(t, requestID, id)
			return leaverequest.LeaveRequestResponse{}, leaverequesterrors.ErrVersionConflict
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Params = gin.Params{{Key: "id", Value: requestID}}
	c.Request = httptest.NewRequest(http.MethodPut, "/leave/approve/"+requestID, strings.NewReader(`{"status":"APPROVED"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Decide(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")
}

func TestHandler_Cancel_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := leaverequest.NewHandler(&fakeService{
		cancelFn: func(ctx context.Context, employeeID, id string) (leaverequest.LeaveRequestResponse, error) {
			return leaverequest.LeaveRequestResponse{}, leaverequesterrors.ErrLeaveRequestNotFound
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodPut, "/leave/cancel/abc", nil)
	h.Cancel(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_GetMine_Meta(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := leaverequest.NewHandler(&fakeService{
		listMineFn: func(ctx context.Context, employeeID string, filter leaverequest.ListMineFilter, page, pageSize int) ([]leaverequest.LeaveRequestResponse, int64, error) {
			assert.Equal(t, 2, page)
			assert.Equal(t, 5, pageSize)
			assert.Equal(t, "2025", filter.AcademicYear)
			return []leaverequest.LeaveRequestResponse{{ID: uuid.New().String()}}, 11, nil
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodGet, "/leave/my?page=2&page_size=5&academic_year=2025", nil)
	h.GetMine(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"meta"`)
	assert.Contains(t, w.Body.String(), `"total":11`)
}

func TestHandler_GetPending_UsesRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := leaverequest.NewHandler(&fakeService{
		listPendingForFn: func(ctx context.Context, actorRole string) ([]leaverequest.LeaveRequestResponse, error) {
			assert.Equal(t, "coordinator", actorRole)
			return nil, nil
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("role", "coordinator")
	c.Request = httptest.NewRequest(http.MethodGet, "/leave/pending", nil)
	h.GetPending(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
