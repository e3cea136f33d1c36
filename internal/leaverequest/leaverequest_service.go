package leaverequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meharshjain/leave-approval-system/internal/balance"
	"github.com/meharshjain/leave-approval-system/internal/employee"
	employeeerrors "github.com/meharshjain/leave-approval-system/internal/employee/errors"
	"github.com/meharshjain/leave-approval-system/internal/events"
	leaverequesterrors "github.com/meharshjain/leave-approval-system/internal/leaverequest/errors"
	"github.com/meharshjain/leave-approval-system/internal/messaging/kafka"
	"github.com/meharshjain/leave-approval-system/internal/shared/contextutil"
)

type ListMineFilter struct {
	AcademicYear string
	Status       string
}

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	Decide(ctx context.Context, actorID, id string, req DecideLeaveRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, employeeID, id string) (LeaveRequestResponse, error)
	ListMine(ctx context.Context, employeeID string, filter ListMineFilter, page, pageSize int) ([]LeaveRequestResponse, int64, error)
	ListPendingFor(ctx context.Context, actorRole string) ([]LeaveRequestResponse, error)
	ListRecords(ctx context.Context, academicYear, employeeID string) ([]LeaveRequestResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	balances  balance.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	balances balance.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, employees, balances, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	balances balance.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		balances:  balances,
		outbox:    outboxRepo,
		logger:    l,
	}
}

func (s *service) Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("submit leave request",
		zap.String("employee_id", employeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidEmployeeID
	}

	v, err := validateSubmission(req, time.Now().UTC())
	if err != nil {
		s.logger.Warn("submit leave validation failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := s.employees.FindWithManager(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("submit leave employee lookup failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	// Balance sufficiency: a missing ledger entry means the type is not
	// budgeted for this employee and the request goes through unchecked.
	b, err := s.balances.FindFor(ctx, employeeID, v.AcademicYear, req.LeaveType)
	if err != nil && !errors.Is(err, balance.ErrNoRows) {
		s.logger.Error("submit leave balance lookup failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if b != nil && b.Remaining < v.TotalDays {
		s.logger.Warn("submit leave insufficient balance",
			zap.String("employee_id", employeeID),
			zap.Int("available", b.Remaining),
			zap.Int("requested", v.TotalDays),
		)
		return LeaveRequestResponse{}, leaverequesterrors.InsufficientBalance(b.Remaining, v.TotalDays)
	}

	l := &LeaveRequest{
		ID:                  uuid.New(),
		EmployeeID:          employeeUUID,
		LeaveType:           req.LeaveType,
		StartDate:           v.StartDate,
		EndDate:             v.EndDate,
		TotalDays:           v.TotalDays,
		Reason:              req.Reason,
		AcademicYear:        v.AcademicYear,
		Status:              StatusPending,
		ManagerApproval:     Approval{Status: StatusPending},
		CoordinatorApproval: Approval{Status: StatusPending},
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := s.enqueueRequested(ctx, tx, l, emp); err != nil {
		s.logger.Error("submit leave enqueue notification failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("leave_request_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Int("total_days", l.TotalDays),
	)

	l.Employee = emp
	return mapToResponse(*l), nil
}

func (s *service) Decide(ctx context.Context, actorID, id string, req DecideLeaveRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("decide leave request",
		zap.String("leave_request_id", id),
		zap.String("actor_id", actorID),
		zap.String("decision", req.Status),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	actor, err := s.employees.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return LeaveRequestResponse{}, err
	}

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}

	if terminal(l.Status) {
		s.logger.Warn("decide leave on finalized request",
			zap.String("leave_request_id", id),
			zap.String("status", l.Status),
		)
		return LeaveRequestResponse{}, leaverequesterrors.ErrAlreadyFinalized
	}

	now := time.Now().UTC()
	decision := Approval{
		Status:   req.Status,
		By:       &actorUUID,
		At:       &now,
		Comments: req.Comments,
	}

	if err := applyDecision(l, actor.Role, decision); err != nil {
		return LeaveRequestResponse{}, err
	}

	previous := l.Status
	l.Status = deriveStatus(l.ManagerApproval.Status, l.CoordinatorApproval.Status)

	if previous == StatusPending && l.Status == StatusApproved {
		bqtx := s.balances.WithTx(tx)
		if err := bqtx.Consume(ctx, l.EmployeeID.String(), l.AcademicYear, l.LeaveType, l.TotalDays); err != nil {
			if errors.Is(err, balance.ErrInsufficientRemaining) {
				s.logger.Warn("decide leave balance exhausted",
					zap.String("leave_request_id", id),
					zap.Int("requested_days", l.TotalDays),
				)
				return LeaveRequestResponse{}, leaverequesterrors.ErrBalanceExhausted
			}
			s.logger.Error("decide leave consume balance failed",
				zap.String("leave_request_id", id),
				zap.Error(err),
			)
			return LeaveRequestResponse{}, err
		}
	}

	if err := qtx.UpdateWithVersion(ctx, l); err != nil {
		if errors.Is(err, ErrStaleVersion) {
			s.logger.Warn("decide leave version conflict", zap.String("leave_request_id", id))
			return LeaveRequestResponse{}, leaverequesterrors.ErrVersionConflict
		}
		s.logger.Error("decide leave persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := s.enqueueDecided(ctx, tx, l, actorID, req.Comments); err != nil {
		s.logger.Error("decide leave enqueue notification failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("decide leave success",
		zap.String("leave_request_id", id),
		zap.String("actor_role", actor.Role),
		zap.String("status", l.Status),
	)

	return mapToResponse(*l), nil
}

// applyDecision routes the actor's decision to the right sub-approval.
// Sub-approvals are write-once: a second decision on the same side fails
// instead of silently overwriting the first.
func applyDecision(l *LeaveRequest, actorRole string, decision Approval) error {
	switch actorRole {
	case employee.RoleManager:
		if l.ManagerApproval.Decided() {
			return leaverequesterrors.ErrAlreadyDecided
		}
		l.ManagerApproval = decision
	case employee.RoleCoordinator:
		if l.CoordinatorApproval.Decided() {
			return leaverequesterrors.ErrAlreadyDecided
		}
		l.CoordinatorApproval = decision
	case employee.RoleAdmin:
		// An admin decision lands on every side still open.
		applied := false
		if !l.ManagerApproval.Decided() {
			l.ManagerApproval = decision
			applied = true
		}
		if !l.CoordinatorApproval.Decided() {
			l.CoordinatorApproval = decision
			applied = true
		}
		if !applied {
			return leaverequesterrors.ErrAlreadyDecided
		}
	default:
		return leaverequesterrors.ErrUnsupportedApproverRole
	}
	return nil
}

func (s *service) Cancel(ctx context.Context, employeeID, id string) (LeaveRequestResponse, error) {
	s.logger.Debug("cancel leave request",
		zap.String("leave_request_id", id),
		zap.String("employee_id", employeeID),
	)

	if _, err := uuid.Parse(employeeID); err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindPendingOwned(ctx, id, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}

	l.Status = StatusCancelled

	if err := qtx.UpdateWithVersion(ctx, l); err != nil {
		if errors.Is(err, ErrStaleVersion) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrVersionConflict
		}
		s.logger.Error("cancel leave persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("cancel leave success",
		zap.String("leave_request_id", id),
		zap.String("employee_id", employeeID),
	)

	return mapToResponse(*l), nil
}

func (s *service) ListMine(ctx context.Context, employeeID string, filter ListMineFilter, page, pageSize int) ([]LeaveRequestResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	requests, total, err := s.repo.FindAllByEmployee(
		ctx, employeeID, filter.AcademicYear, filter.Status,
		(page-1)*pageSize, pageSize,
	)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(requests), total, nil
}

// ListPendingFor serves the approval queue. Managers triage everything
// still pending; coordinators only see requests waiting on their side.
func (s *service) ListPendingFor(ctx context.Context, actorRole string) ([]LeaveRequestResponse, error) {
	var (
		requests []LeaveRequest
		err      error
	)
	switch actorRole {
	case employee.RoleManager, employee.RoleAdmin:
		requests, err = s.repo.FindPendingForManager(ctx)
	case employee.RoleCoordinator:
		requests, err = s.repo.FindPendingForCoordinator(ctx)
	default:
		return nil, leaverequesterrors.ErrUnsupportedApproverRole
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

// ListRecords defaults an absent academic year to the current one, the
// same fallback submission uses.
func (s *service) ListRecords(ctx context.Context, academicYear, employeeID string) ([]LeaveRequestResponse, error) {
	academicYear = resolveAcademicYear(academicYear, time.Now().UTC())
	requests, err := s.repo.FindRecords(ctx, academicYear, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) enqueueRequested(ctx context.Context, tx *sql.Tx, l *LeaveRequest, emp *employee.Employee) error {
	if s.outbox == nil {
		return nil
	}

	managerEmail := ""
	if emp.Manager != nil {
		managerEmail = emp.Manager.Email
	}

	payload, err := json.Marshal(events.LeaveRequestedEvent{
		RequestID:    l.ID.String(),
		EmployeeID:   l.EmployeeID.String(),
		EmployeeName: emp.FullName,
		ManagerEmail: managerEmail,
		LeaveType:    l.LeaveType,
		StartDate:    l.StartDate.Format("2006-01-02"),
		EndDate:      l.EndDate.Format("2006-01-02"),
		TotalDays:    l.TotalDays,
		Reason:       l.Reason,
		AcademicYear: l.AcademicYear,
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     "leave.requested",
		Topic:         events.LeaveRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) enqueueDecided(ctx context.Context, tx *sql.Tx, l *LeaveRequest, actorID string, comments *string) error {
	if s.outbox == nil {
		return nil
	}

	employeeEmail, employeeName := "", ""
	if l.Employee != nil {
		employeeEmail = l.Employee.Email
		employeeName = l.Employee.FullName
	}
	commentText := ""
	if comments != nil {
		commentText = *comments
	}

	payload, err := json.Marshal(events.LeaveDecidedEvent{
		RequestID:     l.ID.String(),
		EmployeeID:    l.EmployeeID.String(),
		EmployeeEmail: employeeEmail,
		EmployeeName:  employeeName,
		LeaveType:     l.LeaveType,
		StartDate:     l.StartDate.Format("2006-01-02"),
		EndDate:       l.EndDate.Format("2006-01-02"),
		Status:        l.Status,
		DecidedBy:     actorID,
		Comments:      commentText,
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     "leave.decided",
		Topic:         events.LeaveDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:                  l.ID.String(),
		EmployeeID:          l.EmployeeID.String(),
		LeaveType:           l.LeaveType,
		StartDate:           l.StartDate.Format("2006-01-02"),
		EndDate:             l.EndDate.Format("2006-01-02"),
		TotalDays:           l.TotalDays,
		Reason:              l.Reason,
		AcademicYear:        l.AcademicYear,
		Status:              l.Status,
		ManagerApproval:     mapApproval(l.ManagerApproval),
		CoordinatorApproval: mapApproval(l.CoordinatorApproval),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
	}
	if !l.CreatedAt.IsZero() {
		resp.CreatedAt = l.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapApproval(a Approval) ApprovalView {
	view := ApprovalView{Status: a.Status, Comments: a.Comments}
	if a.By != nil {
		v := a.By.String()
		view.ApprovedBy = &v
	}
	if a.At != nil {
		v := a.At.Format(time.RFC3339)
		view.ApprovedAt = &v
	}
	return view
}

func mapToListResponse(requests []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp
}
