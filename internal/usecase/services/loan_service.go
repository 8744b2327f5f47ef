package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ttnguyen-dev/bankcore/internal/adapter/http/models"
	"github.com/ttnguyen-dev/bankcore/internal/adapter/repository/repo_interfaces"
	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/domain"
	"github.com/ttnguyen-dev/bankcore/internal/logger"
)

// Applications above this amount are auto-rejected by the credit rule.
var creditLimit = decimal.NewFromInt(50000)

const creditRejectReason = "credit eligibility check failed"

type LoanService struct {
	loanRepo     repo_interfaces.LoanRepository
	customerRepo repo_interfaces.CustomerRepository
}

func NewLoanService(
	loanRepo repo_interfaces.LoanRepository,
	customerRepo repo_interfaces.CustomerRepository,
) *LoanService {
	return &LoanService{
		loanRepo:     loanRepo,
		customerRepo: customerRepo,
	}
}

// ApplyForLoan books the application as PENDING, or as REJECTED when the
// credit rule turns it down. A customer with a pending application cannot
// file a second one.
func (s *LoanService) ApplyForLoan(ctx context.Context, req models.LoanApplicationRequest) (commons.Response[models.LoanResponse], error) {
	logger.Info("loan service apply request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}

	exists, err := s.customerRepo.Exists(ctx, req.CustomerID)
	if err != nil {
		logger.Error("loan service customer lookup failed", err, logger.Fields{
			"customerId": req.CustomerID,
		})
		return commons.ErrorResponse[models.LoanResponse]("failed to process application", "Unable to process application right now"), err
	}
	if !exists {
		err := fmt.Errorf("%w: customer %d", commons.ErrRecordNotFound, req.CustomerID)
		return commons.ErrorResponse[models.LoanResponse]("Customer not found"), err
	}

	hasPending, err := s.loanRepo.ExistsByCustomerIDAndStatus(ctx, req.CustomerID, domain.LoanStatusPending)
	if err != nil {
		return commons.ErrorResponse[models.LoanResponse]("failed to process application", "Unable to process application right now"), err
	}
	if hasPending {
		err := fmt.Errorf("customer %d already has a pending loan application", req.CustomerID)
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}

	loan := domain.Loan{
		CustomerID:      req.CustomerID,
		Amount:          req.Amount,
		InterestRate:    req.InterestRate,
		TermMonths:      req.TermMonths,
		Status:          domain.LoanStatusPending,
		ApplicationDate: time.Now().UTC(),
	}

	if req.Amount.GreaterThan(creditLimit) {
		loan.Status = domain.LoanStatusRejected
		loan.RejectReason = creditRejectReason
	}

	created, err := s.loanRepo.Create(ctx, loan)
	if err != nil {
		logger.Error("loan service create repository failed", err, logger.Fields{
			"customerId": req.CustomerID,
		})
		return commons.ErrorResponse[models.LoanResponse]("failed to process application", "Unable to process application right now"), err
	}

	message := "loan application submitted and pending approval"
	if created.Status == domain.LoanStatusRejected {
		message = "loan application rejected by credit eligibility check"
	}

	logger.Info("loan service apply success", logger.Fields{
		"loanId": created.ID,
		"status": created.Status,
	})

	return commons.SuccessResponse(message, mapLoanToResponse(created)), nil
}

func (s *LoanService) GetLoan(ctx context.Context, id int64) (commons.Response[models.LoanResponse], error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.LoanResponse]("Loan not found"), err
		}
		return commons.ErrorResponse[models.LoanResponse]("failed to get loan", "Unable to get loan right now"), err
	}

	return commons.SuccessResponse("loan retrieved successfully", mapLoanToResponse(loan)), nil
}

func (s *LoanService) GetLoansByCustomer(ctx context.Context, customerID int64) (commons.Response[[]models.LoanResponse], error) {
	loans, err := s.loanRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return commons.ErrorResponse[[]models.LoanResponse]("failed to list loans", "Unable to list loans right now"), err
	}

	out := make([]models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		out = append(out, mapLoanToResponse(loan))
	}
	return commons.SuccessResponse("loans retrieved successfully", out), nil
}

// UpdateLoanStatus applies a reviewed decision. principal is the acting
// reviewer's identifier and is recorded on the loan.
func (s *LoanService) UpdateLoanStatus(ctx context.Context, principal string, id int64, req models.UpdateLoanStatusRequest) (commons.Response[models.LoanResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}

	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.LoanResponse]("Loan not found"), err
		}
		return commons.ErrorResponse[models.LoanResponse]("failed to update loan", "Unable to update loan right now"), err
	}

	target := domain.LoanStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !isAllowedLoanTransition(loan.Status, target) {
		err := fmt.Errorf("%w: %s -> %s", commons.ErrInvalidLoanTransition, loan.Status, target)
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}

	if target == domain.LoanStatusRejected && strings.TrimSpace(req.Reason) == "" {
		err := errors.New("reason is required when rejecting a loan")
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}

	loan.Status = target
	loan.ApprovedBy = principal
	switch target {
	case domain.LoanStatusApproved:
		now := time.Now().UTC()
		loan.ApprovalDate = &now
	case domain.LoanStatusRejected:
		loan.RejectReason = strings.TrimSpace(req.Reason)
	}

	updated, err := s.loanRepo.Update(ctx, loan)
	if err != nil {
		logger.Error("loan service update repository failed", err, logger.Fields{"loanId": id})
		return commons.ErrorResponse[models.LoanResponse]("failed to update loan", "Unable to update loan right now"), err
	}

	logger.Info("loan service status updated", logger.Fields{
		"loanId":    id,
		"status":    target,
		"principal": principal,
	})

	return commons.SuccessResponse("loan updated successfully", mapLoanToResponse(updated)), nil
}

func isAllowedLoanTransition(from, to domain.LoanStatus) bool {
	switch from {
	case domain.LoanStatusPending:
		return to == domain.LoanStatusApproved || to == domain.LoanStatusRejected
	case domain.LoanStatusApproved:
		return to == domain.LoanStatusDisbursed
	case domain.LoanStatusDisbursed:
		return to == domain.LoanStatusClosed
	default:
		return false
	}
}

func mapLoanToResponse(loan domain.Loan) models.LoanResponse {
	response := models.LoanResponse{
		ID:              loan.ID,
		CustomerID:      loan.CustomerID,
		Amount:          loan.Amount,
		InterestRate:    loan.InterestRate,
		TermMonths:      loan.TermMonths,
		Status:          string(loan.Status),
		ApplicationDate: loan.ApplicationDate.Format(time.RFC3339),
		ApprovedBy:      loan.ApprovedBy,
		RejectReason:    loan.RejectReason,
	}
	if loan.ApprovalDate != nil {
		response.ApprovalDate = loan.ApprovalDate.Format(time.RFC3339)
	}
	return response
}
