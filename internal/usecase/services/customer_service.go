package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ttnguyen-dev/bankcore/internal/adapter/http/models"
	"github.com/ttnguyen-dev/bankcore/internal/adapter/repository/repo_interfaces"
	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/domain"
	"github.com/ttnguyen-dev/bankcore/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

type CustomerService struct {
	customerRepo repo_interfaces.CustomerRepository
}

func NewCustomerService(customerRepo repo_interfaces.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req models.CreateCustomerRequest) (commons.Response[models.CustomerResponse], error) {
	logger.Info("customer service create customer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.CustomerResponse]("validation failed", err.Error()), err
	}

	customer := domain.Customer{
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    strings.TrimSpace(req.Phone),
		Address:  strings.TrimSpace(req.Address),
	}

	created, err := s.customerRepo.Create(ctx, customer)
	if err != nil {
		if errors.Is(err, commons.ErrDuplicateRecord) {
			return commons.ErrorResponse[models.CustomerResponse]("Email already registered"), err
		}
		logger.Error("customer service create customer repository failed", err, nil)
		return commons.ErrorResponse[models.CustomerResponse]("failed to create customer", "Unable to create customer right now"), err
	}

	logger.Info("customer service create customer success", logger.Fields{
		"customerId": created.ID,
	})

	return commons.SuccessResponse("customer created successfully", mapCustomerToResponse(created)), nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (commons.Response[models.CustomerResponse], error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CustomerResponse]("Customer not found"), err
		}
		return commons.ErrorResponse[models.CustomerResponse]("failed to get customer", "Unable to get customer right now"), err
	}

	return commons.SuccessResponse("customer retrieved successfully", mapCustomerToResponse(customer)), nil
}

func (s *CustomerService) GetAllCustomers(ctx context.Context) (commons.Response[[]models.CustomerResponse], error) {
	customers, err := s.customerRepo.GetAll(ctx)
	if err != nil {
		return commons.ErrorResponse[[]models.CustomerResponse]("failed to list customers", "Unable to list customers right now"), err
	}

	out := make([]models.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		out = append(out, mapCustomerToResponse(customer))
	}
	return commons.SuccessResponse("customers retrieved successfully", out), nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id int64, req models.UpdateCustomerRequest) (commons.Response[models.CustomerResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.CustomerResponse]("validation failed", err.Error()), err
	}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CustomerResponse]("Customer not found"), err
		}
		return commons.ErrorResponse[models.CustomerResponse]("failed to update customer", "Unable to update customer right now"), err
	}

	if fullName := strings.TrimSpace(req.FullName); fullName != "" {
		customer.FullName = fullName
	}
	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" {
		customer.Email = email
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		customer.Phone = phone
	}
	if address := strings.TrimSpace(req.Address); address != "" {
		customer.Address = address
	}

	updated, err := s.customerRepo.Update(ctx, customer)
	if err != nil {
		logger.Error("customer service update customer repository failed", err, logger.Fields{
			"customerId": id,
		})
		return commons.ErrorResponse[models.CustomerResponse]("failed to update customer", "Unable to update customer right now"), err
	}

	return commons.SuccessResponse("customer updated successfully", mapCustomerToResponse(updated)), nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) (commons.Response[struct{}], error) {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[struct{}]("Customer not found"), err
		}
		return commons.ErrorResponse[struct{}]("failed to delete customer", "Unable to delete customer right now"), err
	}

	logger.Info("customer service delete customer success", logger.Fields{"customerId": id})
	return commons.SuccessResponse("customer deleted successfully", struct{}{}), nil
}

func (s *CustomerService) SetTransactionPin(ctx context.Context, id int64, req models.SetTransactionPinRequest) (commons.Response[struct{}], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[struct{}]("validation failed", err.Error()), err
	}

	if _, err := s.customerRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[struct{}]("Customer not found"), err
		}
		return commons.ErrorResponse[struct{}]("failed to set pin", "Unable to set pin right now"), err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(req.Pin)), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("customer service pin hash failed", err, logger.Fields{"customerId": id})
		return commons.ErrorResponse[struct{}]("failed to set pin", "Unable to set pin right now"), err
	}

	if err := s.customerRepo.UpdatePinHash(ctx, id, string(hashed)); err != nil {
		logger.Error("customer service pin update failed", err, logger.Fields{"customerId": id})
		return commons.ErrorResponse[struct{}]("failed to set pin", "Unable to set pin right now"), err
	}

	logger.Info("customer service set pin success", logger.Fields{"customerId": id})
	return commons.SuccessResponse("pin set successfully", struct{}{}), nil
}

func (s *CustomerService) VerifyTransactionPin(ctx context.Context, id int64, req models.VerifyTransactionPinRequest) (commons.Response[struct{}], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[struct{}]("validation failed", err.Error()), err
	}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[struct{}]("Customer not found"), err
		}
		return commons.ErrorResponse[struct{}]("failed to verify pin", "Unable to verify pin right now"), err
	}

	if customer.PinHash == "" {
		return commons.ErrorResponse[struct{}]("Invalid pin", commons.ErrInvalidPin.Error()), commons.ErrInvalidPin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PinHash), []byte(strings.TrimSpace(req.Pin))); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return commons.ErrorResponse[struct{}]("Invalid pin", commons.ErrInvalidPin.Error()), commons.ErrInvalidPin
		}
		return commons.ErrorResponse[struct{}]("failed to verify pin", "Unable to verify pin right now"), err
	}

	return commons.SuccessResponse("pin verified successfully", struct{}{}), nil
}

func mapCustomerToResponse(customer domain.Customer) models.CustomerResponse {
	return models.CustomerResponse{
		ID:        customer.ID,
		FullName:  customer.FullName,
		Email:     customer.Email,
		Phone:     customer.Phone,
		Address:   customer.Address,
		CreatedAt: customer.CreatedAt.Format(time.RFC3339),
		UpdatedAt: customer.UpdatedAt.Format(time.RFC3339),
	}
}
