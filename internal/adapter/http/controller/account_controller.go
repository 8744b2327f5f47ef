package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ttnguyen-dev/bankcore/internal/adapter/http/models"
	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/logger"
	"github.com/ttnguyen-dev/bankcore/internal/usecase/service_interfaces"
)

const (
	routeAccounts        = "/accounts"
	routeAccountByID     = "/accounts/{id}"
	routeAccountDeposit  = "/accounts/{id}/deposit"
	routeAccountsByOwner = "/customers/{id}/accounts"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc(routeAccounts, c.create).Methods(http.MethodPost)
	router.HandleFunc(routeAccounts, c.list).Methods(http.MethodGet)
	router.HandleFunc(routeAccountByID, c.get).Methods(http.MethodGet)
	router.HandleFunc(routeAccountByID, c.update).Methods(http.MethodPut)
	router.HandleFunc(routeAccountByID, c.delete).Methods(http.MethodDelete)
	router.HandleFunc(routeAccountDeposit, c.deposit).Methods(http.MethodPost)
	router.HandleFunc(routeAccountsByOwner, c.listByCustomer).Methods(http.MethodGet)
}

func (c *AccountController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeAccounts, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.CreateAccount(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeAccounts, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, routeAccounts, http.StatusCreated, response, start)
}

func (c *AccountController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetAllAccounts(r.Context())
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeAccounts, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeAccounts, http.StatusOK, response, start)
}

func (c *AccountController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		response := commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeAccountByID, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.GetAccount(r.Context(), id)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeAccountByID, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeAccountByID, http.StatusOK, response, start)
}

func (c *AccountController) update(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		response := commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeAccountByID, http.StatusBadRequest, response, start)
		return
	}

	var req models.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeAccountByID, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.UpdateAccount(r.Context(), id, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeAccountByID, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeAccountByID, http.StatusOK, response, start)
}

func (c *AccountController) delete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		response := commons.ErrorResponse[struct{}]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeAccountByID, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.DeleteAccount(r.Context(), id)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeAccountByID, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeAccountByID, http.StatusOK, response, start)
}

func (c *AccountController) deposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		response := commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeAccountDeposit, http.StatusBadRequest, response, start)
		return
	}

	var req models.DepositFundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeAccountDeposit, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.DepositFunds(r.Context(), id, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeAccountDeposit, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeAccountDeposit, http.StatusOK, response, start)
}

func (c *AccountController) listByCustomer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, err := pathID(r, "id")
	if err != nil {
		response := commons.ErrorResponse[[]models.AccountResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeAccountsByOwner, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.GetAccountsByCustomer(r.Context(), customerID)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeAccountsByOwner, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeAccountsByOwner, http.StatusOK, response, start)
}
