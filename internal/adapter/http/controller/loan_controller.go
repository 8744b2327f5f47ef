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
	routeLoans           = "/loans"
	routeLoanByID        = "/loans/{id}"
	routeLoanStatus      = "/loans/{id}/status"
	routeLoansByCustomer = "/customers/{id}/loans"
)

type LoanController struct {
	service service_interfaces.LoanService
}

func NewLoanController(service service_interfaces.LoanService) *LoanController {
	return &LoanController{service: service}
}

func (c *LoanController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc(routeLoans, c.apply).Methods(http.MethodPost)
	router.HandleFunc(routeLoanByID, c.get).Methods(http.MethodGet)
	router.HandleFunc(routeLoanStatus, c.updateStatus).Methods(http.MethodPut)
	router.HandleFunc(routeLoansByCustomer, c.listByCustomer).Methods(http.MethodGet)
}

func (c *LoanController) apply(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.LoanApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.LoanResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeLoans, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.ApplyForLoan(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeLoans, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, routeLoans, http.StatusCreated, response, start)
}

func (c *LoanController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		response := commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeLoanByID, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.GetLoan(r.Context(), id)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeLoanByID, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeLoanByID, http.StatusOK, response, start)
}

func (c *LoanController) updateStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		response := commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeLoanStatus, http.StatusBadRequest, response, start)
		return
	}

	var req models.UpdateLoanStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.LoanResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeLoanStatus, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.UpdateLoanStatus(r.Context(), requestPrincipal(r), id, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeLoanStatus, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeLoanStatus, http.StatusOK, response, start)
}

func (c *LoanController) listByCustomer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, err := pathID(r, "id")
	if err != nil {
		response := commons.ErrorResponse[[]models.LoanResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeLoansByCustomer, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.GetLoansByCustomer(r.Context(), customerID)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeLoansByCustomer, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeLoansByCustomer, http.StatusOK, response, start)
}
