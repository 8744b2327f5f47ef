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
	routeCustomers        = "/customers"
	routeCustomerByID     = "/customers/{id}"
	routeCustomerPin      = "/customers/{id}/pin"
	routeCustomerPinCheck = "/customers/{id}/pin/verify"
)

type CustomerController struct {
	service service_interfaces.CustomerService
}

func NewCustomerController(service service_interfaces.CustomerService) *CustomerController {
	return &CustomerController{service: service}
}

func (c *CustomerController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc(routeCustomers, c.create).Methods(http.MethodPost)
	router.HandleFunc(routeCustomers, c.list).Methods(http.MethodGet)
	router.HandleFunc(routeCustomerByID, c.get).Methods(http.MethodGet)
	router.HandleFunc(routeCustomerByID, c.update).Methods(http.MethodPut)
	router.HandleFunc(routeCustomerByID, c.delete).Methods(http.MethodDelete)
	router.HandleFunc(routeCustomerPin, c.setPin).Methods(http.MethodPut)
	router.HandleFunc(routeCustomerPinCheck, c.verifyPin).Methods(http.MethodPost)
}

func (c *CustomerController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.CustomerResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeCustomers, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.CreateCustomer(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeCustomers, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, routeCustomers, http.StatusCreated, response, start)
}

func (c *CustomerController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetAllCustomers(r.Context())
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeCustomers, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeCustomers, http.StatusOK, response, start)
}

func (c *CustomerController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		response := commons.ErrorResponse[models.CustomerResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeCustomerByID, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.GetCustomer(r.Context(), id)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeCustomerByID, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeCustomerByID, http.StatusOK, response, start)
}

func (c *CustomerController) update(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		response := commons.ErrorResponse[models.CustomerResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeCustomerByID, http.StatusBadRequest, response, start)
		return
	}

	var req models.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.CustomerResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeCustomerByID, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.UpdateCustomer(r.Context(), id, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeCustomerByID, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeCustomerByID, http.StatusOK, response, start)
}

func (c *CustomerController) delete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		response := commons.ErrorResponse[struct{}]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeCustomerByID, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.DeleteCustomer(r.Context(), id)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeCustomerByID, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeCustomerByID, http.StatusOK, response, start)
}

func (c *CustomerController) setPin(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		response := commons.ErrorResponse[struct{}]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeCustomerPin, http.StatusBadRequest, response, start)
		return
	}

	var req models.SetTransactionPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[struct{}]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeCustomerPin, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.SetTransactionPin(r.Context(), id, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeCustomerPin, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeCustomerPin, http.StatusOK, response, start)
}

func (c *CustomerController) verifyPin(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		response := commons.ErrorResponse[struct{}]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeCustomerPinCheck, http.StatusBadRequest, response, start)
		return
	}

	var req models.VerifyTransactionPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[struct{}]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeCustomerPinCheck, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.VerifyTransactionPin(r.Context(), id, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeCustomerPinCheck, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeCustomerPinCheck, http.StatusOK, response, start)
}
