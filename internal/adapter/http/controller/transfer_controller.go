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

const routeTransfers = "/transfers"

type TransferController struct {
	service service_interfaces.TransferService
}

func NewTransferController(service service_interfaces.TransferService) *TransferController {
	return &TransferController{service: service}
}

func (c *TransferController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc(routeTransfers, c.transfer).Methods(http.MethodPost)
}

func (c *TransferController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransferResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeTransfers, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.PerformTransfer(r.Context(), requestPrincipal(r), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeTransfers, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeTransfers, http.StatusOK, response, start)
}
