package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/ttnguyen-dev/bankcore/internal/adapter/http/models"
	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/logger"
	"github.com/ttnguyen-dev/bankcore/internal/usecase/service_interfaces"
)

const (
	routeAccountTransactions = "/accounts/{id}/transactions"
	routeTransactions        = "/transactions"
	routeTransactionByID     = "/transactions/{id}"
	routeTransactionCount    = "/transactions/count"
)

type TransactionController struct {
	service service_interfaces.TransactionService
}

func NewTransactionController(service service_interfaces.TransactionService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc(routeAccountTransactions, c.listByAccount).Methods(http.MethodGet)
	// The literal count route must be registered ahead of the {id} pattern.
	router.HandleFunc(routeTransactionCount, c.countByStatus).Methods(http.MethodGet)
	router.HandleFunc(routeTransactionByID, c.get).Methods(http.MethodGet)
	router.HandleFunc(routeTransactions, c.search).Methods(http.MethodGet)
}

func (c *TransactionController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		response := commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeTransactionByID, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeTransactionByID, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeTransactionByID, http.StatusOK, response, start)
}

func (c *TransactionController) listByAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	accountID, err := pathID(r, "id")
	if err != nil {
		response := commons.ErrorResponse[[]models.TransactionResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeAccountTransactions, http.StatusBadRequest, response, start)
		return
	}

	var response commons.Response[[]models.TransactionResponse]
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, convErr := strconv.Atoi(raw)
		if convErr != nil || limit <= 0 {
			response = commons.ErrorResponse[[]models.TransactionResponse]("validation failed", "limit must be a positive integer")
			writeJSON(w, http.StatusBadRequest, response)
			logResponse(r, routeAccountTransactions, http.StatusBadRequest, response, start)
			return
		}
		response, err = c.service.GetRecentByAccount(r.Context(), accountID, limit)
	} else {
		response, err = c.service.GetByAccount(r.Context(), accountID)
	}
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeAccountTransactions, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeAccountTransactions, http.StatusOK, response, start)
}

func (c *TransactionController) countByStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.CountByStatus(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeTransactionCount, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeTransactionCount, http.StatusOK, response, start)
}

// search dispatches on whichever filter the query string carries: status,
// keyword, a start/end date window, or a min/max amount band.
func (c *TransactionController) search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	query := r.URL.Query()

	var (
		response commons.Response[[]models.TransactionResponse]
		err      error
	)
	switch {
	case query.Get("status") != "":
		response, err = c.service.GetByStatus(r.Context(), query.Get("status"))

	case query.Get("keyword") != "":
		response, err = c.service.SearchByDescription(r.Context(), query.Get("keyword"))

	case query.Get("start") != "" || query.Get("end") != "":
		from, parseErr := time.Parse(time.RFC3339, query.Get("start"))
		if parseErr != nil {
			response = commons.ErrorResponse[[]models.TransactionResponse]("validation failed", "start must be an RFC3339 timestamp")
			writeJSON(w, http.StatusBadRequest, response)
			logResponse(r, routeTransactions, http.StatusBadRequest, response, start)
			return
		}
		to, parseErr := time.Parse(time.RFC3339, query.Get("end"))
		if parseErr != nil {
			response = commons.ErrorResponse[[]models.TransactionResponse]("validation failed", "end must be an RFC3339 timestamp")
			writeJSON(w, http.StatusBadRequest, response)
			logResponse(r, routeTransactions, http.StatusBadRequest, response, start)
			return
		}
		response, err = c.service.GetByDateRange(r.Context(), from, to)

	case query.Get("minAmount") != "" || query.Get("maxAmount") != "":
		min, parseErr := decimal.NewFromString(query.Get("minAmount"))
		if parseErr != nil {
			response = commons.ErrorResponse[[]models.TransactionResponse]("validation failed", "minAmount must be a decimal number")
			writeJSON(w, http.StatusBadRequest, response)
			logResponse(r, routeTransactions, http.StatusBadRequest, response, start)
			return
		}
		max, parseErr := decimal.NewFromString(query.Get("maxAmount"))
		if parseErr != nil {
			response = commons.ErrorResponse[[]models.TransactionResponse]("validation failed", "maxAmount must be a decimal number")
			writeJSON(w, http.StatusBadRequest, response)
			logResponse(r, routeTransactions, http.StatusBadRequest, response, start)
			return
		}
		response, err = c.service.GetByAmountRange(r.Context(), min, max)

	default:
		response = commons.ErrorResponse[[]models.TransactionResponse]("validation failed", "provide one of: status, keyword, start/end, minAmount/maxAmount")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, routeTransactions, http.StatusBadRequest, response, start)
		return
	}
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, routeTransactions, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, routeTransactions, http.StatusOK, response, start)
}
