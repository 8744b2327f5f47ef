package service_interfaces

import (
	"context"

	"github.com/ttnguyen-dev/bankcore/internal/adapter/http/models"
	"github.com/ttnguyen-dev/bankcore/internal/commons"
)

type TransferService interface {
	PerformTransfer(ctx context.Context, principal string, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
}
