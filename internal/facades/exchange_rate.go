package facades

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-p2p-payments/internal/logger"
	"github.com/sbilibin2017/gw-p2p-payments/internal/models"
	pb "github.com/sbilibin2017/proto-exchange/exchange"
)

// ExchangeRatesGRPCFacade reads reference exchange rates from the exchanger over gRPC.
type ExchangeRatesGRPCFacade struct {
	client pb.ExchangeServiceClient
}

// NewExchangeRatesGRPCFacade creates a new facade with a gRPC client.
func NewExchangeRatesGRPCFacade(client pb.ExchangeServiceClient) *ExchangeRatesGRPCFacade {
	return &ExchangeRatesGRPCFacade{client: client}
}

// GetReferenceRates fetches all exchange rates, units per one base unit, and
// keeps the supported account currencies.
func (f *ExchangeRatesGRPCFacade) GetReferenceRates(ctx context.Context) (map[models.Currency]decimal.Decimal, error) {
	resp, err := f.client.GetExchangeRates(ctx, &pb.Empty{})
	if err != nil {
		logger.Log.Errorw("failed to fetch exchange rates via gRPC", "error", err)
		return nil, err
	}

	rates := make(map[models.Currency]decimal.Decimal, len(models.SupportedCurrencies))
	for code, rate := range resp.Rates {
		currency, err := models.ParseCurrency(code)
		if err != nil {
			continue
		}
		if rate <= 0 {
			return nil, fmt.Errorf("exchanger returned non-positive rate %v for %s", rate, code)
		}
		rates[currency] = decimal.NewFromFloat32(rate)
	}

	return rates, nil
}
