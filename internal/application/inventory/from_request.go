package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/puntoventa/lotes-api/internal/application/dto"
	"github.com/puntoventa/lotes-api/internal/domain"
	"github.com/puntoventa/lotes-api/internal/domain/money"
)

// RegisterEntradaFromRequest adapta el request HTTP al caso de uso RegisterEntrada.
// Normaliza montos ("$1,234.5" -> 1234.50) y parsea el vencimiento explícito.
func (uc *LotLedgerUseCase) RegisterEntradaFromRequest(ctx context.Context, companyID, userID string, in dto.RegistrarEntradaRequest) (*MovementResult, error) {
	expires, err := parseExpiryDate(in.ExpiryDate)
	if err != nil {
		return nil, err
	}
	input := EntradaInput{
		CompanyID:  companyID,
		UserID:     userID,
		ProductID:  in.ProductID,
		Quantity:   money.NormalizeString(in.Quantity),
		UnitCost:   money.NormalizeString(in.UnitCost),
		Reason:     in.Reason,
		ExpiresAt:  expires,
		Notes:      in.Notes,
		ReceiptRef: in.ReceiptRef,
		UpdateCost: in.UpdateCost,
	}
	return uc.RegisterEntrada(ctx, input)
}

// RegisterSalidaFromRequest adapta el request HTTP al caso de uso RegisterSalida.
func (uc *LotLedgerUseCase) RegisterSalidaFromRequest(ctx context.Context, companyID, userID string, in dto.RegistrarSalidaRequest) (*MovementResult, error) {
	input := SalidaInput{
		CompanyID:         companyID,
		UserID:            userID,
		ProductID:         in.ProductID,
		Quantity:          money.NormalizeString(in.Quantity),
		Reason:            in.Reason,
		Strategy:          in.Strategy,
		AffectsFinancials: in.AffectsFinancials,
		Notes:             in.Notes,
	}
	return uc.RegisterSalida(ctx, input)
}

// parseExpiryDate parsea "2006-01-02"; vacío devuelve nil (política del producto).
func parseExpiryDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &parsed, nil
}
