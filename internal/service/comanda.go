package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yasminalves16/restaurante/internal/models"
	"github.com/yasminalves16/restaurante/internal/repository"

	"go.uber.org/zap"
)

// InvalidMesaPolicy decides what happens to a comanda order whose mesa is missing or not a positive integer.
type InvalidMesaPolicy string

const (
	MesaPolicyReject  InvalidMesaPolicy = "reject"
	MesaPolicyDegrade InvalidMesaPolicy = "degrade"
)

// comandaCustomer fills in the table identity when a comanda arrives without customer data.
func comandaCustomer(mesa int, in CustomerInfo) CustomerInfo {
	if strings.TrimSpace(in.Name) == "" && NormalizePhone(in.Phone) == "" {
		in.Name = strconv.Itoa(mesa)
		in.Phone = fmt.Sprintf("mesa %d", mesa)
	}
	return in
}

// resolveChannel applies the mesa rules to a request. It returns the effective order type and, for comandas,
// the parsed mesa.
func (s *orderService) resolveChannel(in *CreateOrderInput) (models.OrderType, int, error) {
	if in.OrderType != models.OrderTypeComanda {
		return in.OrderType, 0, nil
	}

	mesa, ok := ParseMesa(in.Mesa)
	if ok {
		return models.OrderTypeComanda, mesa, nil
	}

	if s.opts.InvalidMesa == MesaPolicyDegrade {
		s.log.Warn("comanda without a valid mesa, taking it as a local order", zap.String("mesa", in.Mesa))
		return models.OrderTypeLocal, 0, nil
	}
	return "", 0, invalid("mesa", ErrInvalidMesa)
}

// appendToTab writes new lines onto an open tab that the caller already holds locked. The tab total grows
// by the lines' sum, and so does the spend of the customer the tab belongs to.
func appendToTab(ctx context.Context, tx *repository.Repository, tab *models.Order, lines []models.OrderItem, sum int64) error {
	for i := range lines {
		lines[i].OrderID = tab.ID
	}
	if err := tx.OrderItems.BulkCreate(ctx, lines); err != nil {
		return err
	}
	if err := tx.Orders.AddToTotal(ctx, tab.ID, sum); err != nil {
		return err
	}
	if tab.CustomerID != nil {
		if err := tx.Customers.AddStats(ctx, *tab.CustomerID, 0, sum); err != nil {
			return err
		}
	}
	return nil
}

// openTabFor returns the open comanda for mesa under a row lock, or nil when the mesa has none.
func openTabFor(ctx context.Context, tx *repository.Repository, mesa int) (*models.Order, error) {
	return tx.Orders.FindOpenByMesaForUpdate(ctx, mesa)
}
