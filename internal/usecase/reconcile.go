package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/minhvn/solemart/internal/adapter/gateway"
	"github.com/minhvn/solemart/internal/domain/model"
	"github.com/minhvn/solemart/internal/domain/repository"
)

// ReconcileUseCase settles gateway return callbacks exactly once.
//
// The settlement row is claimed before any order work so reloads, back
// navigation and concurrent tabs all short-circuit to the stored result
// instead of re-creating the order.
type ReconcileUseCase struct {
	orders      repository.OrderRepository
	pending     repository.PendingOrderRepository
	settlements repository.SettlementRepository
	logger      *slog.Logger
	now         func() time.Time
}

// NewReconcileUseCase constructs ReconcileUseCase.
func NewReconcileUseCase(
	orders repository.OrderRepository,
	pending repository.PendingOrderRepository,
	settlements repository.SettlementRepository,
	logger *slog.Logger,
	now func() time.Time,
) *ReconcileUseCase {
	if now == nil {
		now = time.Now
	}
	return &ReconcileUseCase{orders: orders, pending: pending, settlements: settlements, logger: logger, now: now}
}

// Settle processes one gateway callback and returns its terminal settlement.
// Calling it again with the same transaction ref returns the stored result
// without further side effects.
func (u *ReconcileUseCase) Settle(ctx context.Context, cb model.GatewayCallback) (*model.Settlement, error) {
	settlement := &model.Settlement{
		TransactionRef: cb.TransactionRef,
		ResponseCode:   cb.ResponseCode,
		Message:        gateway.MessageForCode(cb.ResponseCode),
		GatewayTxnNo:   cb.TransactionNo,
		BankCode:       cb.BankCode,
		Amount:         float64(cb.AmountMinor) / 100,
		PayDate:        cb.PayDateRaw,
		CreatedAt:      u.now(),
	}
	if cb.ResponseCode == gateway.ResponseCodeSuccess {
		settlement.Outcome = model.SettlementSuccess
	} else {
		settlement.Outcome = model.SettlementDeclined
	}

	claimed, existing, err := u.settlements.Claim(ctx, settlement)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return existing, nil
	}

	if settlement.Outcome == model.SettlementDeclined {
		return settlement, nil
	}

	return u.finalize(ctx, cb, settlement)
}

func (u *ReconcileUseCase) finalize(ctx context.Context, cb model.GatewayCallback, settlement *model.Settlement) (*model.Settlement, error) {
	ref, err := gateway.ParseOrderRef(cb.OrderInfo)
	if err != nil {
		return u.reconcileFailed(ctx, settlement, err)
	}

	pend, err := u.pending.Get(ctx, ref)
	if err != nil {
		return u.reconcileFailed(ctx, settlement, err)
	}

	draft := pend.Draft
	draft.PaymentStatus = model.PaymentStatusPaid
	draft.TransactionRef = cb.TransactionRef
	draft.GatewayTxnNo = cb.TransactionNo
	draft.BankCode = cb.BankCode
	draft.UpdatedAt = u.now()

	order, err := u.orders.Create(ctx, &draft)
	if err != nil {
		return u.reconcileFailed(ctx, settlement, err)
	}

	if err := u.settlements.AttachOrder(ctx, settlement.TransactionRef, order.ID); err != nil {
		u.logger.Error("attach order to settlement failed",
			slog.String("transaction_ref", settlement.TransactionRef),
			slog.String("error", err.Error()))
	}
	if err := u.pending.Delete(ctx, ref); err != nil {
		u.logger.Error("delete pending order failed",
			slog.String("transaction_ref", ref),
			slog.String("error", err.Error()))
	}

	settlement.OrderID = &order.ID
	return settlement, nil
}

// reconcileFailed records a payment that succeeded at the gateway but could
// not be converted into an order. The pending order is retained for support.
func (u *ReconcileUseCase) reconcileFailed(ctx context.Context, settlement *model.Settlement, cause error) (*model.Settlement, error) {
	u.logger.Error("order finalization failed after successful payment",
		slog.String("transaction_ref", settlement.TransactionRef),
		slog.String("error", cause.Error()))

	if err := u.settlements.MarkReconcileFailed(ctx, settlement.TransactionRef); err != nil {
		u.logger.Error("mark settlement reconcile-failed failed",
			slog.String("transaction_ref", settlement.TransactionRef),
			slog.String("error", err.Error()))
	}
	settlement.Outcome = model.SettlementReconcileFailed
	return settlement, nil
}
