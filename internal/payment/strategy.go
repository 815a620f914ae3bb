package payment

import (
	"context"
	"fmt"

	apperrors "github.com/harmon-corp/reseller-service/pkg/util"
)

// Method names a payment strategy selectable at checkout.
type Method string

const (
	MethodCreditCard    Method = "credit_card"
	MethodDigitalWallet Method = "digital_wallet"
	MethodBankTransfer  Method = "bank_transfer"
)

// Strategy executes a payment for the summed cart total. Implementations
// return a receipt message on success. A declined payment surfaces as a
// PAYMENT_DECLINED domain error.
type Strategy interface {
	Pay(ctx context.Context, amount float64) (string, error)
}

type creditCard struct{}

func (creditCard) Pay(ctx context.Context, amount float64) (string, error) {
	return fmt.Sprintf("payment of %.2f by credit card accepted", amount), nil
}

type digitalWallet struct{}

func (digitalWallet) Pay(ctx context.Context, amount float64) (string, error) {
	return fmt.Sprintf("payment of %.2f by digital wallet accepted", amount), nil
}

type bankTransfer struct{}

func (bankTransfer) Pay(ctx context.Context, amount float64) (string, error) {
	return fmt.Sprintf("payment of %.2f by bank transfer accepted", amount), nil
}

var strategies = map[Method]Strategy{
	MethodCreditCard:    creditCard{},
	MethodDigitalWallet: digitalWallet{},
	MethodBankTransfer:  bankTransfer{},
}

// ForMethod resolves the strategy chosen at checkout.
func ForMethod(method Method) (Strategy, error) {
	strategy, ok := strategies[method]
	if !ok {
		return nil, apperrors.NewValidationError("unknown payment method", map[string]any{"method": string(method)})
	}
	return strategy, nil
}
