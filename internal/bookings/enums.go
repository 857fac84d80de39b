package bookings

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// PaymentMethod is the declared payment instrument for a booking. Payments
// are recorded, not gateway-processed: CASH settles at the venue and stays
// PENDING, everything else is treated as settled at booking time.
type PaymentMethod string

const (
	MethodCash       PaymentMethod = "CASH"
	MethodCreditCard PaymentMethod = "CREDIT_CARD"
	MethodDebitCard  PaymentMethod = "DEBIT_CARD"
	MethodUPI        PaymentMethod = "UPI"
	MethodNetBanking PaymentMethod = "NET_BANKING"
	MethodWallet     PaymentMethod = "WALLET"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodCreditCard, MethodDebitCard, MethodUPI, MethodNetBanking, MethodWallet:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}

// SettlesImmediately reports whether the method is treated as paid at
// booking time.
func (m PaymentMethod) SettlesImmediately() bool {
	return m != MethodCash
}

// RegisterValidators wires the payment_method binding tag into gin's
// validator engine. Call once at startup.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
			return PaymentMethod(fl.Field().String()).IsValid()
		})
	}
}
