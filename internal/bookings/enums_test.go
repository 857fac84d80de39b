package bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentMethodIsValid(t *testing.T) {
	valid := []PaymentMethod{MethodCash, MethodCreditCard, MethodDebitCard, MethodUPI, MethodNetBanking, MethodWallet}
	for _, m := range valid {
		assert.True(t, m.IsValid(), m.String())
	}

	assert.False(t, PaymentMethod("BITCOIN").IsValid())
	assert.False(t, PaymentMethod("cash").IsValid())
	assert.False(t, PaymentMethod("").IsValid())
}

func TestPaymentMethodSettlement(t *testing.T) {
	assert.False(t, MethodCash.SettlesImmediately())

	for _, m := range []PaymentMethod{MethodCreditCard, MethodDebitCard, MethodUPI, MethodNetBanking, MethodWallet} {
		assert.True(t, m.SettlesImmediately(), m.String())
	}
}
