package utils

import (
	"fmt"
	"math/rand"
)

// PaymentRefPrefix is the fixed prefix on every payment reference
// quoted to bookers.
const PaymentRefPrefix = "LRB"

// NewPaymentReference returns a payment reference of the form
// "LRB" followed by four random digits (1000-9999).  The reference is
// generated once per booking session and reused for the booking ID.
func NewPaymentReference(rng *rand.Rand) string {
	return fmt.Sprintf("%s%d", PaymentRefPrefix, 1000+rng.Intn(9000))
}
