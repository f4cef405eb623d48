package commission_fee

// FixedCommissionFee charges a flat amount per trade, regardless of size.
// This is the commission model the reference scripts use.
type FixedCommissionFee struct {
	amount float64
}

// NewFixedCommissionFee creates a fee model charging amount per trade.
// Negative amounts are treated as zero.
func NewFixedCommissionFee(amount float64) CommissionFee {
	if amount < 0 {
		amount = 0
	}

	return &FixedCommissionFee{amount: amount}
}

// Calculate returns the flat per-trade amount for any quantity.
func (c *FixedCommissionFee) Calculate(quantity float64) float64 {
	return c.amount
}
