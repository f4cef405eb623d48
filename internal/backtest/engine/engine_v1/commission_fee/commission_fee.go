package commission_fee

// CommissionFee computes the commission for a trade of the given share
// quantity, in account currency.
type CommissionFee interface {
	Calculate(quantity float64) float64
}

type Broker string

const (
	BrokerZero              Broker = "zero_commission"
	BrokerFixed             Broker = "fixed_per_trade"
	BrokerInteractiveBroker Broker = "interactive_broker"
)

var AllBrokers = []any{
	BrokerZero,
	BrokerFixed,
	BrokerInteractiveBroker,
}

// GetCommissionFeeHandler returns the fee model for the configured broker.
// fixedAmount is only consulted by the fixed-per-trade model.
func GetCommissionFeeHandler(broker Broker, fixedAmount float64) CommissionFee {
	switch broker {
	case BrokerFixed:
		return NewFixedCommissionFee(fixedAmount)
	case BrokerInteractiveBroker:
		return NewInteractiveBrokerCommissionFee()
	case BrokerZero:
		return NewZeroCommissionFee()
	default:
		return NewZeroCommissionFee()
	}
}
