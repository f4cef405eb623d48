package types

import "time"

type MarkShape string

const (
	MarkShapeCircle   MarkShape = "circle"
	MarkShapeTriangle MarkShape = "triangle"
)

type MarkColor string

const (
	MarkColorRed   MarkColor = "red"
	MarkColorGreen MarkColor = "green"
)

// Mark is a chart annotation for a signal bar. The reporting layer renders
// marks on top of the price series; the engine only records them.
type Mark struct {
	BarIndex int       `yaml:"bar_index" json:"bar_index" csv:"bar_index"`
	Time     time.Time `yaml:"time" json:"time" csv:"time"`
	Price    float64   `yaml:"price" json:"price" csv:"price"`
	Color    MarkColor `yaml:"color" json:"color" csv:"color"`
	Shape    MarkShape `yaml:"shape" json:"shape" csv:"shape"`
	Title    string    `yaml:"title" json:"title" csv:"title"`
}

// NewBuyMark creates the standard annotation for a buy-signal bar.
func NewBuyMark(barIndex int, t time.Time, price float64) Mark {
	return Mark{
		BarIndex: barIndex,
		Time:     t,
		Price:    price,
		Color:    MarkColorGreen,
		Shape:    MarkShapeTriangle,
		Title:    "BUY",
	}
}

// NewSellMark creates the standard annotation for a sell-signal bar.
func NewSellMark(barIndex int, t time.Time, price float64) Mark {
	return Mark{
		BarIndex: barIndex,
		Time:     t,
		Price:    price,
		Color:    MarkColorRed,
		Shape:    MarkShapeCircle,
		Title:    "SELL",
	}
}
