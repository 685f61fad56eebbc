package enums

// StockStatus classifies a product's available stock for alerting.
type StockStatus string

const (
	StockStatusCritical StockStatus = "critical"
	StockStatusLow      StockStatus = "low"
	StockStatusNormal   StockStatus = "normal"
)

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}
