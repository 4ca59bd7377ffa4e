package sample

// Table is the default Lookup: a fixed value per field class.
type Table struct{}

// Value implements Lookup.
func (Table) Value(field string) Value {
	switch Classify(field) {
	case ClassQuantity:
		return 2
	case ClassPrice:
		return "99.00"
	case ClassReference:
		return "SKU123"
	case ClassLabel:
		return "Sample Product"
	case ClassOrderID:
		return "#12345"
	case ClassFooter:
		return "Thank you."
	case ClassEmail:
		return "user@example.com"
	case ClassDate:
		return "2025-01-15"
	case ClassCurrency:
		return "GBP"
	case ClassText:
		return "Sample text."
	default:
		return "Sample"
	}
}

// Default returns the fixed table lookup.
func Default() Lookup {
	return Table{}
}
