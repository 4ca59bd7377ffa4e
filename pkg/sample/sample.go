// Package sample supplies synthetic values for template placeholders so a
// preview can be rendered without real data.
package sample

import "strings"

// Value is a primitive sample value: a string or an int.
type Value = any

// Lookup maps a field name (the last segment of a placeholder path) to a
// sample value. Implementations must be deterministic and total.
type Lookup interface {
	Value(field string) Value
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(field string) Value

// Value implements Lookup.
func (f LookupFunc) Value(field string) Value {
	return f(field)
}

// Class groups field names that share a kind of sample value.
type Class int

// Field classes recognized by Classify.
const (
	ClassUnknown Class = iota
	ClassQuantity
	ClassPrice
	ClassReference
	ClassLabel
	ClassOrderID
	ClassFooter
	ClassEmail
	ClassDate
	ClassCurrency
	ClassText
)

//nolint:gochecknoglobals // Read-only lookup table.
var fieldClasses = map[string]Class{
	"quantity":          ClassQuantity,
	"count":             ClassQuantity,
	"totalincludingtax": ClassPrice,
	"amount":            ClassPrice,
	"price":             ClassPrice,
	"total":             ClassPrice,
	"reference":         ClassReference,
	"id":                ClassReference,
	"sku":               ClassReference,
	"labelreference":    ClassLabel,
	"label":             ClassLabel,
	"name":              ClassLabel,
	"title":             ClassLabel,
	"orderid":           ClassOrderID,
	"order_id":          ClassOrderID,
	"footer":            ClassFooter,
	"email":             ClassEmail,
	"mail":              ClassEmail,
	"date":              ClassDate,
	"datetime":          ClassDate,
	"currency":          ClassCurrency,
	"code":              ClassCurrency,
	"description":       ClassText,
	"body":              ClassText,
	"text":              ClassText,
}

// Classify returns the class of a field name. Matching is exact and
// case-insensitive.
func Classify(field string) Class {
	return fieldClasses[strings.ToLower(field)]
}

// LastSegment returns the part of a dotted path after the final dot.
func LastSegment(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}
