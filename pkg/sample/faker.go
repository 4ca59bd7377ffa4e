package sample

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// Faker is a Lookup that produces realistic values with gofakeit.
// Each field gets its own generator seeded from (Seed, lowercased field),
// so a value depends only on the seed and the name, never on call order.
type Faker struct {
	Seed uint64
}

// NewFaker returns a Faker with the given seed.
func NewFaker(seed uint64) *Faker {
	return &Faker{Seed: seed}
}

// Value implements Lookup.
func (f *Faker) Value(field string) Value {
	fake := gofakeit.New(f.seedFor(field))

	switch Classify(field) {
	case ClassQuantity:
		return fake.Number(1, 9)
	case ClassPrice:
		return fmt.Sprintf("%.2f", fake.Price(5, 500))
	case ClassReference:
		return strings.ToUpper(fake.LetterN(3)) + fake.DigitN(5)
	case ClassLabel:
		return fake.ProductName()
	case ClassOrderID:
		return "#" + fake.DigitN(5)
	case ClassFooter:
		return fake.Phrase()
	case ClassEmail:
		return fake.Email()
	case ClassDate:
		return fake.Date().Format("2006-01-02")
	case ClassCurrency:
		return fake.CurrencyShort()
	case ClassText:
		return fake.ProductDescription()
	default:
		return fake.Word()
	}
}

func (f *Faker) seedFor(field string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(field)))
	return f.Seed ^ h.Sum64()
}
