package fare

import "github.com/Domenick1991/skybook/internal/domain"

const (
	EconomyPrice  = 200.0
	BusinessPrice = 500.0
	FirstPrice    = 1000.0
)

// PriceFor returns the fare for a cabin class. Unknown classes are charged
// the economy fare.
func PriceFor(class domain.CabinClass) float64 {
	switch class {
	case domain.CabinBusiness:
		return BusinessPrice
	case domain.CabinFirst:
		return FirstPrice
	default:
		return EconomyPrice
	}
}
