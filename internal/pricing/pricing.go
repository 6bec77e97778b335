// Package pricing is the checkout arithmetic: pure functions, no state.
package pricing

// Delivery options offered at payment time, with their flat fees in
// rupiah.
const (
	DeliveryCepat       = "Cepat"
	DeliverySangatCepat = "Sangat Cepat"
	DeliveryFlash       = "Flash"
)

// Fee returns the delivery fee for an option. Unknown options fall back
// to the standard (free) tier.
func Fee(option string) float64 {
	switch option {
	case DeliverySangatCepat:
		return 10000
	case DeliveryFlash:
		return 30000
	default:
		return 0
	}
}

// Total is price times quantity plus the delivery fee.
func Total(price float64, qty int, option string) float64 {
	return price*float64(qty) + Fee(option)
}
