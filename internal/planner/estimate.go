package planner

import "math"

// EstimateCost derives a rough trip cost: the cheapest priced flight plus
// the first priced hotel's nightly rate times the number of nights. A price
// of zero or below counts as unpriced. Estimation is best-effort: any
// failure yields an absent estimate, never an aborted plan.
func EstimateCost(flights []FlightOption, hotels []HotelOption, nights int) (cost *float64) {
	defer func() {
		if r := recover(); r != nil {
			cost = nil
		}
	}()

	flightCost := 0.0
	priced := false
	for _, f := range flights {
		if f.Price <= 0 {
			continue
		}
		if !priced || f.Price < flightCost {
			flightCost = f.Price
			priced = true
		}
	}

	nightly := 0.0
	hotelPriced := false
	for _, h := range hotels {
		if h.PricePerNight > 0 {
			nightly = h.PricePerNight
			hotelPriced = true
			break
		}
	}

	if !priced && !hotelPriced {
		// Nothing carries a price: the estimate is absent, not zero.
		return nil
	}

	if nights < 0 {
		nights = 0
	}

	total := math.Round((flightCost+nightly*float64(nights))*100) / 100
	return &total
}
