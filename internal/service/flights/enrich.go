package flights

import (
	"fmt"
	"time"

	"github.com/Domenick1991/travelplanner/internal/domain"
)

const localTimeLayout = "2006-01-02T15:04:05"

// unknownLayover stands in for a gap whose timestamps could not be parsed,
// so the layover list still has one entry per adjacent segment pair.
const unknownLayover = "unknown"

// Enrich deduplicates raw provider offers by id and precomputes the fields the
// frontend displays. A repeated id keeps the position of its first occurrence
// and the value of its last. Missing nested data yields empty derived lists.
func Enrich(offers []domain.FlightOffer) []domain.EnrichedOffer {
	unique := dedupByID(offers)

	enriched := make([]domain.EnrichedOffer, 0, len(unique))
	for _, offer := range unique {
		enriched = append(enriched, enrichOffer(offer))
	}
	return enriched
}

func dedupByID(offers []domain.FlightOffer) []domain.FlightOffer {
	index := make(map[string]int, len(offers))
	unique := make([]domain.FlightOffer, 0, len(offers))
	for _, offer := range offers {
		if i, ok := index[offer.ID]; ok {
			unique[i] = offer
			continue
		}
		index[offer.ID] = len(unique)
		unique = append(unique, offer)
	}
	return unique
}

func enrichOffer(offer domain.FlightOffer) domain.EnrichedOffer {
	itineraries := offer.Itineraries
	if itineraries == nil {
		itineraries = []domain.Itinerary{}
	}

	return domain.EnrichedOffer{
		ID:                offer.ID,
		Price:             offer.Price,
		Itineraries:       itineraries,
		AirlineCodes:      airlineCodes(offer.Itineraries),
		Layovers:          layovers(offer.Itineraries),
		BaggageAllowances: baggageAllowances(offer.TravelerPricings),
	}
}

func airlineCodes(itineraries []domain.Itinerary) []string {
	codes := make([]string, 0)
	seen := make(map[string]struct{})
	for _, it := range itineraries {
		for _, seg := range it.Segments {
			if _, ok := seen[seg.CarrierCode]; ok {
				continue
			}
			seen[seg.CarrierCode] = struct{}{}
			codes = append(codes, seg.CarrierCode)
		}
	}
	return codes
}

func layovers(itineraries []domain.Itinerary) []string {
	out := make([]string, 0)
	for _, it := range itineraries {
		for i := 1; i < len(it.Segments); i++ {
			out = append(out, layover(it.Segments[i-1].Arrival.At, it.Segments[i].Departure.At))
		}
	}
	return out
}

// layover formats the gap between an arrival and the next departure. Negative
// gaps come from out-of-order upstream data and are passed through unchanged.
func layover(arrivedAt, departsAt string) string {
	arrival, err := parseAt(arrivedAt)
	if err != nil {
		return unknownLayover
	}
	departure, err := parseAt(departsAt)
	if err != nil {
		return unknownLayover
	}

	gap := departure.Sub(arrival)
	minutes := int64(gap / time.Minute)
	if gap%time.Minute < 0 {
		minutes--
	}
	// Hours are floored; the minute remainder keeps the sign of the gap.
	hours := minutes / 60
	if minutes < 0 && minutes%60 != 0 {
		hours--
	}
	return fmt.Sprintf("%dh %dm", hours, minutes%60)
}

// parseAt accepts the provider's zone-less local timestamps and full RFC 3339.
func parseAt(value string) (time.Time, error) {
	if t, err := time.Parse(localTimeLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func baggageAllowances(pricings []domain.TravelerPricing) []int {
	out := make([]int, 0)
	for _, tp := range pricings {
		for _, fare := range tp.FareDetailsBySegment {
			if fare.IncludedCheckedBags == nil || fare.IncludedCheckedBags.Quantity == nil {
				continue
			}
			out = append(out, *fare.IncludedCheckedBags.Quantity)
		}
	}
	return out
}
