package flights

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Domenick1991/travelplanner/internal/domain"
)

const (
	dateLayout   = "2006-01-02"
	defaultMax   = 50
	maxResults   = 250
	maxTravelers = 9
)

var iataCode = regexp.MustCompile(`^[A-Z]{3}$`)

var travelClasses = map[string]struct{}{
	"ECONOMY":         {},
	"PREMIUM_ECONOMY": {},
	"BUSINESS":        {},
	"FIRST":           {},
}

// NormalizeParams upper-cases codes, applies defaults and validates the search.
func NormalizeParams(p domain.FlightSearchParams) (domain.FlightSearchParams, error) {
	p.Origin = strings.ToUpper(strings.TrimSpace(p.Origin))
	p.Destination = strings.ToUpper(strings.TrimSpace(p.Destination))
	p.TravelClass = strings.ToUpper(strings.TrimSpace(p.TravelClass))
	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
	p.DepartureDate = strings.TrimSpace(p.DepartureDate)
	p.ReturnDate = strings.TrimSpace(p.ReturnDate)

	if p.Adults == 0 {
		p.Adults = 1
	}
	if p.Max == 0 {
		p.Max = defaultMax
	}

	if !iataCode.MatchString(p.Origin) {
		return p, fmt.Errorf("%w: origin must be a 3-letter IATA code", domain.ErrValidation)
	}
	if !iataCode.MatchString(p.Destination) {
		return p, fmt.Errorf("%w: destination must be a 3-letter IATA code", domain.ErrValidation)
	}
	if p.Origin == p.Destination {
		return p, fmt.Errorf("%w: origin and destination must differ", domain.ErrValidation)
	}

	departure, err := time.Parse(dateLayout, p.DepartureDate)
	if err != nil {
		return p, fmt.Errorf("%w: departureDate must be YYYY-MM-DD", domain.ErrValidation)
	}
	if p.ReturnDate != "" {
		ret, err := time.Parse(dateLayout, p.ReturnDate)
		if err != nil {
			return p, fmt.Errorf("%w: returnDate must be YYYY-MM-DD", domain.ErrValidation)
		}
		if ret.Before(departure) {
			return p, fmt.Errorf("%w: returnDate is before departureDate", domain.ErrValidation)
		}
	}

	if p.Adults < 1 || p.Adults > maxTravelers {
		return p, fmt.Errorf("%w: adults must be between 1 and %d", domain.ErrValidation, maxTravelers)
	}
	if p.Children < 0 || p.Adults+p.Children > maxTravelers {
		return p, fmt.Errorf("%w: at most %d travelers per search", domain.ErrValidation, maxTravelers)
	}
	if p.TravelClass != "" {
		if _, ok := travelClasses[p.TravelClass]; !ok {
			return p, fmt.Errorf("%w: unknown travelClass %q", domain.ErrValidation, p.TravelClass)
		}
	}
	if p.Currency != "" && len(p.Currency) != 3 {
		return p, fmt.Errorf("%w: currency must be a 3-letter code", domain.ErrValidation)
	}
	if p.Max < 1 || p.Max > maxResults {
		return p, fmt.Errorf("%w: max must be between 1 and %d", domain.ErrValidation, maxResults)
	}
	return p, nil
}

// CacheKey expects normalized params.
func CacheKey(p domain.FlightSearchParams) string {
	return fmt.Sprintf("%s-%s:%s:%s:a%d:c%d:%s:%t:%s:%d",
		p.Origin, p.Destination, p.DepartureDate, p.ReturnDate,
		p.Adults, p.Children, p.TravelClass, p.NonStop, p.Currency, p.Max)
}
