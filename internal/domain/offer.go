package domain

// FlightOffer is one priced option as returned by the flight-search provider.
// Nested collections are optional; a nil slice means the provider omitted it.
type FlightOffer struct {
	ID                     string            `json:"id"`
	Source                 string            `json:"source,omitempty"`
	OneWay                 bool              `json:"oneWay,omitempty"`
	LastTicketingDate      string            `json:"lastTicketingDate,omitempty"`
	NumberOfBookableSeats  int               `json:"numberOfBookableSeats,omitempty"`
	Price                  Price             `json:"price"`
	Itineraries            []Itinerary       `json:"itineraries,omitempty"`
	TravelerPricings       []TravelerPricing `json:"travelerPricings,omitempty"`
	ValidatingAirlineCodes []string          `json:"validatingAirlineCodes,omitempty"`
}

type Price struct {
	Currency   string `json:"currency,omitempty"`
	Total      string `json:"total"`
	Base       string `json:"base,omitempty"`
	GrandTotal string `json:"grandTotal,omitempty"`
}

type Itinerary struct {
	Duration string    `json:"duration,omitempty"`
	Segments []Segment `json:"segments,omitempty"`
}

type Segment struct {
	ID            string      `json:"id,omitempty"`
	Departure     FlightPoint `json:"departure"`
	Arrival       FlightPoint `json:"arrival"`
	CarrierCode   string      `json:"carrierCode"`
	Number        string      `json:"number,omitempty"`
	Aircraft      *Aircraft   `json:"aircraft,omitempty"`
	Duration      string      `json:"duration,omitempty"`
	NumberOfStops int         `json:"numberOfStops,omitempty"`
}

// FlightPoint.At is a provider-local timestamp without zone, e.g. 2024-01-01T10:00:00.
type FlightPoint struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type Aircraft struct {
	Code string `json:"code"`
}

type TravelerPricing struct {
	TravelerID           string        `json:"travelerId,omitempty"`
	FareOption           string        `json:"fareOption,omitempty"`
	TravelerType         string        `json:"travelerType,omitempty"`
	FareDetailsBySegment []FareDetails `json:"fareDetailsBySegment,omitempty"`
}

type FareDetails struct {
	SegmentID           string       `json:"segmentId,omitempty"`
	Cabin               string       `json:"cabin,omitempty"`
	FareBasis           string       `json:"fareBasis,omitempty"`
	Class               string       `json:"class,omitempty"`
	IncludedCheckedBags *CheckedBags `json:"includedCheckedBags,omitempty"`
}

// CheckedBags.Quantity is nil when the provider sends null or omits it.
type CheckedBags struct {
	Quantity   *int   `json:"quantity,omitempty"`
	Weight     int    `json:"weight,omitempty"`
	WeightUnit string `json:"weightUnit,omitempty"`
}

// EnrichedOffer is the UI-ready shape returned from flight search.
type EnrichedOffer struct {
	ID                string      `json:"id"`
	Price             Price       `json:"price"`
	Itineraries       []Itinerary `json:"itineraries"`
	AirlineCodes      []string    `json:"airlineCodes"`
	Layovers          []string    `json:"layovers"`
	BaggageAllowances []int       `json:"baggageAllowances"`
}

type FlightSearchParams struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	Children      int
	TravelClass   string
	NonStop       bool
	Currency      string
	Max           int
}
