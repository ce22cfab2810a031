package domain

type GeoCode struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PointOfInterest struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Rank     int      `json:"rank,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	GeoCode  GeoCode  `json:"geoCode"`
}

type POIParams struct {
	Latitude   float64
	Longitude  float64
	Radius     int
	Categories []string
}

type Address struct {
	CityName    string `json:"cityName,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

type Location struct {
	ID       string  `json:"id"`
	SubType  string  `json:"subType"`
	Name     string  `json:"name"`
	IATACode string  `json:"iataCode"`
	Address  Address `json:"address"`
}
