package models

type ExtractedLocation struct {
	State   *string `json:"state,omitempty"`
	City    *string `json:"city,omitempty"`
	ZipCode *string `json:"zipCode,omitempty"`
}

// ExtractedInfo is what the free-text extractor found before defaults are
// substituted. Nil fields were neither matched nor inferred.
type ExtractedInfo struct {
	Age           *int              `json:"age,omitempty"`
	MaritalStatus *string           `json:"maritalStatus,omitempty"`
	Education     *string           `json:"education,omitempty"`
	Income        *float64          `json:"income,omitempty"`
	Location      ExtractedLocation `json:"location"`
	Confidence    float64           `json:"confidence"`
}
