package model

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/iliyamo/tourmate/internal/recommend"
)

// ErrInvalidRecord is returned by Validate when a required field is missing.
var ErrInvalidRecord = errors.New("invalid client record")

// ClientRecord is one tourist's trip request as persisted under the
// tourmate_clients key. The JSON names match the stored layout.
//
// Fields:
//  ID               – caller-assigned identifier, unique within a namespace.
//  ClientName       – name of the tourist.
//  Destination      – where the trip goes.
//  Days             – trip duration in days.
//  Budget           – total budget in rupees.
//  RecommendedHotel – tier cached when the record was created (nullable).
type ClientRecord struct {
	ID               int64                          `json:"id"`
	ClientName       string                         `json:"clientName"`
	Destination      string                         `json:"destination"`
	Days             int                            `json:"days"`
	Budget           float64                        `json:"budget"`
	RecommendedHotel *recommend.HotelRecommendation `json:"recommendedHotel,omitempty"`
}

// Hotel returns the cached recommendation when present and otherwise
// computes it from the budget.
func (r ClientRecord) Hotel() recommend.HotelRecommendation {
	if r.RecommendedHotel != nil {
		return *r.RecommendedHotel
	}
	return recommend.Recommend(r.Budget)
}

// PerDay is the budget spread evenly over the trip, rounded half away from
// zero. A record without a positive duration yields 0.
func (r ClientRecord) PerDay() int64 {
	if r.Days <= 0 {
		return 0
	}
	v := math.Round(r.Budget / float64(r.Days))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int64(v)
}

// WithRecommendation returns a copy of r with the tier for its budget cached.
func (r ClientRecord) WithRecommendation() ClientRecord {
	h := recommend.Recommend(r.Budget)
	r.RecommendedHotel = &h
	return r
}

// Validate checks that the fields a form must supply are present.
func (r ClientRecord) Validate() error {
	switch {
	case strings.TrimSpace(r.ClientName) == "":
		return fmt.Errorf("%w: clientName required", ErrInvalidRecord)
	case strings.TrimSpace(r.Destination) == "":
		return fmt.Errorf("%w: destination required", ErrInvalidRecord)
	case r.Days <= 0:
		return fmt.Errorf("%w: days must be positive", ErrInvalidRecord)
	case r.Budget < 0 || math.IsNaN(r.Budget) || math.IsInf(r.Budget, 0):
		return fmt.Errorf("%w: budget must be a non-negative number", ErrInvalidRecord)
	}
	return nil
}
