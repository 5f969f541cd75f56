package dto

import (
	"time"

	domainlistings "stayhub/internal/domain/listings"
)

type ViewRecord struct {
	ListingID string    `json:"listing_id"`
	ViewedAt  time.Time `json:"viewed_at"`
}

type SearchRecord struct {
	Term       string    `json:"term"`
	SearchedAt time.Time `json:"searched_at"`
}

func MapViewRecords(records []domainlistings.ViewRecord) []ViewRecord {
	out := make([]ViewRecord, 0, len(records))
	for _, r := range records {
		out = append(out, ViewRecord{ListingID: string(r.ListingID), ViewedAt: r.ViewedAt})
	}
	return out
}

func MapSearchRecords(records []domainlistings.SearchRecord) []SearchRecord {
	out := make([]SearchRecord, 0, len(records))
	for _, r := range records {
		out = append(out, SearchRecord{Term: r.Term, SearchedAt: r.SearchedAt})
	}
	return out
}
