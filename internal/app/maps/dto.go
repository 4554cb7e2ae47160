package maps

import (
	"seraphmap/internal/app/mapio"
	"seraphmap/internal/app/ports"
)

type SaveRequest struct {
	Name            string
	Document        mapio.Document
	ExpectedVersion int64
}

type SaveResponse struct {
	Name    string `json:"name"`
	Version int64  `json:"version"`
}

type LoadRequest struct {
	Name string
}

type LoadResponse struct {
	Name     string         `json:"name"`
	Version  int64          `json:"version"`
	Document mapio.Document `json:"document"`
}

type ListResponse struct {
	Maps []ports.MapSummary `json:"maps"`
}

type RevisionsRequest struct {
	Name  string
	Limit int
}

type RevisionsResponse struct {
	Revisions []ports.MapRevision `json:"revisions"`
}
