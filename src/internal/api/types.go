package api

import (
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/chains"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/compare"
)

// DataResponse wraps successful responses with a "data" field.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// DiffRequest carries two listings to compare.
type DiffRequest struct {
	Before string `json:"before"`
	After  string `json:"after"`
	// CounterTokens overrides the configured number of ignored counter tokens.
	CounterTokens *int `json:"counter_tokens,omitempty" validate:"omitempty,gte=0,lte=64"`
	// FilterColumnHeader overrides the configured header filtering.
	FilterColumnHeader *bool `json:"filter_column_header,omitempty"`
}

// ParseRequest carries one listing to split into chains.
type ParseRequest struct {
	Listing            string `json:"listing"`
	FilterColumnHeader *bool  `json:"filter_column_header,omitempty"`
}

// ParseResponse lists the chains of a listing in order.
type ParseResponse struct {
	Chains []chains.NamedBlock `json:"chains"`
}

// SampleRequest asks the server to sample its own counter table.
type SampleRequest struct {
	Seconds int `json:"seconds" validate:"min=1,max=300"`
}

// SampleResponse is the report of a server-side sample.
type SampleResponse struct {
	Source    string          `json:"source"`
	ElapsedMs int64           `json:"elapsed_ms"`
	Report    *compare.Report `json:"report"`
}

// HealthResponse describes the server configuration.
type HealthResponse struct {
	Healthy bool   `json:"healthy"`
	Source  string `json:"source"`
	Table   string `json:"table"`
}
