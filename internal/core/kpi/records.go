// Package kpi turns flat work order and incident records into period-aligned
// maintenance indicators. It performs no I/O and keeps no state between calls
package kpi

import "time"

// StateID identifies a work order state
type StateID int64

// Work order states as stored by the maintenance platform
const (
	StateOpen StateID = iota + 1
	StateInProgress
	StateClosed
	StateCancelled
	StateMaterialRequested
	StateMaterialQuoted
	StateMaterialOrdered
	StateMaterialInTransit
)

// Completed reports whether s counts toward the completed percentage
func (s StateID) Completed() bool { return s == StateClosed }

// Pending reports whether s counts toward the pending percentage
func (s StateID) Pending() bool { return s == StateOpen || s == StateInProgress }

// AwaitingMaterial reports whether s is one of the four material states
func (s StateID) AwaitingMaterial() bool {
	switch s {
	case StateMaterialRequested, StateMaterialQuoted, StateMaterialOrdered, StateMaterialInTransit:
		return true
	}
	return false
}

// OrderRecord is one work order as fetched by the query layer
type OrderRecord struct {
	OrderID       int64     `json:"order_id"`
	AssetID       int64     `json:"asset_id"`
	AssetName     string    `json:"asset_name,omitempty"`
	OrderTypeID   int64     `json:"order_type_id"`
	OrderTypeName string    `json:"order_type_name,omitempty"`
	StateID       StateID   `json:"state_id"`
	OpenedAt      time.Time `json:"opened_at"`
	Critical      bool      `json:"critical"`
}

// IncidentRecord is one failure incident tied to a work order.
// Incidents are periodized by the opening of their order, not by detection
type IncidentRecord struct {
	IncidentID    int64      `json:"incident_id"`
	OrderID       int64      `json:"order_id"`
	AssetID       int64      `json:"asset_id"`
	AssetName     string     `json:"asset_name,omitempty"`
	Critical      bool       `json:"critical"`
	DetectedAt    time.Time  `json:"detected_at"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	OrderOpenedAt time.Time  `json:"order_opened_at"`
}

// Resolved reports whether the incident has a resolution timestamp
func (r IncidentRecord) Resolved() bool { return r.ResolvedAt != nil }

// Downtime is resolution minus detection; zero for unresolved incidents
func (r IncidentRecord) Downtime() time.Duration {
	if r.ResolvedAt == nil {
		return 0
	}
	return r.ResolvedAt.Sub(r.DetectedAt)
}

// AssetRef names an asset in a report
type AssetRef struct {
	AssetID   int64  `json:"asset_id"`
	AssetName string `json:"asset_name,omitempty"`
	Critical  bool   `json:"critical"`
}
