package models

import (
	"fmt"
	"time"
)

// Status is a store's polled state. Observations form a right-continuous
// step function: a status holds from its timestamp until superseded.
type Status int

const (
	StatusInactive Status = iota
	StatusActive
)

func (s Status) String() string {
	if s == StatusActive {
		return "active"
	}
	return "inactive"
}

func ParseStatus(s string) (Status, error) {
	switch s {
	case "active":
		return StatusActive, nil
	case "inactive":
		return StatusInactive, nil
	}
	return StatusInactive, fmt.Errorf("unknown status %q", s)
}

type Observation struct {
	StoreID   string    `json:"store_id"`
	Timestamp time.Time `json:"timestamp_utc"`
	Status    Status    `json:"status"`
}
