// Package skeleton defines the requirements skeleton: the structurally
// schedule-like but identity-free input produced by the chat collaborator
// or a template, consumed by the date-propagation scheduler. Entries
// reference each other by human-chosen codes; durable identifiers do
// not exist at this stage.
package skeleton

import (
	"encoding/json"
	"fmt"
	"os"
)

// Skeleton is the top-level JSON structure for schedule generation.
type Skeleton struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	WBS         []WBSEntry      `json:"wbs"`
	Activities  []ActivityEntry `json:"activities"`
}

// WBSEntry defines one work-breakdown node in the skeleton.
// Entries must be listed parent-before-child for the parent code to
// resolve; the scheduler attaches out-of-order entries to the root.
type WBSEntry struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Level      int     `json:"level"`
	ParentCode *string `json:"parent_code,omitempty"`
}

// ActivityEntry defines one activity in the skeleton.
type ActivityEntry struct {
	Code         string             `json:"code"`
	WBSCode      *string            `json:"wbs_code,omitempty"`
	Name         string             `json:"name"`
	DurationDays int                `json:"duration_days"`
	Kind         string             `json:"kind,omitempty"`
	Predecessors []PredecessorEntry `json:"predecessors,omitempty"`
}

// PredecessorEntry names a dependency by activity code.
type PredecessorEntry struct {
	Code    string `json:"code"`
	Type    string `json:"type,omitempty"`
	LagDays int    `json:"lag_days,omitempty"`
}

// Load reads and parses a skeleton JSON file.
func Load(path string) (*Skeleton, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sk Skeleton
	if err := json.Unmarshal(data, &sk); err != nil {
		return nil, fmt.Errorf("parsing skeleton file: %w", err)
	}
	return &sk, nil
}
