// ABOUTME: Opportunity is the persisted admitted record keyed by its link
// ABOUTME: Workflow fields are owned by triage and never written by ingestion

package domain

import (
	"errors"
	"time"
)

// OpportunityStatus is the triage workflow state. Ingestion only ever writes
// StatusNew; all other transitions belong to the (external) triage workflow.
type OpportunityStatus string

const (
	StatusNew       OpportunityStatus = "NEW"
	StatusTriaged   OpportunityStatus = "TRIAGED"
	StatusQualified OpportunityStatus = "QUALIFIED"
	StatusSent      OpportunityStatus = "SENT"
	StatusWon       OpportunityStatus = "WON"
	StatusLost      OpportunityStatus = "LOST"
)

// Opportunity is an admitted candidate persisted for manual triage.
// Link is globally unique across all sources.
type Opportunity struct {
	// ID is the storage identifier
	ID string

	// Title is the record headline
	Title string

	// Link is the identity key, unique across the whole collection
	Link string

	// Published is the source publication time, nil when unknown
	Published *time.Time

	// Score is the classification score at admission time
	Score int

	// Tags is the duplicate-free tag set from classification
	Tags []string

	// Summary is the truncated free-text excerpt
	Summary string

	// Raw is the original payload kept for audit
	Raw string

	// Status is the workflow state, fixed to NEW at creation
	Status OpportunityStatus

	// Family is the coarse business family derived at classification time
	Family string

	// CreatedAt is when the opportunity was first persisted
	CreatedAt time.Time
}

// Validate checks the invariants an opportunity must satisfy before being
// handed to the store.
func (o *Opportunity) Validate() error {
	if o.Title == "" {
		return errors.New("opportunity title cannot be empty")
	}

	if o.Link == "" {
		return errors.New("opportunity link cannot be empty")
	}

	if o.Score < 0 || o.Score > 100 {
		return errors.New("opportunity score must be within [0,100]")
	}

	seen := make(map[string]struct{}, len(o.Tags))
	for _, t := range o.Tags {
		if _, dup := seen[t]; dup {
			return errors.New("opportunity tags must not contain duplicates")
		}
		seen[t] = struct{}{}
	}

	return nil
}
