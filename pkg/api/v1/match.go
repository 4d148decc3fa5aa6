// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"time"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/component-base/pkg/util/idutil"
	"gorm.io/gorm"
)

// Match statuses.
const (
	MatchStatusPending = "pending"
	MatchStatusMutual  = "mutual"
	MatchStatusClosed  = "closed"
)

// Match decisions of a single participant.
const (
	DecisionUndecided = ""
	DecisionAccepted  = "accepted"
	DecisionDeclined  = "declined"
)

// Match pairs two users for one daily batch. Requester is the user the batch
// was generated for, Candidate the suggested profile owner. The match turns
// mutual when both decisions are accepted, and closes when either declines.
type Match struct {
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Requester         string    `json:"requester" gorm:"column:requester" validate:"required"`
	Candidate         string    `json:"candidate" gorm:"column:candidate" validate:"required"`
	BatchDate         time.Time `json:"batchDate" gorm:"column:batchDate"`
	Score             float64   `json:"score" gorm:"column:score"`
	RequesterDecision string    `json:"requesterDecision" gorm:"column:requesterDecision"`
	CandidateDecision string    `json:"candidateDecision" gorm:"column:candidateDecision"`
	Status            string    `json:"status" gorm:"column:status"`
}

// MatchList is the whole list of all matches which have been stored in
// storage.
type MatchList struct {
	metav1.ListMeta `json:",inline"`

	Items []*Match `json:"items"`
}

// TableName maps to mysql table name.
func (m *Match) TableName() string {
	return "match_pair"
}

// Involves reports whether username is one of the two participants.
func (m *Match) Involves(username string) bool {
	return m.Requester == username || m.Candidate == username
}

// Other returns the participant opposite to username.
func (m *Match) Other(username string) string {
	if m.Requester == username {
		return m.Candidate
	}

	return m.Requester
}

// DecisionOf returns the stored decision of the given participant.
func (m *Match) DecisionOf(username string) string {
	if m.Requester == username {
		return m.RequesterDecision
	}

	return m.CandidateDecision
}

// SetDecision records the decision of the given participant and derives the
// match status: both accepted -> mutual, any declined -> closed.
func (m *Match) SetDecision(username, decision string) {
	if m.Requester == username {
		m.RequesterDecision = decision
	} else {
		m.CandidateDecision = decision
	}

	switch {
	case m.RequesterDecision == DecisionAccepted && m.CandidateDecision == DecisionAccepted:
		m.Status = MatchStatusMutual
	case m.RequesterDecision == DecisionDeclined || m.CandidateDecision == DecisionDeclined:
		m.Status = MatchStatusClosed
	default:
		m.Status = MatchStatusPending
	}
}

// AfterCreate run after create database record.
func (m *Match) AfterCreate(tx *gorm.DB) error {
	m.InstanceID = idutil.GetInstanceID(m.ID, "match-")

	return tx.Save(m).Error
}
