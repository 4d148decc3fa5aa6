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

// Gender values accepted on a profile.
const (
	GenderFemale = "female"
	GenderMale   = "male"
)

// Moderation statuses. Moderation itself happens outside this service; the
// status is data the review backend writes through webhooks or operators set
// directly.
const (
	ModerationPending  = "pending"
	ModerationApproved = "approved"
	ModerationRejected = "rejected"
)

// Photo visibility levels.
const (
	PhotoVisibilityMatches  = "matches"
	PhotoVisibilityGuardian = "guardian"
	PhotoVisibilityHidden   = "hidden"
)

// Profile is the matrimonial profile of a user. Name is the owning username
// (one profile per user).
type Profile struct {
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Gender        string    `json:"gender" gorm:"column:gender" validate:"required,oneof=female male"`
	BirthDate     time.Time `json:"birthDate" gorm:"column:birthDate" validate:"required"`
	City          string    `json:"city" gorm:"column:city" validate:"required,min=1,max=60"`
	Country       string    `json:"country" gorm:"column:country" validate:"required,min=2,max=60"`
	Education     string    `json:"education" gorm:"column:education" validate:"omitempty,max=120"`
	Profession    string    `json:"profession" gorm:"column:profession" validate:"omitempty,max=120"`
	PracticeLevel string    `json:"practiceLevel" gorm:"column:practiceLevel" validate:"omitempty,max=60"`
	Bio           string    `json:"bio" gorm:"column:bio" validate:"omitempty,max=2000"`

	GuardianName     string `json:"guardianName" gorm:"column:guardianName" validate:"omitempty,max=60"`
	GuardianEmail    string `json:"guardianEmail" gorm:"column:guardianEmail" validate:"omitempty,email"`
	GuardianPhone    string `json:"guardianPhone" gorm:"column:guardianPhone" validate:"omitempty"`
	GuardianApproved bool   `json:"guardianApproved" gorm:"column:guardianApproved"`

	// GuardianLinkKey signs the time-boxed guardian access tokens of this
	// profile. Never serialized to clients.
	GuardianLinkKey string `json:"-" gorm:"column:guardianLinkKey"`

	PhotoVisibility  string `json:"photoVisibility" gorm:"column:photoVisibility" validate:"omitempty,oneof=matches guardian hidden"`
	ModerationStatus string `json:"moderationStatus" gorm:"column:moderationStatus" validate:"omitempty,oneof=pending approved rejected"`
}

// ProfileList is the whole list of all profiles which have been stored in
// storage.
type ProfileList struct {
	metav1.ListMeta `json:",inline"`

	Items []*Profile `json:"items"`
}

// TableName maps to mysql table name.
func (p *Profile) TableName() string {
	return "profile"
}

// Age returns the profile holder's age in whole years at the given time.
func (p *Profile) Age(at time.Time) int {
	years := at.Year() - p.BirthDate.Year()
	anniversary := p.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}

	return years
}

// AfterCreate run after create database record.
func (p *Profile) AfterCreate(tx *gorm.DB) error {
	p.InstanceID = idutil.GetInstanceID(p.ID, "profile-")

	return tx.Save(p).Error
}
