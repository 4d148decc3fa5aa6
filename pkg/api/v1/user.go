// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"time"

	"github.com/marmotedu/component-base/pkg/auth"
	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/component-base/pkg/util/idutil"
	"gorm.io/gorm"
)

// User statuses.
const (
	UserStatusActive  = 1
	UserStatusDeleted = 0
)

// User represents a platform member. Name is the unique username.
// ExternalID links the record to the identity provider account that webhook
// events reference.
type User struct {
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Status int `json:"status" gorm:"column:status" validate:"omitempty"`

	Nickname string `json:"nickname" gorm:"column:nickname" validate:"required,min=1,max=30"`

	Password string `json:"password,omitempty" gorm:"column:password" validate:"required"`

	Email string `json:"email" gorm:"column:email" validate:"required,email,min=1,max=100"`

	Phone string `json:"phone" gorm:"column:phone" validate:"omitempty"`

	ExternalID string `json:"externalID,omitempty" gorm:"column:externalID"`

	IsAdmin int `json:"isAdmin,omitempty" gorm:"column:isAdmin" validate:"omitempty"`

	LoginedAt time.Time `json:"loginedAt,omitempty" gorm:"column:loginedAt"`
}

// UserList is the whole list of all users which have been stored in storage.
type UserList struct {
	metav1.ListMeta `json:",inline"`

	Items []*User `json:"items"`
}

// TableName maps to mysql table name.
func (u *User) TableName() string {
	return "user"
}

// Compare with the plain text password. Returns true if it's the same as the
// encrypted one (in the User struct).
func (u *User) Compare(pwd string) error {
	return auth.Compare(u.Password, pwd)
}

// BeforeCreate run before create database record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	var err error
	u.Password, err = auth.Encrypt(u.Password)
	if err != nil {
		return err
	}
	u.Status = UserStatusActive

	return nil
}

// AfterCreate run after create database record.
func (u *User) AfterCreate(tx *gorm.DB) error {
	u.InstanceID = idutil.GetInstanceID(u.ID, "user-")

	return tx.Save(u).Error
}
