// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package profile handles requests for the matrimonial profile resource. All
// handlers operate on the profile of the authenticated user.
package profile

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marmotedu/component-base/pkg/core"
	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/errors"

	srvv1 "github.com/faddlmatch/platform/internal/apiserver/service/v1"
	"github.com/faddlmatch/platform/internal/pkg/code"
	"github.com/faddlmatch/platform/internal/pkg/middleware"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
	"github.com/faddlmatch/platform/pkg/log"
)

// ProfileController handles requests for the profile resource.
type ProfileController struct {
	srv srvv1.Service
}

// NewProfileController creates a profile handler.
func NewProfileController(srv srvv1.Service) *ProfileController {
	return &ProfileController{srv: srv}
}

// UpdateRequest carries a partial profile update. Only provided fields
// change.
type UpdateRequest struct {
	City          *string    `json:"city"          binding:"omitempty,min=1,max=60"`
	Country       *string    `json:"country"       binding:"omitempty,min=2,max=60"`
	Education     *string    `json:"education"     binding:"omitempty,max=120"`
	Profession    *string    `json:"profession"    binding:"omitempty,max=120"`
	PracticeLevel *string    `json:"practiceLevel" binding:"omitempty,max=60"`
	Bio           *string    `json:"bio"           binding:"omitempty,max=2000"`
	BirthDate     *time.Time `json:"birthDate"     binding:"omitempty"`

	GuardianName  *string `json:"guardianName"  binding:"omitempty,max=60"`
	GuardianEmail *string `json:"guardianEmail" binding:"omitempty,email"`
	GuardianPhone *string `json:"guardianPhone" binding:"omitempty"`

	PhotoVisibility *string `json:"photoVisibility" binding:"omitempty,oneof=matches guardian hidden"`
}

// Create registers the matrimonial profile of the authenticated user.
func (p *ProfileController) Create(c *gin.Context) {
	log.L(c).Info("profile create function called.")

	var r v1.Profile
	if err := c.ShouldBindJSON(&r); err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrBind, "%s", err.Error()), nil)

		return
	}

	r.Name = c.GetString(middleware.UsernameKey)

	if err := p.srv.Profiles().Create(c, &r, metav1.CreateOptions{}); err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	core.WriteResponse(c, nil, r)
}

// Get returns the profile of the authenticated user.
func (p *ProfileController) Get(c *gin.Context) {
	log.L(c).Info("profile get function called.")

	profile, err := p.srv.Profiles().Get(c, c.GetString(middleware.UsernameKey), metav1.GetOptions{})
	if err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	core.WriteResponse(c, nil, profile)
}

// Update applies a partial update to the profile of the authenticated user.
func (p *ProfileController) Update(c *gin.Context) {
	log.L(c).Info("profile update function called.")

	var r UpdateRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrBind, "%s", err.Error()), nil)

		return
	}

	profile, err := p.srv.Profiles().Get(c, c.GetString(middleware.UsernameKey), metav1.GetOptions{})
	if err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	applyUpdate(profile, &r)

	if err := p.srv.Profiles().Update(c, profile, metav1.UpdateOptions{}); err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	core.WriteResponse(c, nil, profile)
}

// Delete removes the profile of the authenticated user.
func (p *ProfileController) Delete(c *gin.Context) {
	log.L(c).Info("profile delete function called.")

	if err := p.srv.Profiles().Delete(c, c.GetString(middleware.UsernameKey), metav1.DeleteOptions{}); err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	core.WriteResponse(c, nil, nil)
}

//nolint:gocognit // field by field merge.
func applyUpdate(profile *v1.Profile, r *UpdateRequest) {
	if r.City != nil {
		profile.City = *r.City
	}
	if r.Country != nil {
		profile.Country = *r.Country
	}
	if r.Education != nil {
		profile.Education = *r.Education
	}
	if r.Profession != nil {
		profile.Profession = *r.Profession
	}
	if r.PracticeLevel != nil {
		profile.PracticeLevel = *r.PracticeLevel
	}
	if r.Bio != nil {
		profile.Bio = *r.Bio
	}
	if r.BirthDate != nil {
		profile.BirthDate = *r.BirthDate
	}
	if r.GuardianName != nil {
		profile.GuardianName = *r.GuardianName
	}
	if r.GuardianEmail != nil {
		profile.GuardianEmail = *r.GuardianEmail
	}
	if r.GuardianPhone != nil {
		profile.GuardianPhone = *r.GuardianPhone
	}
	if r.PhotoVisibility != nil {
		profile.PhotoVisibility = *r.PhotoVisibility
	}
}
