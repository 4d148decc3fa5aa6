// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package store

import (
	"context"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"

	v1 "github.com/faddlmatch/platform/pkg/api/v1"
)

// ProfileStore defines the profile storage interface.
type ProfileStore interface {
	Create(ctx context.Context, profile *v1.Profile, opts metav1.CreateOptions) error
	Update(ctx context.Context, profile *v1.Profile, opts metav1.UpdateOptions) error
	Delete(ctx context.Context, username string, opts metav1.DeleteOptions) error
	Get(ctx context.Context, username string, opts metav1.GetOptions) (*v1.Profile, error)
	List(ctx context.Context, opts metav1.ListOptions) (*v1.ProfileList, error)
	// ListCandidates returns approved profiles of the opposite gender,
	// excluding the given usernames.
	ListCandidates(ctx context.Context, gender string, exclude []string, limit int) (*v1.ProfileList, error)
}
