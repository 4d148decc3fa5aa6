// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"time"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"

	v1 "github.com/faddlmatch/platform/pkg/api/v1"
)

// MatchStore defines the match storage interface.
type MatchStore interface {
	Create(ctx context.Context, match *v1.Match, opts metav1.CreateOptions) error
	Update(ctx context.Context, match *v1.Match, opts metav1.UpdateOptions) error
	Get(ctx context.Context, instanceID string, opts metav1.GetOptions) (*v1.Match, error)
	List(ctx context.Context, username string, opts metav1.ListOptions) (*v1.MatchList, error)
	// ListBatch returns matches generated for a user on the given batch date.
	ListBatch(ctx context.Context, username string, batchDate time.Time) (*v1.MatchList, error)
	// ListCounterparts returns every username that ever appeared opposite the
	// given user, regardless of match state.
	ListCounterparts(ctx context.Context, username string) ([]string, error)
	// DeleteExpired closes pending matches whose batch date is older than
	// before. It returns the number of matches closed.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
	// CloseForUser closes every open match the given user participates in.
	// It returns the number of matches closed.
	CloseForUser(ctx context.Context, username string) (int64, error)
}
