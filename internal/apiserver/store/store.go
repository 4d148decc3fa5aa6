// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package store

//go:generate mockgen -self_package=github.com/faddlmatch/platform/internal/apiserver/store -destination mock_store.go -package store github.com/faddlmatch/platform/internal/apiserver/store Factory,UserStore,ProfileStore,MatchStore,MessageStore,SubscriptionStore,EventStore

var client Factory

// Factory defines the faddlmatch platform storage interface.
type Factory interface {
	Users() UserStore
	Profiles() ProfileStore
	Matches() MatchStore
	Messages() MessageStore
	Subscriptions() SubscriptionStore
	Events() EventStore
	Close() error
}

// Client return the store client instance.
func Client() Factory {
	return client
}

// SetClient set the faddlmatch store client.
func SetClient(factory Factory) {
	client = factory
}
