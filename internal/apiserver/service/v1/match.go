// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/jinzhu/now"
	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/errors"

	"github.com/faddlmatch/platform/internal/apiserver/store"
	"github.com/faddlmatch/platform/internal/pkg/code"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
	"github.com/faddlmatch/platform/pkg/log"
)

// Daily discover limits per tier. Users without an active subscription fall
// back to the basic limit.
const (
	DailyLimitBasic   = 5
	DailyLimitPremium = 20
)

// MatchSrv defines functions used to handle match request.
type MatchSrv interface {
	Discover(ctx context.Context, username string) (*v1.MatchList, error)
	Decide(ctx context.Context, username, matchID, decision string) (*v1.Match, error)
	Get(ctx context.Context, username, matchID string) (*v1.Match, error)
	List(ctx context.Context, username string, opts metav1.ListOptions) (*v1.MatchList, error)
}

type matchService struct {
	store        store.Factory
	entitlements EntitlementChecker
}

var _ MatchSrv = (*matchService)(nil)

func newMatches(srv *service) *matchService {
	return &matchService{store: srv.store, entitlements: srv.entitlements}
}

// Discover returns the daily match batch of the given user, generating it on
// first call of the day. Repeated calls within a day return the same batch.
func (m *matchService) Discover(ctx context.Context, username string) (*v1.MatchList, error) {
	profile, err := m.store.Profiles().Get(ctx, username, metav1.GetOptions{})
	if err != nil {
		return nil, err
	}

	batchDate := now.BeginningOfDay()

	existing, err := m.store.Matches().ListBatch(ctx, username, batchDate)
	if err != nil {
		return nil, err
	}
	if len(existing.Items) > 0 {
		return existing, nil
	}

	limit := DailyLimitBasic

	ent, err := m.entitlements.Get(ctx, username)
	if err != nil {
		log.L(ctx).Warnf("entitlement lookup for %s failed: %s", username, err.Error())
	} else if ent.Active && ent.Tier == v1.TierPremium {
		limit = DailyLimitPremium
	}

	exclude, err := m.store.Matches().ListCounterparts(ctx, username)
	if err != nil {
		return nil, err
	}
	exclude = append(exclude, username)

	gender := v1.GenderFemale
	if profile.Gender == v1.GenderFemale {
		gender = v1.GenderMale
	}

	candidates, err := m.store.Profiles().ListCandidates(ctx, gender, exclude, limit)
	if err != nil {
		return nil, err
	}

	batch := &v1.MatchList{}
	for _, candidate := range candidates.Items {
		match := &v1.Match{
			Requester: username,
			Candidate: candidate.Name,
			BatchDate: batchDate,
			Score:     pairScore(username, candidate.Name, batchDate.Format("2006-01-02")),
			Status:    v1.MatchStatusPending,
		}

		if err := m.store.Matches().Create(ctx, match, metav1.CreateOptions{}); err != nil {
			return nil, errors.WithCode(code.ErrDatabase, "%s", err.Error())
		}

		batch.Items = append(batch.Items, match)
	}
	batch.TotalCount = int64(len(batch.Items))

	log.L(ctx).Infof("generated %d matches for %s", len(batch.Items), username)

	return batch, nil
}

// Decide records an accept or decline on a match. A mutual match opens a
// conversation.
func (m *matchService) Decide(ctx context.Context, username, matchID, decision string) (*v1.Match, error) {
	match, err := m.store.Matches().Get(ctx, matchID, metav1.GetOptions{})
	if err != nil {
		return nil, err
	}

	if !match.Involves(username) {
		return nil, errors.WithCode(code.ErrPermissionDenied, "%s is not part of match %s", username, matchID)
	}

	if match.Status != v1.MatchStatusPending || match.DecisionOf(username) != v1.DecisionUndecided {
		return nil, errors.WithCode(code.ErrMatchStateInvalid, "match %s is %s", matchID, match.Status)
	}

	match.SetDecision(username, decision)

	if err := m.store.Matches().Update(ctx, match, metav1.UpdateOptions{}); err != nil {
		return nil, errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	if match.Status == v1.MatchStatusMutual {
		conversation := &v1.Conversation{
			MatchID:      match.InstanceID,
			ParticipantA: match.Requester,
			ParticipantB: match.Candidate,
			Status:       v1.ConversationStatusOpen,
		}

		if err := m.store.Messages().CreateConversation(ctx, conversation, metav1.CreateOptions{}); err != nil {
			return nil, errors.WithCode(code.ErrDatabase, "%s", err.Error())
		}

		log.L(ctx).Infof("match %s turned mutual, conversation %s opened", matchID, conversation.InstanceID)
	}

	return match, nil
}

func (m *matchService) Get(ctx context.Context, username, matchID string) (*v1.Match, error) {
	match, err := m.store.Matches().Get(ctx, matchID, metav1.GetOptions{})
	if err != nil {
		return nil, err
	}

	if !match.Involves(username) {
		return nil, errors.WithCode(code.ErrPermissionDenied, "%s is not part of match %s", username, matchID)
	}

	return match, nil
}

func (m *matchService) List(ctx context.Context, username string, opts metav1.ListOptions) (*v1.MatchList, error) {
	return m.store.Matches().List(ctx, username, opts)
}

// pairScore derives a stable score for a pair on a day. Scores only order a
// batch, they carry no meaning beyond that.
func pairScore(requester, candidate, day string) float64 {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s|%s|%s", requester, candidate, day)

	return float64(h.Sum32()%1000) / 1000
}
