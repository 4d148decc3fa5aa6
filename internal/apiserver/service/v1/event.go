// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"context"
	"encoding/json"
	"time"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/component-base/pkg/util/idutil"
	"github.com/marmotedu/errors"

	"github.com/faddlmatch/platform/internal/apiserver/bill"
	"github.com/faddlmatch/platform/internal/apiserver/store"
	"github.com/faddlmatch/platform/internal/pkg/code"
	"github.com/faddlmatch/platform/internal/pkg/notification"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
	"github.com/faddlmatch/platform/pkg/log"
	"github.com/faddlmatch/platform/pkg/storage"
)

// EventSrv processes verified webhook deliveries. Process stores the event,
// dispatches it to its handler exactly once and records the outcome. A
// redelivered event is acknowledged without redispatch.
type EventSrv interface {
	Process(ctx context.Context, provider, eventID string, payload []byte) (*v1.WebhookEvent, error)
}

type eventService struct {
	store   store.Factory
	billing bill.Provider
}

var _ EventSrv = (*eventService)(nil)

func newEvents(srv *service) *eventService {
	return &eventService{store: srv.store, billing: srv.billing}
}

type eventEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func (e *eventService) Process(
	ctx context.Context,
	provider, eventID string,
	payload []byte,
) (*v1.WebhookEvent, error) {
	var envelope eventEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil || envelope.Type == "" {
		return nil, errors.WithCode(code.ErrEventUnparsable, "malformed event payload")
	}

	if existing, err := e.store.Events().Get(ctx, provider, eventID, metav1.GetOptions{}); err == nil {
		log.L(ctx).Infof("event %s/%s already seen (%s), skipping dispatch", provider, eventID, existing.Status)

		return existing, nil
	}

	event := &v1.WebhookEvent{
		ObjectMeta: metav1.ObjectMeta{Name: eventID},
		Provider:   provider,
		EventType:  envelope.Type,
		Payload:    string(payload),
	}

	if err := e.store.Events().Create(ctx, event, metav1.CreateOptions{}); err != nil {
		// A concurrent delivery won the insert race, treat as duplicate.
		if existing, getErr := e.store.Events().Get(ctx, provider, eventID, metav1.GetOptions{}); getErr == nil {
			return existing, nil
		}

		return nil, errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	handled, err := e.dispatch(ctx, provider, &envelope)
	switch {
	case err != nil:
		event.Status = v1.EventStatusFailed
		event.Detail = err.Error()
		log.L(ctx).Errorf("event %s/%s handler failed: %s", provider, eventID, err.Error())
	case !handled:
		event.Status = v1.EventStatusSkipped
		log.L(ctx).Infof("event %s/%s has unhandled type %s, recorded and acked", provider, eventID, envelope.Type)
	default:
		event.Status = v1.EventStatusProcessed
	}

	event.ProcessedAt = time.Now()
	if err := e.store.Events().Update(ctx, event, metav1.UpdateOptions{}); err != nil {
		return nil, errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	if event.Status == v1.EventStatusFailed {
		return event, errors.WithCode(code.ErrEventDispatch, "%s", event.Detail)
	}

	return event, nil
}

func (e *eventService) dispatch(ctx context.Context, provider string, envelope *eventEnvelope) (bool, error) {
	switch provider {
	case v1.ProviderIdentity:
		return e.dispatchIdentity(ctx, envelope)
	case v1.ProviderBilling:
		return e.dispatchBilling(ctx, envelope)
	default:
		return false, nil
	}
}

type identityAccount struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Phone    string `json:"phone"`
}

func (e *eventService) dispatchIdentity(ctx context.Context, envelope *eventEnvelope) (bool, error) {
	var account identityAccount
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &account); err != nil {
			return false, errors.Wrap(err, "decode identity event data")
		}
	}

	switch envelope.Type {
	case "user.created":
		return true, e.upsertUser(ctx, &account)
	case "user.updated":
		return true, e.updateUser(ctx, &account)
	case "user.deleted":
		return true, e.deleteUser(ctx, &account)
	default:
		return false, nil
	}
}

func (e *eventService) upsertUser(ctx context.Context, account *identityAccount) error {
	if account.ID == "" {
		return errors.New("identity event without account id")
	}

	if existing, err := e.store.Users().GetByExternalID(ctx, account.ID, metav1.GetOptions{}); err == nil {
		existing.Email = account.Email
		if account.Nickname != "" {
			existing.Nickname = account.Nickname
		}

		return e.store.Users().Update(ctx, existing, metav1.UpdateOptions{})
	}

	username := account.Username
	if username == "" {
		username = account.ID
	}

	user := &v1.User{
		ObjectMeta: metav1.ObjectMeta{Name: username},
		Nickname:   account.Nickname,
		Email:      account.Email,
		Phone:      account.Phone,
		ExternalID: account.ID,
		// The account authenticates at the identity provider, the local
		// password is never used for login.
		Password: idutil.NewSecretKey(),
	}

	return e.store.Users().Create(ctx, user, metav1.CreateOptions{})
}

func (e *eventService) updateUser(ctx context.Context, account *identityAccount) error {
	user, err := e.store.Users().GetByExternalID(ctx, account.ID, metav1.GetOptions{})
	if err != nil {
		if errors.IsCode(err, code.ErrUserNotFound) {
			return e.upsertUser(ctx, account)
		}

		return err
	}

	if account.Email != "" {
		user.Email = account.Email
	}
	if account.Nickname != "" {
		user.Nickname = account.Nickname
	}
	if account.Phone != "" {
		user.Phone = account.Phone
	}

	return e.store.Users().Update(ctx, user, metav1.UpdateOptions{})
}

func (e *eventService) deleteUser(ctx context.Context, account *identityAccount) error {
	user, err := e.store.Users().GetByExternalID(ctx, account.ID, metav1.GetOptions{})
	if err != nil {
		if errors.IsCode(err, code.ErrUserNotFound) {
			// Deleting an unknown account is a no-op, the provider may
			// redeliver deletions long after the local cascade ran.
			return nil
		}

		return err
	}

	opts := metav1.DeleteOptions{}
	if err := e.store.Users().Delete(ctx, user.Name, opts); err != nil {
		return err
	}

	if err := e.store.Profiles().Delete(ctx, user.Name, opts); err != nil && !errors.IsCode(err, code.ErrProfileNotFound) {
		log.L(ctx).Warnf("delete profile of %s failed: %s", user.Name, err.Error())
	}

	if _, err := e.store.Matches().CloseForUser(ctx, user.Name); err != nil {
		log.L(ctx).Warnf("close matches of %s failed: %s", user.Name, err.Error())
	}

	if err := e.store.Subscriptions().Delete(ctx, user.Name, opts); err != nil &&
		!errors.IsCode(err, code.ErrSubscriptionNotFound) {
		log.L(ctx).Warnf("delete subscription of %s failed: %s", user.Name, err.Error())
	}

	return nil
}

type billingObject struct {
	ID                string `json:"id"`
	Customer          string `json:"customer"`
	Subscription      string `json:"subscription"`
	ClientReferenceID string `json:"client_reference_id"`
	Status            string `json:"status"`
	CurrentPeriodEnd  int64  `json:"current_period_end"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
	Items             struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

type billingData struct {
	Object billingObject `json:"object"`
}

func (e *eventService) dispatchBilling(ctx context.Context, envelope *eventEnvelope) (bool, error) {
	var data billingData
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			return false, errors.Wrap(err, "decode billing event data")
		}
	}
	object := &data.Object

	var err error

	switch envelope.Type {
	case "checkout.session.completed":
		err = e.checkoutCompleted(ctx, object)
	case "customer.subscription.created", "customer.subscription.updated":
		err = e.subscriptionChanged(ctx, object)
	case "customer.subscription.deleted":
		err = e.subscriptionStatus(ctx, object.ID, v1.SubscriptionStatusCanceled)
	case "invoice.payment_succeeded":
		err = e.subscriptionStatus(ctx, object.Subscription, v1.SubscriptionStatusActive)
	case "invoice.payment_failed":
		err = e.subscriptionStatus(ctx, object.Subscription, v1.SubscriptionStatusPastDue)
	default:
		return false, nil
	}

	if err == nil {
		e.publishSubscriptionChange(ctx)
	}

	return true, err
}

// checkoutCompleted links the provider customer and subscription to the user
// that started the checkout.
func (e *eventService) checkoutCompleted(ctx context.Context, object *billingObject) error {
	username := object.ClientReferenceID
	if username == "" {
		return errors.New("checkout session without client reference")
	}

	subscription, err := e.store.Subscriptions().Get(ctx, username, metav1.GetOptions{})
	if err != nil {
		if !errors.IsCode(err, code.ErrSubscriptionNotFound) {
			return err
		}

		subscription = &v1.Subscription{
			ObjectMeta: metav1.ObjectMeta{Name: username},
			Tier:       v1.TierBasic,
			Status:     v1.SubscriptionStatusIncomplete,
		}
		subscription.ProviderCustomerID = object.Customer
		subscription.ProviderSubscriptionID = object.Subscription

		return e.store.Subscriptions().Create(ctx, subscription, metav1.CreateOptions{})
	}

	subscription.ProviderCustomerID = object.Customer
	subscription.ProviderSubscriptionID = object.Subscription

	return e.store.Subscriptions().Update(ctx, subscription, metav1.UpdateOptions{})
}

// subscriptionChanged syncs status, period end, cancellation flag and tier
// from the provider subscription object.
func (e *eventService) subscriptionChanged(ctx context.Context, object *billingObject) error {
	subscription, err := e.store.Subscriptions().GetByProviderSubscriptionID(ctx, object.ID, metav1.GetOptions{})
	if err != nil {
		if !errors.IsCode(err, code.ErrSubscriptionNotFound) {
			return err
		}

		subscription, err = e.store.Subscriptions().GetByProviderCustomerID(ctx, object.Customer, metav1.GetOptions{})
		if err != nil {
			return err
		}
		subscription.ProviderSubscriptionID = object.ID
	}

	if object.Status != "" {
		subscription.Status = object.Status
	}
	if object.CurrentPeriodEnd > 0 {
		subscription.CurrentPeriodEnd = time.Unix(object.CurrentPeriodEnd, 0)
	}
	subscription.CancelAtPeriodEnd = object.CancelAtPeriodEnd

	if len(object.Items.Data) > 0 {
		if tier := e.tierOfPrice(object.Items.Data[0].Price.ID); tier != "" {
			subscription.Tier = tier
		}
	}

	return e.store.Subscriptions().Update(ctx, subscription, metav1.UpdateOptions{})
}

func (e *eventService) subscriptionStatus(ctx context.Context, providerSubscriptionID, status string) error {
	if providerSubscriptionID == "" {
		return errors.New("billing event without subscription id")
	}

	subscription, err := e.store.Subscriptions().GetByProviderSubscriptionID(
		ctx,
		providerSubscriptionID,
		metav1.GetOptions{},
	)
	if err != nil {
		return err
	}

	subscription.Status = status

	return e.store.Subscriptions().Update(ctx, subscription, metav1.UpdateOptions{})
}

func (e *eventService) tierOfPrice(priceID string) string {
	if priceID == "" || e.billing == nil {
		return ""
	}

	for _, plan := range e.billing.Plans().Items {
		if plan.PriceID == priceID {
			return plan.Tier
		}
	}

	return ""
}

// publishSubscriptionChange tells entitlement cache holders to drop their
// cached answers.
func (e *eventService) publishSubscriptionChange(ctx context.Context) {
	redisStore := &storage.RedisCluster{}
	message, _ := json.Marshal(notification.Notification{Command: notification.NoticeSubscriptionChanged})

	if err := redisStore.Publish(notification.RedisPubSubChannel, string(message)); err != nil {
		log.L(ctx).Warnf("publish subscription change failed: %s", err.Error())
	}
}
