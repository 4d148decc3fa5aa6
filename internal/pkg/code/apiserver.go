// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package code

// fm-apiserver: user errors.
const (
	// ErrUserNotFound - 404: User not found.
	ErrUserNotFound int = iota + 110001

	// ErrUserAlreadyExist - 400: User already exist.
	ErrUserAlreadyExist
)

// fm-apiserver: profile errors.
const (
	// ErrProfileNotFound - 404: Profile not found.
	ErrProfileNotFound int = iota + 110101

	// ErrProfileAlreadyExist - 400: Profile already exist.
	ErrProfileAlreadyExist

	// ErrUnderage - 400: Profile holder must be at least 18 years old.
	ErrUnderage
)

// fm-apiserver: match errors.
const (
	// ErrMatchNotFound - 404: Match not found.
	ErrMatchNotFound int = iota + 110201

	// ErrMatchStateInvalid - 400: Match is not in a state that allows this operation.
	ErrMatchStateInvalid

	// ErrDailyLimitReached - 400: Daily match limit for the current plan reached.
	ErrDailyLimitReached
)

// fm-apiserver: message errors.
const (
	// ErrConversationNotFound - 404: Conversation not found.
	ErrConversationNotFound int = iota + 110301

	// ErrConversationClosed - 400: Conversation is closed.
	ErrConversationClosed

	// ErrSubscriptionRequired - 403: An active subscription is required for this operation.
	ErrSubscriptionRequired
)

// fm-apiserver: subscription errors.
const (
	// ErrSubscriptionNotFound - 404: Subscription not found.
	ErrSubscriptionNotFound int = iota + 110401

	// ErrPlanNotFound - 404: Plan not found.
	ErrPlanNotFound

	// ErrBillingProvider - 500: Payment provider request failed.
	ErrBillingProvider
)

// fm-apiserver: webhook errors.
const (
	// ErrSignatureMissing - 400: Webhook signature headers are missing.
	ErrSignatureMissing int = iota + 110501

	// ErrSignatureExpired - 400: Webhook timestamp is outside of the tolerance window.
	ErrSignatureExpired

	// ErrSignatureMismatch - 400: Webhook signature verification failed.
	ErrSignatureMismatch

	// ErrPayloadTooLarge - 400: Webhook payload exceeds the size limit.
	ErrPayloadTooLarge

	// ErrEventUnparsable - 400: Webhook event payload could not be parsed.
	ErrEventUnparsable

	// ErrEventDispatch - 500: Webhook event handler failed.
	ErrEventDispatch

	// ErrTooManyRequests - 429: Too many requests.
	ErrTooManyRequests

	// ErrEventNotFound - 404: Webhook event not found.
	ErrEventNotFound
)

func init() {
	register(ErrUserNotFound, 404, "User not found")
	register(ErrUserAlreadyExist, 400, "User already exist")

	register(ErrProfileNotFound, 404, "Profile not found")
	register(ErrProfileAlreadyExist, 400, "Profile already exist")
	register(ErrUnderage, 400, "Profile holder must be at least 18 years old")

	register(ErrMatchNotFound, 404, "Match not found")
	register(ErrMatchStateInvalid, 400, "Match is not in a state that allows this operation")
	register(ErrDailyLimitReached, 400, "Daily match limit for the current plan reached")

	register(ErrConversationNotFound, 404, "Conversation not found")
	register(ErrConversationClosed, 400, "Conversation is closed")
	register(ErrSubscriptionRequired, 403, "An active subscription is required for this operation")

	register(ErrSubscriptionNotFound, 404, "Subscription not found")
	register(ErrPlanNotFound, 404, "Plan not found")
	register(ErrBillingProvider, 500, "Payment provider request failed")

	register(ErrSignatureMissing, 400, "Webhook signature headers are missing")
	register(ErrSignatureExpired, 400, "Webhook timestamp is outside of the tolerance window")
	register(ErrSignatureMismatch, 400, "Webhook signature verification failed")
	register(ErrPayloadTooLarge, 400, "Webhook payload exceeds the size limit")
	register(ErrEventUnparsable, 400, "Webhook event payload could not be parsed")
	register(ErrEventDispatch, 500, "Webhook event handler failed")
	register(ErrTooManyRequests, 429, "Too many requests")
	register(ErrEventNotFound, 404, "Webhook event not found")
}
