// Package constants collects string identifiers shared across layers.
package constants

const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// RefreshCookieName is the cookie carrying the refresh token.
const RefreshCookieName = "jwt"

// EventTypeEnquiryCreated tags enquiry events on the message bus.
const EventTypeEnquiryCreated = "enquiry.created"

// OwnerTopicPrefix prefixes the FCM topic an owner's devices subscribe to.
const OwnerTopicPrefix = "owner-"
