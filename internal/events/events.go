// Package events defines the domain events exchanged between modules over
// the platform event bus.
package events

import (
	platformevents "tenantcore/platform/events"
	"tenantcore/platform/logger"
)

// Re-export the platform event bus types so modules only import this package.
type (
	Event       = platformevents.Event
	BaseEvent   = platformevents.BaseEvent
	Handler     = platformevents.Handler
	HandlerFunc = platformevents.HandlerFunc
	Bus         = platformevents.Bus
	InMemoryBus = platformevents.InMemoryBus
)

// NewBaseEvent stamps a base event with the current time.
func NewBaseEvent() BaseEvent {
	return platformevents.NewBaseEvent()
}

// NewInMemoryBus creates the process-local event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}

// TenantSignedUp is published after a signup transaction commits.
type TenantSignedUp struct {
	BaseEvent
	UserID         int64  `json:"userId"`
	OrganizationID int64  `json:"organizationId"`
	Email          string `json:"email"`
}

func (e TenantSignedUp) EventName() string { return "tenancy.tenant.signed_up" }

// MemberInvited is published after an invite commits, so the notification
// module can deliver the invitation email outside the transaction.
type MemberInvited struct {
	BaseEvent
	MemberID         int64  `json:"memberId"`
	OrganizationID   int64  `json:"organizationId"`
	UserID           int64  `json:"userId"`
	RoleID           int64  `json:"roleId"`
	Email            string `json:"email"`
	OrganizationName string `json:"organizationName"`
}

func (e MemberInvited) EventName() string { return "membership.member.invited" }
