package domain

import (
	"strings"
	"time"
)

// Client is a paying customer. A locked tier overrides volume-based pricing.
type Client struct {
	ID              int64     `json:"id"`
	ExternalID      string    `json:"clientID"`
	Name            string    `json:"name"`
	RegisteredAt    time.Time `json:"registeredAt"`
	TierLocked      *bool     `json:"tierLocked,omitempty"`
	TierLockedValue *string   `json:"tierLockedValue,omitempty"`
}

// IsTierLocked reports whether the client's tier is pinned.
func (c *Client) IsTierLocked() bool {
	return c != nil && c.TierLocked != nil && *c.TierLocked
}

// LockedTier returns the pinned tier. The second result is false when the
// stored value is absent or not a known tier.
func (c *Client) LockedTier() (Tier, bool) {
	if c == nil || c.TierLockedValue == nil {
		return "", false
	}
	return ParseTier(*c.TierLockedValue)
}

// LockedValue returns the raw locked tier value, or "" when none is stored.
func (c *Client) LockedValue() string {
	if c == nil || c.TierLockedValue == nil {
		return ""
	}
	return strings.TrimSpace(*c.TierLockedValue)
}
