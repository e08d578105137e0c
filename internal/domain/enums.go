package domain

import "strings"

// MarketplaceCodeMyDeal identifies the marketplace that needs template tracking
const MarketplaceCodeMyDeal = "mydeal"

// IsMyDeal reports whether a marketplace name or code designates MyDeal
func IsMyDeal(name, code string) bool {
	return strings.EqualFold(name, MarketplaceCodeMyDeal) ||
		strings.EqualFold(code, MarketplaceCodeMyDeal)
}

// ExportKind is the kind of a generated marketplace export
type ExportKind string

const (
	ExportKindPrice     ExportKind = "price"
	ExportKindInventory ExportKind = "inventory"
)

// IsValid checks if the export kind is known
func (k ExportKind) IsValid() bool {
	switch k {
	case ExportKindPrice, ExportKindInventory:
		return true
	default:
		return false
	}
}

// ConfigEventType is the type of an audit event
type ConfigEventType string

const (
	ConfigEventCreated ConfigEventType = "config_created"
	ConfigEventUpdated ConfigEventType = "config_updated"
)
