// Package capability models the admin/child capability split from spec
// §3: an admin cap's owner is its own identity, a child cap's owner is
// the admin's identity — the funding bucket they share. Capabilities are
// opaque references; the only thing that matters to the rest of the
// engine is the stable Owner() string.
//
// Grounded on internal/net/messages.go's uuid.New() order-identity
// minting in the teacher, repointed at capability identity instead of
// order identity.
package capability

import (
	"errors"

	"github.com/google/uuid"
)

// ErrAdminRequired is returned when a child cap attempts to mint another
// capability.
var ErrAdminRequired = errors.New("capability: admin account cap required")

// Cap is an opaque capability reference. Owner is the stable principal
// that the custody ledger and order records key on.
type Cap struct {
	id      string
	owner   string
	isAdmin bool
}

// ID returns this capability's own identity (distinct between an admin
// and each of its children).
func (c Cap) ID() string { return c.id }

// Owner returns the funding-bucket principal this capability authorizes
// access to.
func (c Cap) Owner() string { return c.owner }

// IsAdmin reports whether this capability may mint further capabilities.
func (c Cap) IsAdmin() bool { return c.isAdmin }

// MintAccountCap creates a fresh admin capability: a brand-new identity
// that owns itself.
func MintAccountCap() Cap {
	id := uuid.New().String()
	return Cap{id: id, owner: id, isAdmin: true}
}

// MintChildCap creates a capability that shares admin's funding bucket
// but carries its own distinct identity. Only an admin cap may mint
// children.
func MintChildCap(admin Cap) (Cap, error) {
	if !admin.isAdmin {
		return Cap{}, ErrAdminRequired
	}
	return Cap{id: uuid.New().String(), owner: admin.owner, isAdmin: false}, nil
}

// DeleteCap invalidates cap. Capabilities carry no engine-side state of
// their own (the custody ledger is keyed on Owner(), which survives), so
// deletion is purely advisory to the caller — this exists to mirror the
// lifecycle operation spec §4.4 names, and is a no-op placeholder a host
// can wire to its own object-deletion story.
func DeleteCap(cap Cap) {
	_ = cap
}
