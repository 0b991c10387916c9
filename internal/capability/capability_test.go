package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintAccountCapOwnsItself(t *testing.T) {
	cap := MintAccountCap()
	assert.Equal(t, cap.ID(), cap.Owner())
	assert.True(t, cap.IsAdmin())
}

func TestMintChildCapSharesOwner(t *testing.T) {
	admin := MintAccountCap()
	child, err := MintChildCap(admin)
	require.NoError(t, err)

	assert.Equal(t, admin.Owner(), child.Owner())
	assert.NotEqual(t, admin.ID(), child.ID())
	assert.False(t, child.IsAdmin())
}

func TestMintChildCapRequiresAdmin(t *testing.T) {
	admin := MintAccountCap()
	child, err := MintChildCap(admin)
	require.NoError(t, err)

	_, err = MintChildCap(child)
	assert.ErrorIs(t, err, ErrAdminRequired)
}

func TestTwoAdminCapsHaveDistinctIdentities(t *testing.T) {
	a := MintAccountCap()
	b := MintAccountCap()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotEqual(t, a.Owner(), b.Owner())
}
