package sequencer_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clob/internal/capability"
	"clob/internal/clob"
	"clob/internal/sequencer"
)

func newTestPool(t *testing.T) *clob.Pool {
	t.Helper()
	pool, err := clob.NewPool(clob.PoolConfig{
		PoolID:         "pool-1",
		BaseAssetType:  "BASE",
		QuoteAssetType: "QUOTE",
		TickSize:       1,
		LotSize:        1,
		CreationFee:    clob.PoolCreationFee,
	}, nil)
	require.NoError(t, err)
	return pool
}

func TestSubmitRunsAgainstPool(t *testing.T) {
	pool := newTestPool(t)
	s := sequencer.New(pool)
	t.Cleanup(func() { _ = s.Stop() })

	owner := capability.MintAccountCap()
	_, err := s.Submit(func(p *clob.Pool) (any, error) {
		return nil, p.DepositBase(owner, 10)
	})
	require.NoError(t, err)

	value, err := s.Submit(func(p *clob.Pool) (any, error) {
		avail, _, _, _ := p.AccountBalance(owner)
		return avail, nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(10), value)
}

func TestSubmitSerializesConcurrentCallers(t *testing.T) {
	pool := newTestPool(t)
	s := sequencer.New(pool)
	t.Cleanup(func() { _ = s.Stop() })

	owner := capability.MintAccountCap()
	const callers = 50

	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			_, err := s.Submit(func(p *clob.Pool) (any, error) {
				return nil, p.DepositBase(owner, 1)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	value, err := s.Submit(func(p *clob.Pool) (any, error) {
		avail, _, _, _ := p.AccountBalance(owner)
		return avail, nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(callers), value)
}

func TestStopRejectsFurtherSubmits(t *testing.T) {
	pool := newTestPool(t)
	s := sequencer.New(pool)
	require.NoError(t, s.Stop())

	_, err := s.Submit(func(p *clob.Pool) (any, error) { return nil, nil })
	assert.ErrorIs(t, err, sequencer.ErrStopped)
}
