package clob

import (
	"clob/internal/capability"
	"clob/internal/events"
)

// DepositBase credits cap's owner's available base balance and emits a
// DepositAsset record (spec §4.4/§6). This is the engine-facing entry
// point; internal matching/placement paths move balances directly
// through the ledger without going through here, since those moves are
// reported via OrderFilled/OrderCanceled instead.
func (p *Pool) DepositBase(cap capability.Cap, amount uint64) error {
	if err := p.Base.Deposit(cap.Owner(), amount); err != nil {
		return err
	}
	p.emit(events.DepositAsset{PoolID: p.ID, AssetTag: p.BaseAssetType, Quantity: amount, Owner: cap.Owner()})
	return nil
}

// DepositQuote credits cap's owner's available quote balance and emits a
// DepositAsset record.
func (p *Pool) DepositQuote(cap capability.Cap, amount uint64) error {
	if err := p.Quote.Deposit(cap.Owner(), amount); err != nil {
		return err
	}
	p.emit(events.DepositAsset{PoolID: p.ID, AssetTag: p.QuoteAssetType, Quantity: amount, Owner: cap.Owner()})
	return nil
}

// WithdrawBase debits cap's owner's available base balance and emits a
// WithdrawAsset record. Fails if available is insufficient; never
// touches locked.
func (p *Pool) WithdrawBase(cap capability.Cap, amount uint64) error {
	if err := p.Base.Withdraw(cap.Owner(), amount); err != nil {
		return err
	}
	p.emit(events.WithdrawAsset{PoolID: p.ID, AssetTag: p.BaseAssetType, Quantity: amount, Owner: cap.Owner()})
	return nil
}

// WithdrawQuote debits cap's owner's available quote balance and emits a
// WithdrawAsset record.
func (p *Pool) WithdrawQuote(cap capability.Cap, amount uint64) error {
	if err := p.Quote.Withdraw(cap.Owner(), amount); err != nil {
		return err
	}
	p.emit(events.WithdrawAsset{PoolID: p.ID, AssetTag: p.QuoteAssetType, Quantity: amount, Owner: cap.Owner()})
	return nil
}
