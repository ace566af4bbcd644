package wallet

import (
	"errors"
	"testing"
)

var (
	bitcoin  = Asset{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", Image: "https://img/btc.png"}
	ethereum = Asset{ID: "ethereum", Symbol: "eth", Name: "Ethereum", Image: "https://img/eth.png"}
)

// USD is a helper for test to create prices from const
func USD(v float64) Price { return P(v) }

// errSlot is a slot whose writes fail once broken is set.
type errSlot struct {
	MemorySlot
	broken bool
}

var errDiskFull = errors.New("disk full")

func (s *errSlot) Write(data []byte) error {
	if s.broken {
		return errDiskFull
	}
	return s.MemorySlot.Write(data)
}

// newTestLedger returns an empty ledger backed by a memory slot.
func newTestLedger(t *testing.T) (*Ledger, *MemorySlot) {
	t.Helper()
	slot := new(MemorySlot)
	l, err := Open(slot)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return l, slot
}

func mustDeposit(t *testing.T, l *Ledger, a Asset, qty, unit float64) Holding {
	t.Helper()
	h, err := l.Deposit(a, Q(qty), USD(unit))
	if err != nil {
		t.Fatalf("Deposit(%s, %v, %v) error = %v", a.ID, qty, unit, err)
	}
	return h
}
