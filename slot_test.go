package wallet

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSlot(t *testing.T, slot Slot) {
	t.Helper()

	_, err := slot.Read()
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, slot.Write([]byte(`[1]`)))
	got, err := slot.Read()
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))

	require.NoError(t, slot.Write([]byte(`[2,3]`)))
	got, err = slot.Read()
	require.NoError(t, err)
	assert.Equal(t, `[2,3]`, string(got))
}

func TestMemorySlot(t *testing.T) {
	t.Parallel()
	testSlot(t, new(MemorySlot))
}

func TestFileSlot(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	slot := NewFileSlot(filepath.Join(dir, "nested", "wallet.json"))
	testSlot(t, slot)

	// no temporary file is left behind.
	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSQLiteSlot(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "wallet.db")

	slot, err := NewSQLiteSlot(path, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = slot.Close() })
	testSlot(t, slot)

	// another key in the same database is another slot.
	other, err := NewSQLiteSlot(path, "paper")
	require.NoError(t, err)
	t.Cleanup(func() { _ = other.Close() })
	_, err = other.Read()
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLedger_OverSlots(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	sqlite, err := NewSQLiteSlot(filepath.Join(dir, "wallet.db"), DefaultSlotKey)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	slots := map[string]Slot{
		"file":   NewFileSlot(filepath.Join(dir, "wallet.json")),
		"sqlite": sqlite,
	}
	for name, slot := range slots {
		t.Run(name, func(t *testing.T) {
			l, err := Open(slot)
			require.NoError(t, err)
			_, err = l.Deposit(bitcoin, Q(2), USD(100))
			require.NoError(t, err)
			_, _, err = l.Withdraw("bitcoin", Q(0.5))
			require.NoError(t, err)

			// the slot is up to date as soon as the call returns.
			reloaded, err := Open(slot)
			require.NoError(t, err)
			h, ok := reloaded.Holding("bitcoin")
			require.True(t, ok)
			assert.True(t, h.Quantity.Equal(Q(1.5)), "quantity %v", h.Quantity)
			assert.True(t, h.AverageCost.Equal(USD(100)), "average cost %v", h.AverageCost)
		})
	}
}

func TestFileSlot_CorruptFileRecovers(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "wallet.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	l, err := Open(NewFileSlot(path))
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())

	_, err = l.Deposit(ethereum, Q(1), USD(10))
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"ethereum","symbol":"eth","name":"Ethereum","amount":1,"averagePrice":10,"currentPrice":10,"image":"https://img/eth.png"}]`, string(data))
}
