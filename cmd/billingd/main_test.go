package main

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/billingkit/pkg/ledger"
)

func TestNewLedgerStore(t *testing.T) {
	t.Parallel()

	store, err := newLedgerStore(ledger.Config{Driver: ledger.DriverMemory}, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, store)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store, err = newLedgerStore(ledger.Config{Driver: ledger.DriverRedis, RedisKeyPrefix: "t:"}, client, nil)
	require.NoError(t, err)
	assert.NotNil(t, store)

	_, err = newLedgerStore(ledger.Config{Driver: "sqlite"}, nil, nil)
	assert.ErrorIs(t, err, ledger.ErrUnknownDriver)
}

func TestNewFormatter(t *testing.T) {
	t.Parallel()

	f, err := newFormatter("en-IN", "INR")
	require.NoError(t, err)
	assert.NotNil(t, f)

	_, err = newFormatter("not a locale!", "INR")
	assert.Error(t, err)

	_, err = newFormatter("en-IN", "XYZW")
	assert.Error(t, err)
}
