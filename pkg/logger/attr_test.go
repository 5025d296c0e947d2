package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/billingkit/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("sub", slog.String("id", "1"), slog.Int("seats", 2))
	require.Equal(t, "sub", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "seats", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestBillingAttrs(t *testing.T) {
	tests := []struct {
		attr slog.Attr
		key  string
		want string
	}{
		{logger.UserID("u1"), "user_id", "u1"},
		{logger.SubscriptionID("sub_1"), "subscription_id", "sub_1"},
		{logger.TransactionID("txn_1"), "transaction_id", "txn_1"},
		{logger.EntryID("bh_1"), "entry_id", "bh_1"},
		{logger.SessionID("s1"), "session_id", "s1"},
		{logger.PromoCode("SAVE10"), "promo_code", "SAVE10"},
		{logger.Plan("premium"), "plan", "premium"},
		{logger.Amount(decimal.RequireFromString("98.304")), "amount", "98.304"},
		{logger.Component("checkout"), "component", "checkout"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.key, tt.attr.Key)
		assert.Equal(t, tt.want, tt.attr.Value.String())
	}

	assert.True(t, logger.UserID("").Equal(slog.Attr{}))
	assert.True(t, logger.TransactionID("").Equal(slog.Attr{}))
	assert.Equal(t, 2*time.Second, logger.Duration(2*time.Second).Value.Duration())
}
