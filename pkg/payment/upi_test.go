package payment_test

import (
	"bytes"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/billingkit/pkg/payment"
)

func TestUPIIntent_URI(t *testing.T) {
	t.Parallel()

	intent := payment.UPIIntent{
		PayeeVPA:  "billing@okbank",
		PayeeName: "Acme Pvt Ltd",
		Amount:    decimal.RequireFromString("98.304"),
		Note:      "Premium Plan - yearly billing",
		Reference: "sub_1",
	}

	uri, err := intent.URI()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "upi://pay?"))

	u, err := url.Parse(uri)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "billing@okbank", q.Get("pa"))
	assert.Equal(t, "Acme Pvt Ltd", q.Get("pn"))
	assert.Equal(t, "98.30", q.Get("am"))
	assert.Equal(t, "INR", q.Get("cu"))
	assert.Equal(t, "sub_1", q.Get("tr"))

	_, err = payment.UPIIntent{}.URI()
	assert.ErrorIs(t, err, payment.ErrEmptyPayee)
}

func TestUPIIntent_QRCode(t *testing.T) {
	t.Parallel()

	intent := payment.UPIIntent{PayeeVPA: "billing@okbank", Amount: decimal.NewFromInt(684)}

	png, err := intent.QRCode(0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	dataURI, err := intent.QRCodeDataURI(128)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURI, "data:image/png;base64,"))

	_, err = payment.UPIIntent{}.QRCode(128)
	assert.ErrorIs(t, err, payment.ErrEmptyPayee)
}
