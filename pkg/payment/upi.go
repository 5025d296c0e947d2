package payment

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
)

const defaultQRSize = 256

// UPIIntent describes a "upi://pay" collect request shown to the payer.
type UPIIntent struct {
	PayeeVPA  string
	PayeeName string
	Amount    decimal.Decimal
	Currency  string
	Note      string
	Reference string
}

// URI renders the intent as a upi://pay deep link.
func (i UPIIntent) URI() (string, error) {
	if strings.TrimSpace(i.PayeeVPA) == "" {
		return "", ErrEmptyPayee
	}
	q := url.Values{}
	q.Set("pa", i.PayeeVPA)
	if i.PayeeName != "" {
		q.Set("pn", i.PayeeName)
	}
	q.Set("am", i.Amount.StringFixed(2))
	cu := i.Currency
	if cu == "" {
		cu = "INR"
	}
	q.Set("cu", cu)
	if i.Note != "" {
		q.Set("tn", i.Note)
	}
	if i.Reference != "" {
		q.Set("tr", i.Reference)
	}
	return "upi://pay?" + q.Encode(), nil
}

// QRCode encodes the intent URI as a PNG. Non-positive sizes use 256px.
func (i UPIIntent) QRCode(size int) ([]byte, error) {
	uri, err := i.URI()
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = defaultQRSize
	}
	png, err := qrcode.Encode(uri, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrQRCodeFailed, err)
	}
	return png, nil
}

// QRCodeDataURI returns the QR code as a base64 data URI for inline display.
func (i UPIIntent) QRCodeDataURI(size int) (string, error) {
	png, err := i.QRCode(size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
