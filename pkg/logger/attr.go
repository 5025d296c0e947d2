package logger

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
// If id is empty, it returns an empty Attr.
func UserID(id string) slog.Attr {
	return optionalString("user_id", id)
}

// SubscriptionID records the subscription identifier under the key "subscription_id".
func SubscriptionID(id string) slog.Attr {
	return optionalString("subscription_id", id)
}

// TransactionID records the gateway transaction identifier under the key "transaction_id".
func TransactionID(id string) slog.Attr {
	return optionalString("transaction_id", id)
}

// EntryID records the billing history entry identifier under the key "entry_id".
func EntryID(id string) slog.Attr {
	return optionalString("entry_id", id)
}

// SessionID records the checkout session identifier under the key "session_id".
func SessionID(id string) slog.Attr {
	return optionalString("session_id", id)
}

// PromoCode records a normalized promo code under the key "promo_code".
func PromoCode(code string) slog.Attr {
	return optionalString("promo_code", code)
}

// Plan records the plan name under the key "plan".
func Plan[T ~string](plan T) slog.Attr {
	return slog.String("plan", string(plan))
}

// Amount records a monetary amount as an exact decimal string under the key "amount".
func Amount(amount decimal.Decimal) slog.Attr {
	return slog.String("amount", amount.String())
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func optionalString(key, v string) slog.Attr {
	if v == "" {
		return slog.Attr{}
	}
	return slog.String(key, v)
}
