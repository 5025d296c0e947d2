package binder

import "net/http"

// Query binds URL query parameters into the struct pointed to by v using
// `query` tags. Missing parameters leave fields untouched, so defaults can
// be set before binding.
//
//	type quoteQuery struct {
//		Plan      billing.Plan `query:"plan"`
//		UserCount int          `query:"users"`
//		Promo     *string      `query:"promo"`
//	}
func Query(r *http.Request, v any) error {
	return bindToStruct(v, "query", r.URL.Query(), ErrFailedToParseQuery)
}
