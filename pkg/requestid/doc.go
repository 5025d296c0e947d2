// Package requestid tags every HTTP request with an X-Request-ID.
//
// Middleware accepts a client supplied id when it is at most 128 characters
// of [a-zA-Z0-9_-] and otherwise generates a UUID. The id is echoed in the
// response header and available through FromContext. LoggerExtractor plugs
// into logger.WithContextExtractors so that checkout logs carry the id of
// the request that triggered them.
package requestid
