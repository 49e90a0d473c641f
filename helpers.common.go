package main

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// Sentinel errors raised by the book service and translated
// into HTTP status codes at the handlers boundary.
var (
	ErrInvalidBookInput  = errors.New("invalid title or ISBN number")
	ErrBookAlreadyExists = errors.New("book already exists")
	ErrBookNotFound      = errors.New("book not found")
	ErrBookUpdateFailed  = errors.New("something went wrong while updating the book")
	ErrBookDeleteFailed  = errors.New("something went wrong while deleting the book")
)

type ContextKey string

const (
	RequestIDPrefix      string     = "r"
	ContextRequestID     ContextKey = "request.id"
	ContextRequestNumber ContextKey = "request.number"
)

// isbnRegex is the structural pattern a new book isbn must satisfy:
// 3 digits then groups of 1-5, 1-7, 1-7, 1-7 digits then a final digit
// or X, with an optional hyphen between every group. No checksum is done.
var isbnRegex = regexp.MustCompile(`(?i)^\d{3}-?\d{1,5}-?\d{1,7}-?\d{1,7}-?\d{1,7}-?(\d|X)$`)

// IsValidISBN tells whether a given string matches the isbn pattern.
func IsValidISBN(isbn string) bool {
	return isbnRegex.MatchString(isbn)
}

// ValidateCreateBookInput checks the content of a book creation request.
func ValidateCreateBookInput(in CreateBookInput) error {
	if len(in.Title) == 0 || len(in.ISBN) == 0 || !IsValidISBN(in.ISBN) {
		return ErrInvalidBookInput
	}
	return nil
}

// GetValueFromContext returns the value of a given key in the context
// if this key is not available, it returns an empty string.
func GetValueFromContext(ctx context.Context, contextKey ContextKey) string {
	if val := ctx.Value(contextKey); val != nil {
		return val.(string)
	}
	return ""
}

// GetRequestNumberFromContext returns the request number set in
// the context. if not previously set then it returns 0.
func GetRequestNumberFromContext(ctx context.Context) uint64 {
	if val := ctx.Value(ContextRequestNumber); val != nil {
		return val.(uint64)
	}
	return 0
}

// ParseBookIDParam extracts and parses the `:id` path segment as an integer.
func ParseBookIDParam(ps httprouter.Params) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(ps.ByName("id")), 10, 64)
}

// DecodeRequestBody reads a json request body into the provided destination.
func DecodeRequestBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("invalid request body")
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

// GetRequestSourceIP helps find the source IP of the caller.
func GetRequestSourceIP(r *http.Request) string {
	// Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip
	}

	// Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		netIP = net.ParseIP(ip)
		if netIP != nil {
			return ip
		}
	}

	// Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip
	}
	return ""
}

// IsAppRunningInDocker checks the existence of the .dockerenv
// file at the root directory and returns a boolean result. This
// helps know if the App is running in a docker container or not.
func IsAppRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}
