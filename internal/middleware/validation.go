package middleware

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Parkkangwon/trendwatch/internal/model"
)

// Field limits for credential-file entries.
const (
	MaxUsernameLen = 64
	MaxNameLen     = 128
	MaxEmailLen    = 254
	MaxQueryLen    = 128
)

var (
	// usernameRe matches credential-file keys: alphanumeric plus _ . -
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
	// regionRe matches ISO-3166 alpha-2 region codes.
	regionRe = regexp.MustCompile(`^[A-Za-z]{2}$`)
	// emailRe is a deliberately loose shape check, not RFC validation.
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateUsername checks that a username is well-formed.
func ValidateUsername(username string) (string, string) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", "username is required"
	}
	if len(username) > MaxUsernameLen {
		return "", "username must be at most 64 characters"
	}
	if !usernameRe.MatchString(username) {
		return "", "username contains invalid characters"
	}
	return username, ""
}

// ValidateRegionCode checks and normalizes an ISO-3166 alpha-2 region code.
func ValidateRegionCode(region string) (string, string) {
	region = strings.TrimSpace(region)
	if !regionRe.MatchString(region) {
		return "", "region must be a two-letter code"
	}
	return strings.ToUpper(region), ""
}

// ValidateEmail checks the rough shape of an email address.
func ValidateEmail(email string) (string, string) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", "email is required"
	}
	if len(email) > MaxEmailLen {
		return "", "email is too long"
	}
	if !emailRe.MatchString(email) {
		return "", "email is not valid"
	}
	return email, ""
}

// ValidateRole checks the role enum.
func ValidateRole(role string) (model.Role, string) {
	r := model.Role(strings.TrimSpace(strings.ToLower(role)))
	if !r.Valid() {
		return "", "role must be user or admin"
	}
	return r, ""
}

// ParseViewRange parses the optional minViews/maxViews query parameters into
// an inclusive range. Absent values widen to [0, MaxInt64]; min > max is an
// error rather than a silent swap.
func ParseViewRange(minStr, maxStr string) (int64, int64, string) {
	minViews := int64(0)
	maxViews := int64(math.MaxInt64)

	if s := strings.TrimSpace(minStr); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			return 0, 0, "minViews must be a non-negative integer"
		}
		minViews = n
	}
	if s := strings.TrimSpace(maxStr); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			return 0, 0, "maxViews must be a non-negative integer"
		}
		maxViews = n
	}
	if minViews > maxViews {
		return 0, 0, "minViews cannot exceed maxViews"
	}
	return minViews, maxViews, ""
}

// ParseCategories splits a comma-separated category-id list into a set.
// An empty input yields an empty set, meaning no restriction.
func ParseCategories(csv string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, id := range strings.Split(csv, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// ValidateSearchQuery trims and truncates the free-text query.
func ValidateSearchQuery(q string) string {
	q = strings.TrimSpace(q)
	if len(q) > MaxQueryLen {
		q = q[:MaxQueryLen]
	}
	return q
}
