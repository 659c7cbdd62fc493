package observability

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"

	"hr-assistant-api/internal/config"
)

// PIILevel defines how much personal data reaches logs and spans.
type PIILevel string

const (
	// PIILevelNone redacts all user content
	PIILevelNone PIILevel = "none"
	// PIILevelHashed replaces detected PII with salted hashes
	PIILevelHashed PIILevel = "hashed"
	// PIILevelFull performs no sanitization
	PIILevelFull PIILevel = "full"
)

// ParsePIILevel maps a configuration value to a level; unknown values mean hashed.
func ParsePIILevel(raw string) PIILevel {
	switch PIILevel(raw) {
	case PIILevelNone, PIILevelFull:
		return PIILevel(raw)
	default:
		return PIILevelHashed
	}
}

// Sanitizer scrubs employee questions and identifiers before they are logged.
type Sanitizer struct {
	level PIILevel
	salt  string

	emailPattern      *regexp.Regexp
	phonePattern      *regexp.Regexp
	ssnPattern        *regexp.Regexp
	creditCardPattern *regexp.Regexp
	ibanPattern       *regexp.Regexp
}

// NewSanitizer creates a sanitizer whose hashes are keyed with salt.
// salt must stay secret, otherwise hashed values can be brute-forced.
func NewSanitizer(level PIILevel, salt string) *Sanitizer {
	return &Sanitizer{
		level:             level,
		salt:              salt,
		emailPattern:      regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
		phonePattern:      regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
		ssnPattern:        regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
		creditCardPattern: regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`),
		ibanPattern:       regexp.MustCompile(`\b[A-Z]{2}\d{2}(?:\s?[A-Z0-9]{4}){3,7}\b`),
	}
}

// NewSanitizerFromConfig uses LOG_PII_LEVEL and keys hashes with LOG_PII_SALT,
// or with a value derived from JWT_SECRET_KEY when no salt is configured.
func NewSanitizerFromConfig(cfg *config.Config) *Sanitizer {
	salt := cfg.LogPIISalt
	if salt == "" {
		mac := hmac.New(sha256.New, []byte(cfg.JWTSecretKey))
		mac.Write([]byte("log-pii-salt"))
		salt = hex.EncodeToString(mac.Sum(nil))
	}
	return NewSanitizer(ParsePIILevel(cfg.LogPIILevel), salt)
}

// Level returns the configured level.
func (s *Sanitizer) Level() PIILevel {
	if s == nil {
		return PIILevelFull
	}
	return s.level
}

// SanitizeText sanitizes free text such as a question or a query string.
// A nil sanitizer passes text through.
func (s *Sanitizer) SanitizeText(input string) string {
	if s == nil || input == "" {
		return input
	}
	switch s.level {
	case PIILevelNone:
		return "[REDACTED]"
	case PIILevelFull:
		return input
	default:
		return s.hashPII(input)
	}
}

// SanitizeUserID hashes or redacts a user id.
func (s *Sanitizer) SanitizeUserID(userID string) string {
	if s == nil || userID == "" {
		return userID
	}
	switch s.level {
	case PIILevelNone:
		return "[REDACTED]"
	case PIILevelFull:
		return userID
	default:
		return s.hash(userID)
	}
}

func (s *Sanitizer) hashPII(input string) string {
	result := s.emailPattern.ReplaceAllStringFunc(input, func(match string) string {
		return fmt.Sprintf("[EMAIL:%s]", s.hash(match))
	})
	// Account and card numbers go before phones, the phone pattern matches inside them.
	result = s.ibanPattern.ReplaceAllString(result, "[IBAN:REDACTED]")
	result = s.creditCardPattern.ReplaceAllString(result, "[CC:REDACTED]")
	result = s.ssnPattern.ReplaceAllString(result, "[SSN:REDACTED]")
	result = s.phonePattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[PHONE:%s]", s.hash(match))
	})
	return result
}

// hash returns the first 8 hex chars of an HMAC-SHA256 keyed with the salt.
func (s *Sanitizer) hash(data string) string {
	mac := hmac.New(sha256.New, []byte(s.salt))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))[:8]
}
