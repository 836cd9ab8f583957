package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// maxChannelNameLength is the platform limit on channel names.
const maxChannelNameLength = 100

// The separator before the username is optional so that counts wider than
// four digits still parse; the surplus digits land in the username. Known
// boundary of the format, kept as-is.
var caseNumberPattern = regexp.MustCompile(`^(\d{4})-(\d{4})-?(.+)$`)

// ParsedCaseNumber holds the components recovered from a case number.
type ParsedCaseNumber struct {
	Year     int
	Count    int
	Username string
}

// GenerateCaseNumber formats a case number as {year}-{count padded to 4
// digits}-{username}. Counts of 10000 and above keep their full width and
// will not survive a parse round-trip; uniqueness of the count is the
// caller's responsibility.
func GenerateCaseNumber(year, count int, username string) string {
	return fmt.Sprintf("%d-%04d-%s", year, count, username)
}

// ParseCaseNumber splits a case number back into year, count and username.
// Returns nil when the string does not match the case number format.
func ParseCaseNumber(caseNumber string) *ParsedCaseNumber {
	match := caseNumberPattern.FindStringSubmatch(caseNumber)
	if match == nil {
		return nil
	}
	year, err := strconv.Atoi(match[1])
	if err != nil {
		return nil
	}
	count, err := strconv.Atoi(match[2])
	if err != nil {
		return nil
	}
	return &ParsedCaseNumber{Year: year, Count: count, Username: match[3]}
}

// GenerateChannelName derives a channel name from a case number: "case-"
// prefix, lowercased, every character outside [a-z0-9-] replaced with a
// hyphen, hard-truncated to the platform limit.
func GenerateChannelName(caseNumber string) string {
	lowered := "case-" + strings.ToLower(caseNumber)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, ch := range lowered {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9', ch == '-':
			b.WriteRune(ch)
		default:
			b.WriteByte('-')
		}
	}
	name := b.String()
	if len(name) > maxChannelNameLength {
		name = name[:maxChannelNameLength]
	}
	return name
}
