package contacts

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/centli/alegra-relay/internal/domain/models"
	"github.com/centli/alegra-relay/pkg/clients/alegra"
)

// Service looks up client-type contacts by phone number.
type Service struct {
	client alegra.Client
	logger *zap.Logger
}

// NewService constructs the contact matcher.
func NewService(client alegra.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

const (
	// nationalNumberDigits is how many trailing digits form the national
	// significant number; anything in front of it is a country code.
	nationalNumberDigits = 10
	// minSubscriberDigits is the shortest digit string still accepted as a
	// full subscriber number when comparing up to a country code.
	minSubscriberDigits = 7
)

// MatchByPhone finds the first contact whose phonePrimary, phoneSecondary or
// mobile matches the given phone after both sides are reduced to digits.
// Digit strings match when equal, or equal up to a leading country code on
// either side ("+52 55 1234 5678" matches a contact stored as
// "5512345678"). Textual near-matches from the upstream search do not
// count; phone lookups drive identity decisions. An input with no digits
// short-circuits to no match without calling upstream.
func (s *Service) MatchByPhone(ctx context.Context, phone string) (*models.Contact, error) {
	digits := digitsOf(phone)
	if digits == "" {
		return nil, nil
	}

	// Query with the national number: contacts stored without the country
	// code would never come back for the full international string.
	query := digits
	if len(query) > nationalNumberDigits {
		query = query[len(query)-nationalNumberDigits:]
	}

	candidates, err := s.client.SearchContacts(ctx, query)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		for _, field := range candidates[i].PhoneFields() {
			if phoneDigitsMatch(digits, digitsOf(string(field))) {
				return &candidates[i], nil
			}
		}
	}

	s.logger.Debug("no digit-exact contact match",
		zap.String("digits", digits), zap.Int("candidates", len(candidates)))
	return nil, nil
}

// phoneDigitsMatch reports whether two digit strings denote the same phone
// number: equal outright, or one a suffix of the other with the shorter
// side still a full subscriber number (tolerating a country code prefix on
// either side without admitting partial matches).
func phoneDigitsMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	return len(shorter) >= minSubscriberDigits && strings.HasSuffix(longer, shorter)
}

// digitsOf strips everything but ASCII digits. Raw JSON scalars can be fed
// straight through: quotes and separators fall away with the rest.
func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
