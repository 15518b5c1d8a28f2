package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/chethandvg/tenantmanagement/internal/types"
)

// NumberingService issues document numbers of the form
// {PREFIX}-{YYYYMM}-{NNNNNN}. The counter is per organization and document
// kind and never resets, so numbers stay unique across month boundaries even
// though the year-month segment changes.
type NumberingService interface {
	NextDocumentNumber(ctx context.Context, kind types.DocumentKind) (string, error)
}

type numberingService struct {
	ServiceParams
}

func NewNumberingService(params ServiceParams) NumberingService {
	return &numberingService{ServiceParams: params}
}

func (s *numberingService) NextDocumentNumber(ctx context.Context, kind types.DocumentKind) (string, error) {
	if err := kind.Validate(); err != nil {
		return "", err
	}

	n, err := s.SequenceRepo.NextValue(ctx, kind)
	if err != nil {
		return "", err
	}

	yearMonth := s.Clock.NowUTC().Format("200601")
	return fmt.Sprintf("%s-%s-%06d", s.numberPrefix(kind), yearMonth, n), nil
}

// numberPrefix resolves the configured prefix for the kind. Surrounding
// whitespace is trimmed; a prefix that is empty or whitespace-only falls back
// to the kind's default.
func (s *numberingService) numberPrefix(kind types.DocumentKind) string {
	var configured string
	switch kind {
	case types.DocumentKindCreditNote:
		configured = s.Config.Billing.CreditNoteNumberPrefix
	default:
		configured = s.Config.Billing.InvoiceNumberPrefix
	}

	trimmed := strings.TrimSpace(configured)
	if trimmed == "" {
		return kind.DefaultNumberPrefix()
	}
	return trimmed
}
