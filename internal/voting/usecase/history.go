package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/jwt"
)

type HistoryItem struct {
	ConstituencyName string
	TransactionRef   string
	Status           string
	CastAt           time.Time
}

type HistoryOutput struct {
	Items []HistoryItem
}

// History returns the authenticated voter's anonymised ballot history: when
// and where, never for whom.
func (s *Usecase) History(ctx context.Context) (*HistoryOutput, error) {
	ctx, span := s.startSpan(ctx, "History")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	items, err := s.repoDB.ListHistory(ctx, claims.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list ballot history", "voter_id", claims.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	out := make([]HistoryItem, 0, len(items))
	for _, it := range items {
		out = append(out, HistoryItem{
			ConstituencyName: it.ConstituencyName,
			TransactionRef:   it.TransactionRef,
			Status:           it.Status.String(),
			CastAt:           it.CastAt,
		})
	}

	return &HistoryOutput{Items: out}, nil
}
