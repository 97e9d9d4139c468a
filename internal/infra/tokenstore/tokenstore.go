package tokenstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/totegamma/oairepo/internal/domain"
	"github.com/totegamma/oairepo/internal/usecase"
)

var tracer = otel.Tracer("tokenstore")

// ttl is the remaining lifetime of token, at least one second.
func ttl(token domain.ResumptionToken, now time.Time) time.Duration {
	d := token.ExpiresAt.Sub(now)
	if d < time.Second {
		return time.Second
	}
	return d
}

func decode(value []byte, now time.Time) (domain.ResumptionToken, error) {
	var token domain.ResumptionToken
	if err := json.Unmarshal(value, &token); err != nil {
		return domain.ResumptionToken{}, errors.Wrap(err, "malformed resumption token")
	}
	if token.Expired(now) {
		return domain.ResumptionToken{}, domain.ErrTokenExpired
	}
	return token, nil
}

// Sweep calls store.Expire every interval until ctx is done.
func Sweep(ctx context.Context, store usecase.TokenStore, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := store.Expire(ctx, now); err != nil {
				slog.ErrorContext(
					ctx, "failed to expire resumption tokens",
					slog.String("error", err.Error()),
					slog.String("module", "tokenstore"),
				)
			}
		}
	}
}
