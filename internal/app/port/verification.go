package port

import (
	"context"

	"dicegame_config/internal/domain/entity"
)

// VerificationService checks the configuration record against the network it describes.
type VerificationService interface {
	Verify(ctx context.Context) (entity.VerificationReport, error)
	Refresh(ctx context.Context) (entity.VerificationReport, error)
	Invalidate()
}
