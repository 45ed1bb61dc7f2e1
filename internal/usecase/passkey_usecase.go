package usecase

import (
	"context"
	"fmt"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	passkeyLength  = 24
	maxMintPerCall = 100
)

type passkeyUsecase struct {
	repo domain.PasskeyRepository
}

func NewPasskeyUsecase(repo domain.PasskeyRepository) domain.PasskeyUsecase {
	return &passkeyUsecase{repo: repo}
}

// Mint creates n fresh, unused registration passkeys.
func (u *passkeyUsecase) Mint(ctx context.Context, n int) ([]domain.Passkey, error) {
	if n < 1 || n > maxMintPerCall {
		return nil, apperror.BadRequest(fmt.Sprintf("can mint between 1 and %d passkeys at a time", maxMintPerCall))
	}

	minted := make([]domain.Passkey, 0, n)
	for i := 0; i < n; i++ {
		key, err := gonanoid.New(passkeyLength)
		if err != nil {
			return minted, apperror.Internal(err)
		}
		id, err := uuid.NewV7()
		if err != nil {
			return minted, apperror.Internal(err)
		}

		pk := domain.Passkey{ID: id.String(), Key: key, CreatedAt: time.Now().UTC().Truncate(time.Microsecond)}
		if err := u.repo.Create(ctx, &pk); err != nil {
			return minted, apperror.Internal(err)
		}
		minted = append(minted, pk)
	}
	return minted, nil
}

func (u *passkeyUsecase) List(ctx context.Context) ([]domain.Passkey, error) {
	passkeys, err := u.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return passkeys, nil
}
