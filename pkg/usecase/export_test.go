package usecase

import "github.com/secmon-lab/notepad/pkg/domain/model/auth"

// CachedToken is exported for testing
func (uc *AccountUseCase) CachedToken(id auth.TokenID) (*auth.Token, bool) {
	return uc.cache.get(id)
}
