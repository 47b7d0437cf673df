package credential

import (
	"youtube-manager/domain/apperror"
	"youtube-manager/domain/model"
)

type statusReader interface {
	Status() model.AuthStatus
}

// Gate passes only while the store holds a usable access token. It never
// refreshes or retries.
type Gate struct {
	store statusReader
}

func NewGate(store statusReader) *Gate {
	return &Gate{store: store}
}

// Check returns an AuthRequiredError when no usable credentials exist.
func (g *Gate) Check() error {
	if g.store.Status().Authenticated {
		return nil
	}
	return apperror.New(apperror.KindAuthRequired, "auth.gate", "authenticate via /auth/youtube first")
}
