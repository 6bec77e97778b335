package state

import (
	"context"
	"sync"

	"stuma/internal/domain"
	"stuma/internal/result"
)

// ProfileGateway is the slice of the gateway the profile screen needs.
type ProfileGateway interface {
	Profile(ctx context.Context) (domain.Profile, error)
	UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (domain.Ack, error)
}

// ProfileManager tracks the profile read and update operation states.
type ProfileManager struct {
	mu sync.Mutex
	gw ProfileGateway

	profile *Observable[*result.Result[domain.Profile]]
	update  *Observable[*result.Result[domain.Ack]]
}

func NewProfileManager(gw ProfileGateway) *ProfileManager {
	return &ProfileManager{
		gw:      gw,
		profile: newObservable[*result.Result[domain.Profile]](nil),
		update:  newObservable[*result.Result[domain.Ack]](nil),
	}
}

func (m *ProfileManager) ProfileState() *Observable[*result.Result[domain.Profile]] {
	return m.profile
}
func (m *ProfileManager) UpdateState() *Observable[*result.Result[domain.Ack]] { return m.update }

func (m *ProfileManager) Fetch(ctx context.Context) <-chan struct{} {
	return resolve(&m.mu, m.profile, "profile.fetch", func() (domain.Profile, error) {
		return m.gw.Profile(ctx)
	})
}

func (m *ProfileManager) Update(ctx context.Context, req domain.UpdateProfileRequest) <-chan struct{} {
	return resolve(&m.mu, m.update, "profile.update", func() (domain.Ack, error) {
		return m.gw.UpdateProfile(ctx, req)
	})
}
