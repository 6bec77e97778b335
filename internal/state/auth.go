package state

import (
	"context"
	"sync"

	"stuma/internal/domain"
	"stuma/internal/log"
	"stuma/internal/result"
)

// AuthGateway is the slice of the gateway the auth flows need. The
// gateway itself saves the token on a successful login.
type AuthGateway interface {
	Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
	Register(ctx context.Context, req domain.RegisterRequest) (domain.Ack, error)
	ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) (domain.Ack, error)
}

// AuthManager tracks login, register and change-password operation
// states. Each is nil until its operation is first triggered.
type AuthManager struct {
	mu sync.Mutex
	gw AuthGateway

	login    *Observable[*result.Result[domain.LoginResponse]]
	register *Observable[*result.Result[domain.Ack]]
	changePw *Observable[*result.Result[domain.Ack]]
}

func NewAuthManager(gw AuthGateway) *AuthManager {
	return &AuthManager{
		gw:       gw,
		login:    newObservable[*result.Result[domain.LoginResponse]](nil),
		register: newObservable[*result.Result[domain.Ack]](nil),
		changePw: newObservable[*result.Result[domain.Ack]](nil),
	}
}

func (m *AuthManager) LoginState() *Observable[*result.Result[domain.LoginResponse]] {
	return m.login
}
func (m *AuthManager) RegisterState() *Observable[*result.Result[domain.Ack]] { return m.register }
func (m *AuthManager) ChangePasswordState() *Observable[*result.Result[domain.Ack]] {
	return m.changePw
}

func (m *AuthManager) Login(ctx context.Context, req domain.LoginRequest) <-chan struct{} {
	return resolve(&m.mu, m.login, "auth.login", func() (domain.LoginResponse, error) {
		return m.gw.Login(ctx, req)
	})
}

func (m *AuthManager) Register(ctx context.Context, req domain.RegisterRequest) <-chan struct{} {
	return resolve(&m.mu, m.register, "auth.register", func() (domain.Ack, error) {
		return m.gw.Register(ctx, req)
	})
}

func (m *AuthManager) ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) <-chan struct{} {
	return resolve(&m.mu, m.changePw, "auth.change_password", func() (domain.Ack, error) {
		return m.gw.ChangePassword(ctx, req)
	})
}

// ResetChangePassword returns the change-password state to untriggered,
// so a revisited settings screen does not replay the old outcome.
func (m *AuthManager) ResetChangePassword() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.changePw.publish(nil)
}

// resolve publishes Loading synchronously, runs op on a new goroutine,
// and publishes the outcome under mu. Last write wins on overlap.
func resolve[T any](mu *sync.Mutex, obs *Observable[*result.Result[T]], action string, op func() (T, error)) <-chan struct{} {
	mu.Lock()
	obs.publish(result.Loading[T]())
	mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		v, err := op()
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			log.Error(action, err, nil)
			obs.publish(result.Failure[T](err))
			return
		}
		log.Info(action, nil)
		obs.publish(result.Success(v))
	}()
	return done
}
