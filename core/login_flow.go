package core

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/employee-desk/v2/internal/auth"
	"github.com/employee-desk/v2/internal/session"
)

type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeSuccess:
		return "success"
	case NoticeError:
		return "error"
	default:
		return "info"
	}
}

// Notifier shows a transient message that disappears after autoClose.
type Notifier interface {
	Notify(kind NoticeKind, message string, autoClose time.Duration)
}

// Navigator switches the visible page. With replace set the current history entry is
// overwritten, so going back does not return to it.
type Navigator interface {
	Navigate(route string, replace bool)
}

// LoginFunc performs the login action against the session store.
type LoginFunc func(ctx context.Context, creds auth.Credentials) error

const (
	MsgLoginSuccess    = "Login successful!"
	MsgLoginMismatch   = "Email or Password mismatch!"
	MsgSignupRedirect  = "Redirecting to Admin Signup..."
	MsgUnsupportedRole = "Your account type is not supported by this client."

	successNoticeDuration = 2 * time.Second
	errorNoticeDuration   = 3 * time.Second
	infoNoticeDuration    = 2 * time.Second

	DefaultRedirectDelay = 2 * time.Second
)

var ErrBusy = errors.New("a login is already in progress")

type LoginFlowParams struct {
	Store         *session.Store
	Login         LoginFunc
	Notifier      Notifier
	Navigator     Navigator
	Scheduler     Scheduler
	RedirectDelay time.Duration
	// Logout discards a session the client cannot route, so its token is not used
	// for later requests.
	Logout        func() error
}

// LoginFlow drives the credential-entry view: idle -> submitting -> authenticated | failed.
// It reacts to session settlements only, so each submission ends in exactly one outcome.
type LoginFlow struct {
	store     *session.Store
	login     LoginFunc
	notifier  Notifier
	navigator Navigator
	scheduler Scheduler
	delay     time.Duration
	logout    func() error

	mu           sync.Mutex
	submitting   bool
	closed       bool
	stopRedirect func() bool
	unsubscribe  func()
}

func NewLoginFlow(p LoginFlowParams) *LoginFlow {
	if p.Scheduler == nil {
		p.Scheduler = RealScheduler
	}
	if p.RedirectDelay <= 0 {
		p.RedirectDelay = DefaultRedirectDelay
	}

	f := &LoginFlow{
		store:     p.Store,
		login:     p.Login,
		notifier:  p.Notifier,
		navigator: p.Navigator,
		scheduler: p.Scheduler,
		delay:     p.RedirectDelay,
		logout:    p.Logout,
	}
	f.unsubscribe = p.Store.Subscribe(f.onSessionChange)
	return f
}

// Submit validates creds and runs the login action. It blocks until the action settles,
// so views call it off their UI goroutine.
func (f *LoginFlow) Submit(ctx context.Context, creds auth.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return errors.New("login view is closed")
	}
	if f.submitting {
		f.mu.Unlock()
		return ErrBusy
	}
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	if err := f.login(ctx, creds); err != nil {
		return err
	}

	// the session listener has already shown the error toast; listeners must not
	// dispatch, so the session is dropped here
	state := f.store.State()
	if state.User == nil {
		return nil
	}
	if _, err := RedirectTarget(state.User.Role); err != nil {
		if f.logout != nil {
			if logoutErr := f.logout(); logoutErr != nil {
				log.Errorf("failed to discard unsupported session: %s", logoutErr)
			}
		}
		return err
	}
	return nil
}

// SignupRedirect leaves for the registration page regardless of the session.
func (f *LoginFlow) SignupRedirect() {
	f.notifier.Notify(NoticeInfo, MsgSignupRedirect, infoNoticeDuration)
	f.navigator.Navigate(RouteSignup, false)
}

// Close detaches the flow from the session and cancels a pending redirect. A redirect
// callback that fires afterwards does nothing.
func (f *LoginFlow) Close() {
	f.mu.Lock()
	f.closed = true
	if f.stopRedirect != nil {
		f.stopRedirect()
		f.stopRedirect = nil
	}
	f.mu.Unlock()

	f.unsubscribe()
}

func (f *LoginFlow) onSessionChange(prev, next session.State) {
	if !prev.Loading || next.Loading {
		return
	}

	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return
	}

	if !next.Authenticated() {
		f.notifier.Notify(NoticeError, MsgLoginMismatch, errorNoticeDuration)
		return
	}

	target, err := RedirectTarget(next.User.Role)
	if err != nil {
		log.Warnf("no landing page for the signed in user: %s", err)
		f.notifier.Notify(NoticeError, MsgUnsupportedRole, errorNoticeDuration)
		return
	}

	f.notifier.Notify(NoticeSuccess, MsgLoginSuccess, successNoticeDuration)
	f.scheduleRedirect(target)
}

func (f *LoginFlow) scheduleRedirect(target string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	if f.stopRedirect != nil {
		f.stopRedirect()
	}
	f.stopRedirect = f.scheduler.AfterFunc(f.delay, func() {
		f.mu.Lock()
		if f.closed {
			f.mu.Unlock()
			return
		}
		f.stopRedirect = nil
		f.mu.Unlock()

		log.Debugf("redirecting to %s", target)
		f.navigator.Navigate(target, true)
	})
}
