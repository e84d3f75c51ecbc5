package page

import (
	"context"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/domain/model"
	"github.com/secmon-lab/notepad/pkg/domain/types"
	"github.com/secmon-lab/notepad/pkg/service/notesapi"
	"github.com/secmon-lab/notepad/pkg/utils/logging"
)

// RegistrationSucceededMessage is shown after an account was created
const RegistrationSucceededMessage = "Registration successful. Please log in."

// Form holds what was last typed into a tab's form
type Form struct {
	Username string
	Password string `masq:"secret"`
}

// AuthPage is the controller of the "/" route: a login tab and a register tab sharing one
// status area.
type AuthPage struct {
	api interfaces.NotesAPI
	nav interfaces.Navigator

	mu     sync.Mutex
	life   lifecycle
	status statusBoard
	tab    types.AuthTab
	forms  map[types.AuthTab]Form
}

var _ Page = &AuthPage{}

func NewAuthPage(api interfaces.NotesAPI, nav interfaces.Navigator) *AuthPage {
	return &AuthPage{
		api:   api,
		nav:   nav,
		tab:   types.AuthTabLogin,
		forms: make(map[types.AuthTab]Form),
	}
}

func (p *AuthPage) Route() types.Route {
	return types.RouteAuth
}

// Start does nothing; the auth page has no initial work
func (p *AuthPage) Start(ctx context.Context) {}

func (p *AuthPage) Teardown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.life.end()
}

func (p *AuthPage) Status() model.StatusMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status.current
}

func (p *AuthPage) OnStatus(fn StatusListener) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.status.subscribe(fn)
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.status.unsubscribe(id)
	}
}

// Tab returns the active tab
func (p *AuthPage) Tab() types.AuthTab {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tab
}

// Form returns the retained input of tab
func (p *AuthPage) Form(tab types.AuthTab) Form {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.forms[tab]
}

// SelectTab activates tab and clears the status. It never talks to the backend.
func (p *AuthPage) SelectTab(tab types.AuthTab) error {
	if !tab.IsValid() {
		return goerr.New("unknown auth tab", goerr.V("tab", tab))
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.life.closed {
		return nil
	}
	p.tab = tab
	p.status.clear()
	return nil
}

// SubmitLogin logs in and, on success, navigates to the dashboard. On failure the status shows
// the reason and the form keeps its values.
func (p *AuthPage) SubmitLogin(ctx context.Context, username, password string) {
	token, ok := p.submit(types.AuthTabLogin, username, password)
	if !ok {
		return
	}

	err := p.api.Login(ctx, strings.TrimSpace(username), password)

	p.mu.Lock()
	if !p.life.current(token) {
		p.mu.Unlock()
		logging.From(ctx).Debug("login completed after teardown, dropped")
		return
	}
	if err != nil {
		p.status.set(model.ErrorStatus(notesapi.UserMessage(err)))
		p.mu.Unlock()
		logging.From(ctx).Info("login failed", "error", err)
		return
	}
	p.mu.Unlock()

	if err := p.nav.Navigate(ctx, types.RouteDashboard); err != nil {
		logging.From(ctx).Error("failed to navigate after login", "error", err)
	}
}

// SubmitRegistration creates an account. It stays on the page either way.
func (p *AuthPage) SubmitRegistration(ctx context.Context, username, password string) {
	token, ok := p.submit(types.AuthTabRegister, username, password)
	if !ok {
		return
	}

	err := p.api.Register(ctx, strings.TrimSpace(username), password)

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.life.current(token) {
		logging.From(ctx).Debug("registration completed after teardown, dropped")
		return
	}
	if err != nil {
		p.status.set(model.ErrorStatus(notesapi.UserMessage(err)))
		logging.From(ctx).Info("registration failed", "error", err)
		return
	}
	p.status.set(model.InfoStatus(RegistrationSucceededMessage))
}

// submit records the typed values and returns the epoch token of the submission
func (p *AuthPage) submit(tab types.AuthTab, username, password string) (uint64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.life.closed {
		return 0, false
	}
	p.forms[tab] = Form{Username: username, Password: password}
	return p.life.begin(), true
}
