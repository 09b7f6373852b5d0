package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"

	"github.com/employee-desk/v2/core"
	"github.com/employee-desk/v2/internal/session"
)

// HomeView is the landing page shown after login. The domain screens hang off it.
type HomeView struct {
	content fyne.CanvasObject
}

// NewHomeView shows who is signed in. logout must clear the session; the view then
// replaces the history with the login page.
func NewHomeView(title string, state session.State, logout func() error, navigator core.Navigator) *HomeView {
	who := "Not signed in"
	if state.User != nil {
		who = fmt.Sprintf("Signed in as %s (%s)", state.User.Email, state.User.Role.Label())
	}

	signOut := widget.NewButton("Sign out", func() {
		if err := logout(); err != nil {
			log.Errorf("logout: %s", err)
		}
		navigator.Navigate(core.RouteLogin, true)
	})

	card := widget.NewCard(title, who, container.NewVBox(signOut))
	return &HomeView{content: container.NewCenter(card)}
}

func (v *HomeView) Content() fyne.CanvasObject {
	return v.content
}

func (v *HomeView) Close() {}
