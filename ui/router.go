package ui

import (
	"sync"

	"fyne.io/fyne/v2"
	log "github.com/sirupsen/logrus"
)

// Page is what a route shows. Close is called when the page is replaced so it can
// release subscriptions and cancel timers.
type Page interface {
	Content() fyne.CanvasObject
	Close()
}

// PageFunc builds a fresh page every time its route is shown.
type PageFunc func() Page

// Router swaps the content of the main window and keeps a navigation history.
type Router struct {
	win fyne.Window

	mu      sync.Mutex
	pages   map[string]PageFunc
	history []string
	current Page
}

func NewRouter(win fyne.Window) *Router {
	return &Router{
		win:   win,
		pages: make(map[string]PageFunc),
	}
}

// Handle registers the page shown for route.
func (r *Router) Handle(route string, fn PageFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[route] = fn
}

// Navigate shows route. With replace set the current history entry is overwritten.
// It may be called from any goroutine.
func (r *Router) Navigate(route string, replace bool) {
	fyne.Do(func() {
		r.navigate(route, replace)
	})
}

// Back returns to the previous history entry, if there is one.
func (r *Router) Back() {
	fyne.Do(func() {
		r.mu.Lock()
		if len(r.history) < 2 {
			r.mu.Unlock()
			return
		}
		r.history = r.history[:len(r.history)-1]
		route := r.history[len(r.history)-1]
		fn := r.pages[route]
		r.mu.Unlock()

		r.show(route, fn)
	})
}

// Current returns the route on top of the history.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return ""
	}
	return r.history[len(r.history)-1]
}

// History returns a copy of the navigation history, oldest first.
func (r *Router) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.history...)
}

func (r *Router) navigate(route string, replace bool) {
	r.mu.Lock()
	fn, ok := r.pages[route]
	if !ok {
		r.mu.Unlock()
		log.Errorf("no page registered for route %s", route)
		return
	}
	if replace && len(r.history) > 0 {
		r.history[len(r.history)-1] = route
	} else {
		r.history = append(r.history, route)
	}
	r.mu.Unlock()

	r.show(route, fn)
}

func (r *Router) show(route string, fn PageFunc) {
	r.mu.Lock()
	old := r.current
	r.current = nil
	r.mu.Unlock()

	if old != nil {
		old.Close()
	}

	page := fn()
	r.mu.Lock()
	r.current = page
	r.mu.Unlock()

	log.Debugf("showing %s", route)
	r.win.SetContent(page.Content())
}
