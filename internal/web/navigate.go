package web

import (
	"net/url"
	"slices"
)

const (
	HomePath        = "/"
	AllProjectsPath = "/All-Projects"
	NotFoundPath    = "/404"
)

// View is one of the routed pages of a loaded portfolio.
type View int

const (
	ViewNotFound View = iota
	ViewHome
	ViewAllProjects
)

func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewAllProjects:
		return "all-projects"
	default:
		return "not-found"
	}
}

// Elements lists the element ids an anchor may point at in the view.
func (v View) Elements() []string {
	switch v {
	case ViewHome:
		return []string{"home", "about", "projects", "contact"}
	case ViewAllProjects:
		return []string{"home", "all-projects"}
	default:
		return []string{"home"}
	}
}

// Route is the outcome of navigating to a location.
type Route struct {
	View View
	// Anchor is the element to scroll into view. Empty means scroll to the top.
	Anchor string
	// Redirect is set when the browser must be sent elsewhere.
	Redirect string
}

func viewFor(path string) View {
	switch path {
	case "", HomePath:
		return ViewHome
	case AllProjectsPath:
		return ViewAllProjects
	}
	return ViewNotFound
}

// Navigate resolves a location such as "/All-Projects#home". Unknown paths
// render the not-found view; an anchor naming no element of the view
// redirects to NotFoundPath.
func Navigate(location string) Route {
	u, err := url.Parse(location)
	if err != nil {
		return Route{View: ViewNotFound, Redirect: NotFoundPath}
	}
	view := viewFor(u.Path)
	if u.Fragment == "" {
		return Route{View: view}
	}
	if slices.Contains(view.Elements(), u.Fragment) {
		return Route{View: view, Anchor: u.Fragment}
	}
	return Route{View: ViewNotFound, Redirect: NotFoundPath}
}
