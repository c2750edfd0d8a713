// Package nav holds the client's named routes and the navigation stack.
package nav

import (
	"errors"
	"fmt"
	"strings"
)

// Name identifies a screen.
type Name string

const (
	Login       Name = "login"
	SignUp      Name = "signup"
	Home        Name = "home"
	Videos      Name = "videos"
	Search      Name = "search"
	VideoDetail Name = "video-detail"
	Edit        Name = "edit"
	Translate   Name = "translate"
	Profile     Name = "profile"
)

var (
	ErrUnknownRoute = errors.New("unknown route")
	ErrMissingID    = errors.New("route requires an id")
	ErrUnexpectedID = errors.New("route takes no id")
)

var names = map[Name]bool{
	Login: true, SignUp: true, Home: true, Videos: true, Search: true,
	VideoDetail: true, Edit: true, Translate: true, Profile: true,
}

// Parameterized reports whether routes named n carry a video id.
func (n Name) Parameterized() bool {
	return n == VideoDetail || n == Edit
}

// Guarded reports whether n needs a signed-in user.
func (n Name) Guarded() bool {
	return n != Login && n != SignUp
}

// Route is a screen plus its parameter.
type Route struct {
	Name Name
	ID   string
}

// To builds an unparameterized route.
func To(n Name) Route { return Route{Name: n} }

// DetailOf and EditOf build the parameterized routes.
func DetailOf(id string) Route { return Route{Name: VideoDetail, ID: id} }
func EditOf(id string) Route   { return Route{Name: Edit, ID: id} }

func (r Route) String() string {
	if r.ID != "" {
		return string(r.Name) + "/" + r.ID
	}
	return string(r.Name)
}

// Validate checks the name is known and the id matches its arity.
func (r Route) Validate() error {
	if !names[r.Name] {
		return fmt.Errorf("%w: %q", ErrUnknownRoute, r.Name)
	}
	switch {
	case r.Name.Parameterized() && r.ID == "":
		return fmt.Errorf("%w: %s", ErrMissingID, r.Name)
	case !r.Name.Parameterized() && r.ID != "":
		return fmt.Errorf("%w: %s", ErrUnexpectedID, r.Name)
	}
	return nil
}

// ParseRoute parses "name" or "name/id", with an optional leading slash.
func ParseRoute(s string) (Route, error) {
	s = strings.Trim(strings.TrimSpace(s), "/")
	name, id, _ := strings.Cut(s, "/")
	r := Route{Name: Name(name), ID: strings.TrimSpace(id)}
	if err := r.Validate(); err != nil {
		return Route{}, err
	}
	return r, nil
}
