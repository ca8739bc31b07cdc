package auth

// Kind discriminates the identity attached to a request.
type Kind int

const (
	KindAnonymous Kind = iota
	KindUser
	KindAdmin
)

// Identity is the verified caller of a request, resolved once per request
// by the webserver and passed to handlers. The zero value is anonymous.
type Identity struct {
	Kind Kind
	ID   int64
	Role string
}

// Anonymous is the identity used whenever token verification fails.
var Anonymous = Identity{}

func (id Identity) IsAnonymous() bool {
	return id.Kind == KindAnonymous
}

func (id Identity) IsUser() bool {
	return id.Kind == KindUser
}

func (id Identity) IsAdmin() bool {
	return id.Kind == KindAdmin
}
