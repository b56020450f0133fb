package auth

// Claims is what the middleware extracts from a verified session.
// UserID is the identity provider's user id (the session "sub"), not the
// local users.id.
type Claims struct {
	UserID    string
	SessionID string
	Email     string
}
