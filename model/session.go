package model

// Session is the authenticated context handed to catalog operations. It is
// built at login, cached by user id, and refreshed when a creator promotion
// grants an artist id. ArtistID is zero for users without an artist profile.
type Session struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	ArtistID int64  `json:"artistId,omitempty"`
}

// IsCreator reports whether the session carries an artist profile.
func (s *Session) IsCreator() bool {
	return s.ArtistID != 0
}

// IsAdmin reports whether the session belongs to an admin.
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
