package domain

// User account as seen by the scheduler
type User struct {
	ID           int64
	Name         string
	Surname      string
	Email        string
	Admin        bool
	Points       int
	PasswordHash string
}

// Occupant public profile of a booking owner
type Occupant struct {
	ID      int64
	Name    string
	Surname string
	Email   string
}

// Viewer identity of the request author
type Viewer struct {
	UserID  int64
	IsAdmin bool
}

// CanAccessUser returns true if the viewer may read data of userID
func (v Viewer) CanAccessUser(userID int64) bool {
	return v.IsAdmin || v.UserID == userID
}
