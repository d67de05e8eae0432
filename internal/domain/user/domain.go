package user

// User is owned by the account subsystem; this service only touches the
// Checks index, which must list exactly the ids of the user's checks.
type User struct {
	ID     string   `json:"id"`
	Name   string   `json:"name,omitempty"`
	Checks []string `json:"checks"`
}

// HasCheck reports whether id is already present in the owner index.
func (u *User) HasCheck(id string) bool {
	for _, c := range u.Checks {
		if c == id {
			return true
		}
	}
	return false
}

// RemoveCheck drops id from the owner index, preserving order.
func (u *User) RemoveCheck(id string) bool {
	for i, c := range u.Checks {
		if c == id {
			u.Checks = append(u.Checks[:i], u.Checks[i+1:]...)
			return true
		}
	}
	return false
}
