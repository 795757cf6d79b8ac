package types

// User is the locally cached account the client is authenticated as.
// ID is assigned by the server and is zero until the first profile fetch.
// APIToken is persisted so the user does not have to re-enter a password
// after a restart.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Fullname string `json:"fullname,omitempty"`
	Email    string `json:"email,omitempty"`
	APIToken string `json:"api_token,omitempty"`
}

func CloneUser(user *User) *User {
	if user == nil {
		return nil
	}
	out := *user
	return &out
}
