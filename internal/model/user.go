package model

// User is a local account for the shop. Usernames are unique and
// case-sensitive. Password holds a bcrypt hash for accounts created
// here; backups imported from older builds may carry plaintext.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
