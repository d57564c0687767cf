package tracker

import "github.com/Joseda-hg/taskmanager/internal/model"

// UserDirectory maps usernames to passwords, remembering registration order.
type UserDirectory struct {
	order     []string
	passwords map[string]string
}

func NewUserDirectory(users []model.User) *UserDirectory {
	dir := &UserDirectory{passwords: make(map[string]string, len(users))}
	for _, user := range users {
		dir.put(user)
	}
	return dir
}

// put keeps the first position of a repeated username and its latest password.
func (d *UserDirectory) put(user model.User) {
	if _, ok := d.passwords[user.Username]; !ok {
		d.order = append(d.order, user.Username)
	}
	d.passwords[user.Username] = user.Password
}

func (d *UserDirectory) Lookup(username string) (model.User, bool) {
	password, ok := d.passwords[username]
	if !ok {
		return model.User{}, false
	}
	return model.User{Username: username, Password: password}, true
}

func (d *UserDirectory) Exists(username string) bool {
	_, ok := d.passwords[username]
	return ok
}

// Authenticate is an exact, plaintext comparison.
func (d *UserDirectory) Authenticate(username, password string) bool {
	stored, ok := d.passwords[username]
	return ok && stored == password
}

// Add registers user in memory. It fails when the username is taken.
func (d *UserDirectory) Add(user model.User) error {
	if d.Exists(user.Username) {
		return ErrDuplicateUsername
	}
	d.put(user)
	return nil
}

func (d *UserDirectory) Usernames() []string {
	return append([]string(nil), d.order...)
}

func (d *UserDirectory) Len() int {
	return len(d.order)
}
