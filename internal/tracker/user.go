package tracker

import (
	"encoding/json"
	"fmt"

	"github.com/gabrielcpolitano/ponto/internal/model"
)

// Login records the current user. The name is also kept as a convenience
// record that survives logout.
func (t *Tracker) Login(name string) (model.User, error) {
	user := model.User{Name: name, LoginDate: t.clock.Now()}
	data, err := json.Marshal(user)
	if err != nil {
		return model.User{}, fmt.Errorf("encoding user: %w", err)
	}
	if err := t.store.Set(userKey, data); err != nil {
		return model.User{}, err
	}
	if err := t.store.Set(lastUserKey, []byte(name)); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Logout removes the current user. The last-name convenience record stays.
func (t *Tracker) Logout() error {
	return t.store.Delete(userKey)
}

// CurrentUser returns the logged-in user, if any.
func (t *Tracker) CurrentUser() (model.User, bool, error) {
	data, ok, err := t.store.Get(userKey)
	if err != nil || !ok {
		return model.User{}, false, err
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return model.User{}, false, fmt.Errorf("corrupt user record: %w", err)
	}
	return user, true, nil
}

// LastUserName returns the most recently logged-in name, if any.
func (t *Tracker) LastUserName() (string, bool, error) {
	data, ok, err := t.store.Get(lastUserKey)
	if err != nil || !ok {
		return "", false, err
	}
	return string(data), true, nil
}
