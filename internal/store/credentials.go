// Package store reads and writes the flat YAML credential file backing the
// admin user-management panel. The file is the only persistent state in the
// system; the surrounding service refuses to start without a readable one.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/Parkkangwon/trendwatch/internal/model"
)

var (
	ErrDuplicateUser    = errors.New("store: username already exists")
	ErrProtectedAccount = errors.New("store: protected account cannot be deleted")
	ErrNotPreauthorized = errors.New("store: email is not preauthorized")
	ErrUnknownUser      = errors.New("store: unknown username")
)

// CookieConfig names the session cookie and holds the signing key, matching
// the cookie block of the credential file.
type CookieConfig struct {
	Name       string `yaml:"name"`
	Key        string `yaml:"key"`
	ExpiryDays int    `yaml:"expiry_days"`
}

type credentials struct {
	Usernames map[string]model.UserRecord `yaml:"usernames"`
}

type preauthorized struct {
	Emails []string `yaml:"emails"`
}

// fileSchema is the full on-disk layout:
//
//	credentials:
//	  usernames:
//	    admin: {email, name, password, role}
//	cookie: {name, key, expiry_days}
//	preauthorized:
//	  emails: [...]
type fileSchema struct {
	Credentials   credentials   `yaml:"credentials"`
	Cookie        CookieConfig  `yaml:"cookie"`
	Preauthorized preauthorized `yaml:"preauthorized"`
}

// Store is a file-backed credential store. Admin operations are rare and the
// file has a single writer; the flock guards read-modify-write cycles against
// a second process, and the mutex against concurrent handlers in this one.
type Store struct {
	path string
	mu   sync.Mutex
	data fileSchema
}

// Open loads the credential file at path. A missing or malformed file is an
// error: the caller is expected to treat it as fatal at startup.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read credential file: %w", err)
	}

	var data fileSchema
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse credential file: %w", err)
	}
	if data.Credentials.Usernames == nil {
		return fmt.Errorf("parse credential file: missing credentials.usernames")
	}

	s.data = data
	return nil
}

// save writes the full store contents back to disk: temp file in the same
// directory, then rename, so a crash mid-write never leaves a torn file.
func (s *Store) save() error {
	raw, err := yaml.Marshal(&s.data)
	if err != nil {
		return fmt.Errorf("encode credential file: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".credentials-*.yaml")
	if err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write credential file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write credential file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write credential file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write credential file: %w", err)
	}
	return nil
}

// withFileLock runs fn under an exclusive lock on a sibling lock file,
// reloading the store first so another process's writes are not clobbered.
func (s *Store) withFileLock(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fl := flock.New(s.path + ".lock")
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("lock credential file: %w", err)
	}
	defer fl.Unlock()

	if err := s.load(); err != nil {
		return err
	}
	return fn()
}

// Lookup returns the record for username, if any.
func (s *Store) Lookup(username string) (model.UserRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.data.Credentials.Usernames[username]
	return rec, ok
}

// Users returns a copy of all records keyed by username.
func (s *Store) Users() map[string]model.UserRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]model.UserRecord, len(s.data.Credentials.Usernames))
	for k, v := range s.data.Credentials.Usernames {
		out[k] = v
	}
	return out
}

// Cookie returns the session cookie configuration with defaults applied.
func (s *Store) Cookie() CookieConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.data.Cookie
	if c.Name == "" {
		c.Name = "trendwatch_session"
	}
	if c.ExpiryDays <= 0 {
		c.ExpiryDays = 30
	}
	return c
}

// Preauthorized reports whether email may self-register. An absent or empty
// preauthorized list allows everyone.
func (s *Store) Preauthorized(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.data.Preauthorized.Emails) == 0 {
		return true
	}
	for _, e := range s.data.Preauthorized.Emails {
		if e == email {
			return true
		}
	}
	return false
}

// AddUser hashes the plaintext password, inserts the new record, and
// persists the store. Fails with ErrDuplicateUser if the username is taken;
// the store is left untouched on any failure.
func (s *Store) AddUser(username, name, email, password string, role model.Role) error {
	return s.withFileLock(func() error {
		hash, err := HashPassword(password)
		if err != nil {
			return err
		}
		if err := AddUser(s.data.Credentials.Usernames, username, name, email, hash, role); err != nil {
			return err
		}
		if err := s.save(); err != nil {
			delete(s.data.Credentials.Usernames, username)
			return err
		}
		return nil
	})
}

// DeleteUser removes the record and persists the store. The reserved admin
// username is never deletable.
func (s *Store) DeleteUser(username string) error {
	return s.withFileLock(func() error {
		prev, existed := s.data.Credentials.Usernames[username]
		if err := DeleteUser(s.data.Credentials.Usernames, username); err != nil {
			return err
		}
		if err := s.save(); err != nil {
			if existed {
				s.data.Credentials.Usernames[username] = prev
			}
			return err
		}
		return nil
	})
}

// RegisterUser is the self-signup path: always role user, and the email must
// be preauthorized when an allowlist is configured. Admin-panel adds go
// through AddUser directly and bypass the list.
func (s *Store) RegisterUser(username, name, email, password string) error {
	if !s.Preauthorized(email) {
		return ErrNotPreauthorized
	}
	return s.AddUser(username, name, email, password, model.RoleUser)
}

// AddUser is the pure mutation behind Store.AddUser: it inserts an
// already-hashed record into the mapping, failing on a duplicate username.
func AddUser(users map[string]model.UserRecord, username, name, email, passwordHash string, role model.Role) error {
	if _, exists := users[username]; exists {
		return ErrDuplicateUser
	}
	users[username] = model.UserRecord{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
	}
	return nil
}

// DeleteUser is the pure mutation behind Store.DeleteUser.
func DeleteUser(users map[string]model.UserRecord, username string) error {
	if username == model.ProtectedUsername {
		return ErrProtectedAccount
	}
	if _, exists := users[username]; !exists {
		return ErrUnknownUser
	}
	delete(users, username)
	return nil
}
