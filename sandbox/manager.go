package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/etnz/fantaleague"
)

// CurrentUserKey is the storage key of the current user's id.
const CurrentUserKey = "bbslSandboxCurrentUser"

// Key returns the storage key of a user's sandbox.
func Key(user string) string { return "bbslSandbox_" + user }

// ErrNoUser is returned when no user is given nor selected.
var ErrNoUser = fmt.Errorf("%w: no sandbox user", fantaleague.ErrInvalidInput)

// Store is the key-value storage of sandboxes. A missing key is reported with
// an error wrapping fs.ErrNotExist.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, blob []byte) error
	Delete(ctx context.Context, key string) error
}

// Manager loads and saves sandboxes.
type Manager struct {
	store Store
	clock fantaleague.Clock
}

// NewManager returns a Manager over s. A nil clock means time.Now.
func NewManager(s Store, clock fantaleague.Clock) *Manager {
	if clock == nil {
		clock = time.Now
	}
	return &Manager{store: s, clock: clock}
}

func checkUser(user string) (string, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return "", ErrNoUser
	}
	if strings.ContainsAny(user, `/\`) || strings.Contains(user, "..") {
		return "", fmt.Errorf("%w: invalid user %q", fantaleague.ErrInvalidInput, user)
	}
	return user, nil
}

// CurrentUser returns the selected user, or "" when none is.
func (m *Manager) CurrentUser(ctx context.Context) (string, error) {
	blob, err := m.store.Get(ctx, CurrentUserKey)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("could not read the current sandbox user: %w", err)
	}
	return strings.TrimSpace(string(blob)), nil
}

// SetCurrentUser selects the user whose sandbox is used by default.
func (m *Manager) SetCurrentUser(ctx context.Context, user string) error {
	user, err := checkUser(user)
	if err != nil {
		return err
	}
	if err := m.store.Put(ctx, CurrentUserKey, []byte(user)); err != nil {
		return fmt.Errorf("could not select sandbox user %q: %w", user, err)
	}
	return nil
}

// Load returns the user's sandbox. A user without a sandbox, or with one that
// cannot be decoded, gets a new default sandbox. Sandboxes of an older schema
// are upgraded.
func (m *Manager) Load(ctx context.Context, user string) (*Sandbox, error) {
	user, err := checkUser(user)
	if err != nil {
		return nil, err
	}
	blob, err := m.store.Get(ctx, Key(user))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(user, m.clock()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not load sandbox of %q: %w", user, err)
	}
	sb, err := decode(bytes.NewReader(blob))
	if err != nil {
		log.Printf("sandbox of %q is corrupt, starting over: %v", user, err)
		return Default(user, m.clock()), nil
	}
	if sb.UserID == "" {
		sb.UserID = user
	}
	return sb, nil
}

func decode(r io.Reader) (*Sandbox, error) {
	var sb Sandbox
	if err := json.NewDecoder(r).Decode(&sb); err != nil {
		return nil, fmt.Errorf("could not decode sandbox: %w", err)
	}
	if sb.migrate() {
		log.Printf("sandbox of %q upgraded to schema %d", sb.UserID, SchemaVersion)
	}
	return &sb, nil
}

// Save stamps the sandbox and stores it under its user.
func (m *Manager) Save(ctx context.Context, sb *Sandbox) error {
	user, err := checkUser(sb.UserID)
	if err != nil {
		return err
	}
	sb.UpdatedAt = m.clock().UTC()
	if sb.CreatedAt.IsZero() {
		sb.CreatedAt = sb.UpdatedAt
	}
	blob, err := json.Marshal(sb)
	if err != nil {
		return fmt.Errorf("could not encode sandbox: %w", err)
	}
	if err := m.store.Put(ctx, Key(user), blob); err != nil {
		return fmt.Errorf("could not save sandbox of %q: %w", user, err)
	}
	return nil
}

// Reset deletes the user's sandbox and returns a new default one.
func (m *Manager) Reset(ctx context.Context, user string) (*Sandbox, error) {
	user, err := checkUser(user)
	if err != nil {
		return nil, err
	}
	if err := m.store.Delete(ctx, Key(user)); err != nil {
		return nil, fmt.Errorf("could not reset sandbox of %q: %w", user, err)
	}
	return m.Load(ctx, user)
}

// ExportFilename returns the conventional file name of an exported sandbox.
func ExportFilename(user string) string {
	if user == "" {
		user = "user"
	}
	return "sandbox-" + user + ".json"
}

// Export writes the sandbox as indented json.
func Export(w io.Writer, sb *Sandbox) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sb); err != nil {
		return fmt.Errorf("could not export sandbox: %w", err)
	}
	return nil
}

// Import reads an exported sandbox and saves it as the sandbox of user,
// whatever user it was exported from. Nothing is saved when r cannot be
// parsed.
func (m *Manager) Import(ctx context.Context, r io.Reader, user string) (*Sandbox, error) {
	user, err := checkUser(user)
	if err != nil {
		return nil, err
	}
	sb, err := decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fantaleague.ErrInvalidInput, err)
	}
	sb.UserID = user
	if err := m.Save(ctx, sb); err != nil {
		return nil, err
	}
	return sb, nil
}
