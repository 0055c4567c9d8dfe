package auth

// Fixed storage keys for the persisted session fields. These are stable
// identifiers; renaming them orphans sessions persisted by earlier builds.
const (
	keyInstitutionID = "institutionId"
	keyRole          = "role"
	keyEmployeeID    = "employeeId"
)

// SessionStore persists the three session identifiers — institution id,
// role, employee id — through an injected Storage port. Each field is an
// independent slot: setting one never touches the others, and clearing a
// field removes its key instead of writing an empty string.
//
// The store is a passive adapter. The Context owns every mutation; nothing
// else writes through here.
type SessionStore struct {
	storage Storage
}

// NewSessionStore creates a session store over the given storage port
func NewSessionStore(storage Storage) *SessionStore {
	return &SessionStore{storage: storage}
}

// InstitutionID returns the persisted institution id
func (s *SessionStore) InstitutionID() (string, bool) {
	return s.storage.Get(keyInstitutionID)
}

// SetInstitutionID persists the institution id; an empty value removes it
func (s *SessionStore) SetInstitutionID(id string) error {
	if id == "" {
		return s.storage.Delete(keyInstitutionID)
	}
	return s.storage.Set(keyInstitutionID, id)
}

// Role returns the persisted role. The raw stored value is validated against
// the known role set on every read: an invalid value reads as absent, it is
// never returned verbatim.
func (s *SessionStore) Role() (Role, bool) {
	raw, ok := s.storage.Get(keyRole)
	if !ok {
		return "", false
	}
	return ParseRole(raw)
}

// SetRole persists the role; an empty value removes it
func (s *SessionStore) SetRole(role Role) error {
	if role == "" {
		return s.storage.Delete(keyRole)
	}
	return s.storage.Set(keyRole, string(role))
}

// EmployeeID returns the persisted employee id
func (s *SessionStore) EmployeeID() (string, bool) {
	return s.storage.Get(keyEmployeeID)
}

// SetEmployeeID persists the employee id; an empty value removes it
func (s *SessionStore) SetEmployeeID(id string) error {
	if id == "" {
		return s.storage.Delete(keyEmployeeID)
	}
	return s.storage.Set(keyEmployeeID, id)
}

// Clear removes all three session fields. Every removal is attempted even
// when an earlier one fails; the first error is reported.
func (s *SessionStore) Clear() error {
	var firstErr error
	for _, key := range []string{keyInstitutionID, keyRole, keyEmployeeID} {
		if err := s.storage.Delete(key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
