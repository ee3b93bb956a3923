package mocks

import "errors"

// MockPasswordVerifier implements auth.PasswordVerifier and auth.PasswordHasher for testing.
// Hash prefixes the password with "hashed:"; Compare accepts exactly that form
// unless ShouldFail is set or CompareFn overrides it.
type MockPasswordVerifier struct {
	// ShouldFail forces every comparison to fail
	ShouldFail bool

	// HashFn and CompareFn allow for custom logic in tests
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

// Hash implements auth.PasswordHasher
func (m *MockPasswordVerifier) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// Compare implements auth.PasswordVerifier
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCallCount++
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldFail || hashedPassword != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}
