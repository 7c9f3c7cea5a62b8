package password

import "golang.org/x/crypto/bcrypt"

// Hash one-way hashes a plaintext password with bcrypt at the default cost.
// bcrypt salts internally, so two hashes of the same plaintext differ.
// Inputs longer than 72 bytes are rejected by bcrypt itself.
func Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether hash was produced from plaintext. The comparison
// runs in constant time regardless of where a mismatch occurs.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
