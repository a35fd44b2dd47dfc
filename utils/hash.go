package utils

import "golang.org/x/crypto/bcrypt"

// HashInviteCode hashes the short code mailed alongside an invite link so the
// plaintext never lands in the database.
func HashInviteCode(code string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(code), 14)
	return string(bytes), err
}

func CheckInviteCode(hash, code string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code))
	return err == nil
}
