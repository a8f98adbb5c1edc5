package domain

import "time"

// User es el registro de credenciales. VerificationCodeHash no nil indica un
// OTP pendiente y, a la vez, una cuenta sin verificar.
type User struct {
	ID                   string    `json:"id"`
	Email                string    `json:"email"`
	VerificationCodeHash *string   `json:"-"`
	CreatedAt            time.Time `json:"created_at"`
}

// HasPendingCode indica si hay un codigo emitido sin canjear.
func (u User) HasPendingCode() bool {
	return u.VerificationCodeHash != nil
}
