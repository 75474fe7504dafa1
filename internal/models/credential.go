package models

// Credential is the one-to-one login record for an account.
type Credential struct {
	AccountID  string `json:"account_id"`
	SecretHash string `json:"-"`
	IsActive   bool   `json:"is_active"`
}
