package models

import "time"

// Account is the internal ledger record. ID is the storage key; AccountNumber
// is the external 10-digit identifier presented by the holder.
type Account struct {
	ID            string    `json:"id"`
	AccountNumber string    `json:"account_number"`
	Name          string    `json:"name"`
	DateOfBirth   string    `json:"dob"`
	City          string    `json:"city"`
	ContactNumber string    `json:"contact_number"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	Balance       float64   `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Name           string  `json:"name"`
	DateOfBirth    string  `json:"dob"`
	City           string  `json:"city"`
	ContactNumber  string  `json:"contact_number"`
	Email          string  `json:"email"`
	Address        string  `json:"address"`
	InitialBalance float64 `json:"initial_balance"`
	Password       string  `json:"password"`
}

type LoginRequest struct {
	AccountNumber string `json:"account_number"`
	Password      string `json:"password"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

type UpdateProfileRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// AccountView is the non-secret projection returned to callers.
type AccountView struct {
	AccountNumber string  `json:"account_number"`
	Name          string  `json:"name"`
	DateOfBirth   string  `json:"dob"`
	City          string  `json:"city"`
	ContactNumber string  `json:"contact_number"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	Balance       float64 `json:"balance"`
	CreatedAt     string  `json:"created_at"`
}

func (a *Account) View() AccountView {
	return AccountView{
		AccountNumber: a.AccountNumber,
		Name:          a.Name,
		DateOfBirth:   a.DateOfBirth,
		City:          a.City,
		ContactNumber: a.ContactNumber,
		Email:         a.Email,
		Address:       a.Address,
		Balance:       a.Balance,
		CreatedAt:     a.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
