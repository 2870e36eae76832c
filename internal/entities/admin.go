package entities

import "errors"

// Admin is a portal operator account. Accounts are provisioned directly in
// the store, there is no self registration.
type Admin struct {
	ID           int64
	Username     string
	FullName     string
	Email        string
	PasswordHash string
}

var ErrAdminNotFound = errors.New("admin not found")
