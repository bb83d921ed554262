package models

import "errors"

// Login errors, worded as the site shows them
var (
	ErrUsernameRequired   = errors.New("Epic sadface: Username is required")
	ErrPasswordRequired   = errors.New("Epic sadface: Password is required")
	ErrInvalidCredentials = errors.New("Epic sadface: Username and password do not match any user in this service")
	ErrLockedOut          = errors.New("Epic sadface: Sorry, this user has been locked out.")
)

// AccountPassword is shared by every demo account
const AccountPassword = "secret_sauce"

// Account is a demo shopper account
type Account struct {
	Username string
	// LockedOut accounts cannot sign in.
	LockedOut bool
	// Faulty accounts hit broken controls in checkout.
	Faulty bool
}

var accounts = map[string]Account{
	"standard_user":           {Username: "standard_user"},
	"locked_out_user":         {Username: "locked_out_user", LockedOut: true},
	"error_user":              {Username: "error_user", Faulty: true},
	"problem_user":            {Username: "problem_user"},
	"performance_glitch_user": {Username: "performance_glitch_user"},
	"visual_user":             {Username: "visual_user"},
}

// Usernames lists the accepted usernames in the order the login page shows them
func Usernames() []string {
	return []string{
		"standard_user",
		"locked_out_user",
		"problem_user",
		"performance_glitch_user",
		"error_user",
		"visual_user",
	}
}

// LookupAccount returns the account for username
func LookupAccount(username string) (Account, bool) {
	account, ok := accounts[username]
	return account, ok
}

// Authenticate checks a username and password the way the login form does
func Authenticate(username, password string) (Account, error) {
	if username == "" {
		return Account{}, ErrUsernameRequired
	}
	if password == "" {
		return Account{}, ErrPasswordRequired
	}

	account, ok := accounts[username]
	if !ok || password != AccountPassword {
		return Account{}, ErrInvalidCredentials
	}
	if account.LockedOut {
		return Account{}, ErrLockedOut
	}

	return account, nil
}
