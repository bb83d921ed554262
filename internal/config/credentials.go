package config

// Account names accepted by the Swag Labs site.
const (
	StandardUser  = "standard_user"
	LockedOutUser = "locked_out_user"
	ErrorUser     = "error_user"

	// SharedPassword is the password every demo account uses.
	SharedPassword = "secret_sauce"
)

// Credentials is the fixed table of demo accounts. The key set is known up
// front, so each role is a named field.
type Credentials struct {
	Standard string
	Locked   string
	Error    string
	Password string
}

var defaultCredentials = Credentials{
	Standard: StandardUser,
	Locked:   LockedOutUser,
	Error:    ErrorUser,
	Password: SharedPassword,
}

// DefaultCredentials returns a copy of the demo account table
func DefaultCredentials() Credentials {
	return defaultCredentials
}
