package domain

// BootstrapData describes the first administrator created through the
// bootstrap endpoint. An empty AdminPassword asks the service to pick one.
type BootstrapData struct {
	AdminEmail    string
	AdminName     string
	AdminPhone    string
	AdminPassword string
}

// BootstrapResult identifies the new administrator. GeneratedPassword is only
// set when the request left the password out, and is never stored in clear.
type BootstrapResult struct {
	AdminUserID       string
	GeneratedPassword string
}
