package usercontext

// Session keys written at admin login
const (
	SessionAdminID  = "admin_id"
	SessionName     = "admin_name"
	SessionEmail    = "admin_email"
	SessionIsAdmin  = "admin"
	SessionLoggedIn = "logged_in_at"
)

const localsKey = "user_context"
