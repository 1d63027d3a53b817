package notify

const (
	MsgLoginSuccess   = "Welcome! You have successfully logged in."
	MsgLogoutSuccess  = "You have been logged out successfully."
	MsgSessionExpired = "Your session has expired. Please log in again."
	MsgInvalidSession = "Invalid session. Please log in again."
	MsgTimeout        = "Request timed out. Please try again."
	MsgNetwork        = "Network error. Please check your connection."
	MsgForbidden      = "You don't have permission to perform this action."
	MsgNotFound       = "The requested resource was not found."
	MsgRateLimited    = "Too many requests. Please wait a moment and try again."
	MsgServer         = "Server error. Please try again later."
	MsgUnexpected     = "An unexpected error occurred."

	MsgInvalidCredentials = "Invalid email or password"
	MsgAuthFailed         = "Authentication failed. Please try again."
	MsgInvalidAuthToken   = "Invalid authentication token"
	MsgLoginFailed        = "Login failed. Please try again."
	MsgProfileUpdated     = "Profile updated successfully."
)
