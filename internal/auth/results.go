package auth

import "github.com/marcus-gray/budgetapp/internal/models"

// User-facing messages returned in operation results. Expected misuse (wrong
// password, bad token, locked account) is a failed result carrying one of
// these, never a Go error; collaborator failures are logged and reported with
// the generic *Failed messages so store internals never leak to the UI.
const (
	msgPasswordsDoNotMatch    = "Passwords do not match"
	msgNewPasswordsDoNotMatch = "New passwords do not match"
	msgAccountCreated         = "Account created successfully!"
	msgRegistrationFailed     = "Registration failed. Please try again."

	msgLoginRequired    = "Username/email and password are required"
	msgInvalidLogin     = "Invalid username/email or password"
	msgAccountNowLocked = "Account locked due to too many failed login attempts"
	msgLoginFailed      = "Login failed. Please try again."

	msgCurrentPasswordWrong = "Current password is incorrect"
	msgPasswordUnchanged    = "New password must be different from current password"
	msgPasswordChanged      = "Password changed successfully"
	msgPasswordChangeFailed = "Password change failed. Please try again."

	msgResetRequestAccepted = "If an account with that username or email exists, a reset token has been generated"
	msgResetRequestFailed   = "Password reset request failed. Please try again."
	msgResetTokenInvalid    = "Invalid reset token"
	msgResetTokenExpired    = "Reset token has expired"
	msgResetTokenUsed       = "Reset token has already been used"
	msgResetTokenVerified   = "Reset token verified"
	msgPasswordReset        = "Password reset successfully"
	msgPasswordResetFailed  = "Password reset failed. Please try again."

	msgUnlockTokenInvalid = "Invalid unlock token"
	msgUnlockTokenExpired = "Unlock token has expired"
	msgUnlockTokenUsed    = "Unlock token has already been used"
	msgUnlockTokenIssued  = "Emergency unlock token generated"
	msgUnlockTokenFailed  = "Unlock token generation failed. Please try again."
	msgAccountUnlocked    = "Account unlocked successfully"
	msgUserNotFound       = "User not found"

	msgUsernameCheckFailed = "Unable to verify username availability"
	msgEmailCheckFailed    = "Unable to verify email availability"
)

// Result is the outcome of an operation with no payload.
type Result struct {
	OK      bool
	Message string
}

// UserResult is the outcome of an operation that may resolve a user.
type UserResult struct {
	OK      bool
	Message string
	User    *models.User
}

// TokenResult is the outcome of an operation that may issue a token.
type TokenResult struct {
	OK      bool
	Message string
	Token   string
}

func failed(message string) Result {
	return Result{Message: message}
}

func succeeded(message string) Result {
	return Result{OK: true, Message: message}
}
