package constants

// Principal roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Auth providers
const (
	ProviderEmail    = "email"
	ProviderPhone    = "phone"
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

// Attendance statuses
const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceLeave   = "Leave"
)

// Activity log actions
const (
	ActionLogin          = "LOGIN"
	ActionLogout         = "LOGOUT"
	ActionRegister       = "REGISTER"
	ActionSession        = "SESSION"
	ActionOTPSent        = "OTP_SENT"
	ActionOTPVerified    = "OTP_VERIFIED"
	ActionEmailSent      = "EMAIL_SENT"
	ActionEmailVerified  = "EMAIL_VERIFIED"
	ActionPasswordChange = "PASSWORD_CHANGE"
	ActionAddStudent     = "ADD_STUDENT"
	ActionUpdateStudent  = "UPDATE_STUDENT"
	ActionDeleteStudent  = "DELETE_STUDENT"
	ActionAddMarks       = "ADD_MARKS"
	ActionAttendance     = "ATTENDANCE"
)

// Challenge lifetimes and dashboard limits
const (
	OTPExpiryMinutes      = 5
	EmailTokenExpiryHours = 24
	SessionExpiryHours    = 24
	RecentActivityLimit   = 15
)

// Attendance date wire format
const DateLayout = "2006-01-02"
