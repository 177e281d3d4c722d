package queue

// Routing keys on the glancery.events exchange.
const (
	KeyOTPRequested     = "otp.requested"
	KeyUnlockRequested  = "unlock.requested"
	KeySubscriberJoined = "subscriber.joined"
)

// OTPRequested asks the notify worker to deliver the passcode email. The
// magic token embeds the same code as a one-click link.
type OTPRequested struct {
	Email      string `json:"email"`
	OTP        string `json:"otp"`
	MagicToken string `json:"magic_token"`
	Exist      bool   `json:"exist"`
}

// UnlockRequested asks for the unlock email pointing back at the public
// glance page. QKey is 1-based, relative to the filtered FAQ list.
type UnlockRequested struct {
	Email       string `json:"emailid"`
	GCode       string `json:"gcode"`
	QKey        int    `json:"qkey"`
	QText       string `json:"qtext"`
	Publication string `json:"publication"`
}

// SubscriberJoined triggers the subscription confirmation email.
type SubscriberJoined struct {
	Email       string `json:"emailid"`
	GCode       string `json:"gcode"`
	Publication string `json:"publication"`
}
