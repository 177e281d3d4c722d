package mail

import (
	"fmt"
	"net/url"
	"strings"
)

// OTPMessage builds the passcode email. The magic link carries a signed
// token so the code never appears in the URL.
func OTPMessage(baseURL, otp, magicToken string) (subject, body string) {
	link := strings.TrimRight(baseURL, "/") + "/magic/" + magicToken
	subject = "Your Glancery sign-in code"
	body = fmt.Sprintf(
		"Your one-time code is %s. It expires in 10 minutes.\n\n"+
			"Or sign in with one click:\n%s\n\n"+
			"If you didn't request this, ignore this email.\n", otp, link)
	return subject, body
}

// UnlockMessage builds the email that links back to the glance with the
// requested answer unlocked. qkey is 1-based within the visible FAQ list.
func UnlockMessage(baseURL, publication, gcode, email string, qkey int, qtext string) (subject, body string) {
	link := fmt.Sprintf("%s/%s/%s/%s/%d",
		strings.TrimRight(baseURL, "/"),
		url.PathEscape(publication), gcode, url.PathEscape(email), qkey)
	subject = "Your unlocked answer is ready"
	body = fmt.Sprintf(
		"You asked to unlock:\n\n  %q\n\n"+
			"Read the full answer here:\n%s\n", qtext, link)
	return subject, body
}

// SubscribedMessage confirms a new subscription to a publication.
func SubscribedMessage(publication string) (subject, body string) {
	if publication == "" {
		publication = "this publication"
	}
	subject = "You're subscribed"
	body = fmt.Sprintf(
		"You're now following %s on Glancery. New glances will land in your inbox.\n",
		publication)
	return subject, body
}
