package service

import (
	"fmt"
)

func verificationEmailTemplate(verificationURL, appName string) (subject, htmlBody string) {
	subject = fmt.Sprintf("Verify your email for %s", appName)
	htmlBody = fmt.Sprintf(
		`<p>Please verify your email by clicking this link: <a href="%[1]s">%[1]s</a></p>
<p>The link is valid for 24 hours. If you did not sign up, you can ignore this email.</p>`,
		verificationURL,
	)
	return subject, htmlBody
}
