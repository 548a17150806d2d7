package notify

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"go.uber.org/zap"
)

// Delivery is demonstration-mode only: messages are rendered and
// written to the operator console, never to a real SMS/email gateway.
// The secret is surfaced to the API caller by the orchestrator.

const otpSMSTemplate = `Your {{ .AppName | title }} verification code is {{ .Code }}. It expires in {{ .ExpiryMinutes }} minutes. Requested {{ now | date "2006-01-02 15:04" }} UTC.`

const verificationEmailTemplate = `Hello{{ if .DisplayName }} {{ .DisplayName }}{{ end }},

Verify your email for {{ .AppName | title }} by opening {{ .Link }} within {{ .ExpiryHours }} hours.

If you did not request this, ignore the message.`

var (
	otpTmpl   = template.Must(template.New("otp_sms").Funcs(sprig.TxtFuncMap()).Parse(otpSMSTemplate))
	emailTmpl = template.Must(template.New("verify_email").Funcs(sprig.TxtFuncMap()).Parse(verificationEmailTemplate))
)

type Notifier struct {
	appName string
	logger  *zap.Logger
}

func NewNotifier(appName string, logger *zap.Logger) *Notifier {
	return &Notifier{
		appName: appName,
		logger:  logger,
	}
}

// SendOTP renders the demo SMS for the given phone/code pair.
func (n *Notifier) SendOTP(phone, code string, expiryMinutes int) {
	var buf bytes.Buffer
	err := otpTmpl.Execute(&buf, map[string]any{
		"AppName":       n.appName,
		"Code":          code,
		"ExpiryMinutes": expiryMinutes,
	})
	if err != nil {
		n.logger.Error("Failed to render OTP message", zap.Error(err))
		return
	}

	n.logger.Info("[DEMO] SMS delivery",
		zap.String("phone", phone),
		zap.String("message", buf.String()),
	)
}

// SendVerificationEmail renders the demo verification mail.
func (n *Notifier) SendVerificationEmail(email, displayName, link string, expiryHours int) {
	var buf bytes.Buffer
	err := emailTmpl.Execute(&buf, map[string]any{
		"AppName":     n.appName,
		"DisplayName": displayName,
		"Link":        link,
		"ExpiryHours": expiryHours,
	})
	if err != nil {
		n.logger.Error("Failed to render verification email", zap.Error(err))
		return
	}

	n.logger.Info("[DEMO] Email delivery",
		zap.String("email", email),
		zap.String("message", buf.String()),
	)
}
