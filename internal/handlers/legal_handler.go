package handlers

import (
	"github.com/gofiber/fiber/v2"
)

const legalStyle = `<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>`

type LegalHandler struct {
	supportEmail string
}

func NewLegalHandler(supportEmail string) *LegalHandler {
	if supportEmail == "" {
		supportEmail = "support@workjunction.in"
	}
	return &LegalHandler{supportEmail: supportEmail}
}

func (h *LegalHandler) PrivacyPolicy(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Privacy Policy - WorkJunction</title>
` + legalStyle + `
</head><body>
<h1>Privacy Policy</h1>
<p>Last updated: October 2026</p>
<h2>Information We Collect</h2>
<p>We collect your name, email address, phone number and address to create your account. Workers additionally provide an Aadhar document, a police verification certificate and a profile photo.</p>
<h2>How We Use Your Information</h2>
<p>Verification documents are used only to review your worker application. Your phone number is used to send one-time passwords. Customers searching for workers see your name, contact details, address and profile.</p>
<h2>Data Storage</h2>
<p>Documents are stored with our file storage provider and are reachable only through the links recorded on your account. We do not sell your personal information to third parties.</p>
<h2>Contact</h2>
<p>For questions about this policy, contact us at ` + h.supportEmail + `</p>
</body></html>`)
}

// TermsOfService is the worker agreement accepted by the accept-terms step.
func (h *LegalHandler) TermsOfService(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Worker Terms and Conditions - WorkJunction</title>
` + legalStyle + `
</head><body>
<h1>Worker Terms and Conditions</h1>
<p>Last updated: October 2026</p>
<h2>Acceptance</h2>
<p>By accepting these terms you apply to offer your services on WorkJunction.</p>
<h2>Verification</h2>
<p>You must upload a valid Aadhar document, a police verification certificate and a clear profile photo. Your profile is not shown to customers until an administrator approves your application. A rejected application cannot be resubmitted from the app.</p>
<h2>Conduct</h2>
<p>You agree to describe your skills, experience and rates truthfully and to treat customers and their property with care.</p>
<h2>Termination</h2>
<p>We may suspend accounts that provide false documents or violate these terms.</p>
<h2>Contact</h2>
<p>For questions, contact us at ` + h.supportEmail + `</p>
</body></html>`)
}
