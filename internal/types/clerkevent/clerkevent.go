package clerkevent

import "encoding/json"

// WebhookEvent is the envelope Clerk posts to /webhooks/clerk.
type WebhookEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type EmailVerification struct {
	Status string `json:"status"`
}

type EmailAddress struct {
	ID           string             `json:"id"`
	EmailAddress string             `json:"email_address"`
	Verification *EmailVerification `json:"verification,omitempty"`
}

type UserData struct {
	ID                    string         `json:"id"`
	Username              *string        `json:"username"`
	FirstName             string         `json:"first_name"`
	LastName              string         `json:"last_name"`
	ImageURL              string         `json:"image_url"`
	PrimaryEmailAddressID string         `json:"primary_email_address_id"`
	EmailAddresses        []EmailAddress `json:"email_addresses"`
}

// PrimaryEmail resolves the primary address, falling back to the first one.
func (u *UserData) PrimaryEmail() (address string, verified bool) {
	for _, e := range u.EmailAddresses {
		if e.ID == u.PrimaryEmailAddressID {
			return e.EmailAddress, e.Verification != nil && e.Verification.Status == "verified"
		}
	}
	if len(u.EmailAddresses) > 0 {
		e := u.EmailAddresses[0]
		return e.EmailAddress, e.Verification != nil && e.Verification.Status == "verified"
	}
	return "", false
}

type DeletedData struct {
	ID string `json:"id"`
}

// EmailData is the payload of email.created events.
type EmailData struct {
	ToEmailAddress string `json:"to_email_address"`
	UserID         string `json:"user_id"`
}
