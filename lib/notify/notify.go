// Package notify delivers lead follow-up reminders to the sales desk.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/estatehub-api/utils"
)

// ErrNotConfigured is returned when the sender lacks required credentials
var ErrNotConfigured = errors.New("notification sender not configured")

// GeneralInquiry labels reminders for leads without a property
const GeneralInquiry = "General Inquiry"

// PropertyRef identifies the listing a lead asked about
type PropertyRef struct {
	Title    string
	Location string
}

// LeadReminder is the content of one reminder notification
type LeadReminder struct {
	Name     string
	Phone    string
	Purpose  string
	Notes    *string
	Property *PropertyRef
}

// Sender delivers reminder notifications
type Sender interface {
	// Validate reports ErrNotConfigured, naming the missing settings, when
	// the sender cannot send at all.
	Validate() error
	// SendLeadReminder delivers one notification and returns the provider
	// message ID.
	SendLeadReminder(ctx context.Context, msg LeadReminder) (string, error)
}

// PropertyLine renders the property part of a reminder
func (m LeadReminder) PropertyLine() string {
	if m.Property == nil {
		return GeneralInquiry
	}
	if m.Property.Location == "" {
		return m.Property.Title
	}
	return fmt.Sprintf("%s - %s", m.Property.Title, m.Property.Location)
}

// FormatLeadReminder renders the message body sent for a reminder
func FormatLeadReminder(m LeadReminder) string {
	var b strings.Builder
	b.WriteString("🔔 Follow-up reminder\n\n")
	fmt.Fprintf(&b, "Name: %s\n", m.Name)
	fmt.Fprintf(&b, "Phone: %s\n", m.Phone)
	fmt.Fprintf(&b, "Purpose: %s\n", m.Purpose)
	fmt.Fprintf(&b, "Property: %s\n", m.PropertyLine())
	if notes := strings.TrimSpace(utils.Deref(m.Notes)); notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", notes)
	}
	return strings.TrimRight(b.String(), "\n")
}
