// Package contact implements the public contact form.
//
// A submission is parsed from a raw JSON object, normalized, and validated
// field by field in a fixed order; the first violation is reported. Accepted
// submissions are stored, the site owner is notified, the sender gets a
// confirmation, and a contact_email_sent analytics event is recorded.
//
// Two delivery modes exist. In sync mode the emails go out inside the
// request. In outbox mode the row and a contact.notify_owner job are written
// in one transaction; NotifyOwnerTask and SendConfirmationTask finish the work
// with retries.
package contact
