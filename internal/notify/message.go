// Package notify turns resolved checklist tasks into ready-to-send messages.
// Nothing is sent; callers copy the text or follow the generated link.
package notify

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/unknowncanwrite/ship/internal/checklist"
)

// ErrNoMessage is returned for plain tasks, which carry no outgoing message.
var ErrNoMessage = errors.New("task has no message")

var nonDigits = regexp.MustCompile(`\D`)

type Email struct {
	To        string `json:"to"`
	CC        string `json:"cc,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Body      string `json:"body"`
	MailtoURL string `json:"mailtoUrl"`
}

type WhatsApp struct {
	Contact  string `json:"contact"`
	Body     string `json:"body"`
	ShareURL string `json:"shareUrl"`
}

// Message is the rendered form of one task; exactly one of Email and
// WhatsApp is set.
type Message struct {
	TaskID   string             `json:"taskId"`
	Kind     checklist.TaskKind `json:"kind"`
	Email    *Email             `json:"email,omitempty"`
	WhatsApp *WhatsApp          `json:"whatsapp,omitempty"`
}

// Render builds the message for task.
func Render(task checklist.ResolvedTask) (*Message, error) {
	msg := &Message{TaskID: task.ID, Kind: task.Kind}
	switch task.Kind {
	case checklist.TaskKindEmail:
		msg.Email = renderEmail(task)
	case checklist.TaskKindWhatsApp:
		msg.WhatsApp = renderWhatsApp(task)
	default:
		return nil, fmt.Errorf("%w: %s", ErrNoMessage, task.ID)
	}
	return msg, nil
}

func renderEmail(task checklist.ResolvedTask) *Email {
	email := &Email{To: task.To, CC: task.CC, Body: task.Body}
	if !task.HideSubject {
		email.Subject = task.Subject
	}

	var params []string
	if email.CC != "" {
		params = append(params, "cc="+escape(email.CC))
	}
	if email.Subject != "" {
		params = append(params, "subject="+escape(email.Subject))
	}
	if email.Body != "" {
		params = append(params, "body="+escape(email.Body))
	}

	email.MailtoURL = "mailto:" + escapeAddresses(email.To)
	if len(params) > 0 {
		email.MailtoURL += "?" + strings.Join(params, "&")
	}
	return email
}

func renderWhatsApp(task checklist.ResolvedTask) *WhatsApp {
	wa := &WhatsApp{Contact: task.To, Body: task.Body}
	// wa.me only accepts a bare international number; anything else opens the contact picker.
	wa.ShareURL = "https://wa.me/" + nonDigits.ReplaceAllString(task.To, "") + "?text=" + escape(task.Body)
	return wa
}

// escapeAddresses escapes each recipient as a path segment, keeping "@" and
// the separating commas literal.
func escapeAddresses(list string) string {
	var addrs []string
	for _, addr := range strings.Split(list, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			addrs = append(addrs, url.PathEscape(addr))
		}
	}
	return strings.Join(addrs, ",")
}

// escape percent-encodes for mailto and wa.me links, where "+" is not a space.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
