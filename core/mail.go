package core

import (
	"bytes"
	htmltmpl "html/template"
	"net/mail"
	texttmpl "text/template"

	"github.com/pkg/errors"
)

type (
	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Bcc     []mail.Address
		Subject string

		// templated contents; Data is passed to both templates
		TextTemplate string
		HTMLTemplate string
		Data         interface{}
		TextContent  string
		HTMLContent  string
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

func (m *EmailMessage) HasRecipients() bool {
	return len(m.To) > 0 || len(m.Cc) > 0 || len(m.Bcc) > 0
}

func (m *EmailMessage) HasContent() bool {
	return m.TextContent != "" || m.HTMLContent != ""
}

// Render executes the message templates into TextContent and HTMLContent.
func (m *EmailMessage) Render() error {
	if m.TextTemplate != "" {
		tmpl, err := texttmpl.New("text").Parse(m.TextTemplate)
		if err != nil {
			return errors.Wrap(err, "parsing text template")
		}
		var buff bytes.Buffer
		if err = tmpl.Execute(&buff, m.Data); err != nil {
			return errors.Wrap(err, "rendering text template")
		}
		m.TextContent = buff.String()
	}
	if m.HTMLTemplate != "" {
		tmpl, err := htmltmpl.New("html").Parse(m.HTMLTemplate)
		if err != nil {
			return errors.Wrap(err, "parsing html template")
		}
		var buff bytes.Buffer
		if err = tmpl.Execute(&buff, m.Data); err != nil {
			return errors.Wrap(err, "rendering html template")
		}
		m.HTMLContent = buff.String()
	}
	return nil
}
