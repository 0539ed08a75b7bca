package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"learnloop/internal/config"
)

//go:embed templates/*.html
var templates embed.FS

type Service interface {
	SendNewFollowerEmail(ctx context.Context, toEmail, recipientName, followerName string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	body, err := render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("LearnLoop <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body,
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func render(templateName string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(templates, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

type newFollowerData struct {
	Title        string
	Name         string
	FollowerName string
	Link         string
}

func (s *service) SendNewFollowerEmail(ctx context.Context, toEmail, recipientName, followerName string) error {
	data := newFollowerData{
		Title:        "You have a new follower",
		Name:         recipientName,
		FollowerName: followerName,
		Link:         fmt.Sprintf("https://%s/profile", s.config.Domain),
	}
	return s.sendEmail(toEmail, fmt.Sprintf("%s is now following you", followerName), "new_follower.html", data)
}
