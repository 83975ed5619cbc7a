package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const gmailSendURL = "https://gmail.googleapis.com/gmail/v1/users/me/messages/send"

// GmailMailer sends mail through the Gmail API using an OAuth2 refresh token.
type GmailMailer struct {
	oauthConfig    *oauth2.Config
	refreshToken   string
	senderEmail    string
	parentLoginURL string
	sendURL        string
}

type GmailConfig struct {
	ClientID       string
	ClientSecret   string
	RefreshToken   string
	SenderEmail    string
	ParentLoginURL string
}

func NewGmailMailer(cfg GmailConfig) *GmailMailer {
	return &GmailMailer{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"https://www.googleapis.com/auth/gmail.send"},
		},
		refreshToken:   cfg.RefreshToken,
		senderEmail:    cfg.SenderEmail,
		parentLoginURL: cfg.ParentLoginURL,
		sendURL:        gmailSendURL,
	}
}

func (m *GmailMailer) SendTemporaryPassword(ctx context.Context, toEmail, parentName, password string) error {
	if parentName == "" {
		parentName = "rodzicu"
	}
	subject := "Twoje tymczasowe hasło do portalu Skarbek"
	body := fmt.Sprintf(
		"Cześć %s,\n\n"+
			"Wygenerowaliśmy dla Ciebie tymczasowe hasło: %s\n"+
			"Po pierwszym zalogowaniu musisz je zmienić.\n\n"+
			"Zaloguj się tutaj: %s\n\n"+
			"Pozdrawiamy,\nZespół Skarbek",
		parentName, password, m.parentLoginURL,
	)

	raw := m.encodeMessage(toEmail, subject, body)
	payload, err := json.Marshal(map[string]string{"raw": raw})
	if err != nil {
		return fmt.Errorf("marshal gmail payload: %w", err)
	}

	client := m.httpClient(ctx)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.sendURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build gmail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send gmail request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Error().
			Int("status", resp.StatusCode).
			Str("body", string(respBody)).
			Msg("gmail api rejected message")
		return fmt.Errorf("gmail api returned %d", resp.StatusCode)
	}

	log.Info().Str("email", toEmail).Msg("temporary password email sent")
	return nil
}

// httpClient returns an HTTP client that refreshes the access token from the
// stored refresh token as needed.
func (m *GmailMailer) httpClient(ctx context.Context) *http.Client {
	source := m.oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: m.refreshToken})
	return oauth2.NewClient(ctx, source)
}

func (m *GmailMailer) encodeMessage(toEmail, subject, body string) string {
	msg := fmt.Sprintf(
		"To: %s\r\nFrom: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		toEmail, m.senderEmail, encodeHeader(subject), body,
	)
	return base64.URLEncoding.EncodeToString([]byte(msg))
}

// encodeHeader RFC 2047-encodes a header value so non-ASCII subjects survive.
func encodeHeader(value string) string {
	for i := 0; i < len(value); i++ {
		if value[i] >= 0x80 {
			return "=?UTF-8?B?" + base64.StdEncoding.EncodeToString([]byte(value)) + "?="
		}
	}
	return value
}
