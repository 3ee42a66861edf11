package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/zkraus/bubla/pkg/calendar"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	googleauth "golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
)

// Authenticator builds authenticated HTTP clients from a client
// credentials file and a stored token file. The interactive consent
// flow happens out of band; the bot only refreshes the stored token.
type Authenticator struct {
	credentialsFile string
	tokenFile       string
}

func NewAuthenticator(credentialsFile, tokenFile string) *Authenticator {
	return &Authenticator{
		credentialsFile: credentialsFile,
		tokenFile:       tokenFile,
	}
}

// Client returns an HTTP client carrying a valid access token,
// refreshing and persisting the stored token when needed.
// All failures are reported as calendar.AuthError.
func (a *Authenticator) Client(ctx context.Context) (*http.Client, error) {
	raw, err := os.ReadFile(a.credentialsFile)
	if err != nil {
		return nil, &calendar.AuthError{Err: fmt.Errorf("unable to read credentials file: %w", err)}
	}

	oauthConfig, err := googleauth.ConfigFromJSON(raw, gcal.CalendarScope, gcal.CalendarEventsScope)
	if err != nil {
		return nil, &calendar.AuthError{Err: fmt.Errorf("unable to parse credentials file: %w", err)}
	}

	token, err := a.tokenFromFile()
	if err != nil {
		return nil, &calendar.AuthError{Err: err}
	}

	source := oauthConfig.TokenSource(ctx, token)
	fresh, err := source.Token()
	if err != nil {
		return nil, &calendar.AuthError{Err: fmt.Errorf("unable to refresh token: %w", err)}
	}
	if fresh.AccessToken != token.AccessToken {
		if err := a.saveToken(fresh); err != nil {
			log.Warnf("failed to persist refreshed token: %v", err)
		}
	}

	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(fresh, source)), nil
}

func (a *Authenticator) tokenFromFile() (*oauth2.Token, error) {
	f, err := os.Open(a.tokenFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read token file: %w", err)
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("unable to parse token file: %w", err)
	}
	return token, nil
}

func (a *Authenticator) saveToken(token *oauth2.Token) error {
	f, err := os.OpenFile(a.tokenFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
