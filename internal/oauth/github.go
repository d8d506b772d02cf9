package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"pitchdeck/internal/config"
	"pitchdeck/internal/models"
)

const (
	ProviderGitHub = "github"

	defaultGitHubAPIURL = "https://api.github.com"
)

var ErrMissingCode = errors.New("authorization code is missing")

// Provider is the identity provider side of the sign-in round trip.
type Provider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*models.Account, error)
	Profile(ctx context.Context, account *models.Account) (*models.Profile, error)
}

type GitHubProvider struct {
	oauth      *oauth2.Config
	apiURL     string
	httpClient *http.Client
}

func NewGitHubProvider(cfg config.Auth, httpClient *http.Client) *GitHubProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &GitHubProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			Endpoint:     github.Endpoint,
			RedirectURL:  cfg.CallbackURL(),
			Scopes:       []string{"read:user", "user:email"},
		},
		apiURL:     defaultGitHubAPIURL,
		httpClient: httpClient,
	}
}

func (p *GitHubProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

func (p *GitHubProvider) Exchange(ctx context.Context, code string) (*models.Account, error) {
	if code == "" {
		return nil, ErrMissingCode
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange github code: %w", err)
	}

	return &models.Account{
		Provider:    ProviderGitHub,
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.Expiry,
	}, nil
}

// Profile loads the GitHub user. A private email is resolved through /user/emails.
func (p *GitHubProvider) Profile(ctx context.Context, account *models.Account) (*models.Profile, error) {
	if account == nil || account.AccessToken == "" {
		return nil, errors.New("github account has no access token")
	}

	var profile models.Profile
	if err := p.getJSON(ctx, account.AccessToken, "/user", &profile); err != nil {
		return nil, fmt.Errorf("get github profile: %w", err)
	}
	if profile.ID == 0 {
		return nil, errors.New("github profile has no id")
	}

	if profile.Email == "" {
		email, err := p.primaryEmail(ctx, account.AccessToken)
		if err == nil {
			profile.Email = email
		}
	}

	account.ProviderAccountID = strconv.FormatInt(profile.ID, 10)

	return &profile, nil
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func (p *GitHubProvider) primaryEmail(ctx context.Context, accessToken string) (string, error) {
	var emails []githubEmail
	if err := p.getJSON(ctx, accessToken, "/user/emails", &emails); err != nil {
		return "", err
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}

	return "", errors.New("no verified primary email")
}

func (p *GitHubProvider) getJSON(ctx context.Context, accessToken, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(p.apiURL, "/")+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github %s returned %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dst)
}
