package models

import (
	"time"
)

const AssetKindImage = "image"

type Author struct {
	ID        string    `json:"_id" db:"author_id"`
	GithubID  int64     `json:"id" db:"github_id"`
	Name      string    `json:"name" db:"name"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Bio       string    `json:"bio" db:"bio"`
	ImageID   *string   `json:"imageId,omitempty" db:"image_id"`
	CreatedAt time.Time `json:"_createdAt" db:"created_at"`
}

type Startup struct {
	ID             string    `json:"_id" db:"startup_id"`
	Title          string    `json:"title" db:"title"`
	Slug           string    `json:"slug" db:"slug"`
	AuthorID       string    `json:"authorId" db:"author_id"`
	Views          int64     `json:"views" db:"views"`
	Description    string    `json:"description" db:"description"`
	Category       string    `json:"category" db:"category"`
	ImageID        *string   `json:"imageId,omitempty" db:"image_id"`
	Pitch          string    `json:"pitch" db:"pitch"`
	IdempotencyKey *string   `json:"-" db:"idempotency_key"`
	CreatedAt      time.Time `json:"_createdAt" db:"created_at"`
}

// Asset is a blob kept in object storage; documents refer to it by ID only.
type Asset struct {
	ID               string    `json:"_id" db:"asset_id"`
	Kind             string    `json:"kind" db:"kind"`
	ObjectName       string    `json:"-" db:"object_name"`
	URL              string    `json:"url" db:"url"`
	OriginalFilename string    `json:"originalFilename" db:"original_filename"`
	MimeType         string    `json:"mimeType" db:"mime_type"`
	Size             int64     `json:"size" db:"size"`
	CreatedAt        time.Time `json:"_createdAt" db:"created_at"`
}

// User is what the identity provider says about the person signing in.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// Profile is the raw GitHub profile returned after the OAuth exchange.
type Profile struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
}

// UserFromProfile maps a GitHub profile onto the provider user, falling back to the login for a missing name.
func UserFromProfile(p *Profile) User {
	name := p.Name
	if name == "" {
		name = p.Login
	}
	return User{Name: name, Email: p.Email, Image: p.AvatarURL}
}

// Account is the provider account issued by the OAuth exchange.
type Account struct {
	Provider          string    `json:"provider"`
	ProviderAccountID string    `json:"providerAccountId"`
	AccessToken       string    `json:"-"`
	TokenType         string    `json:"tokenType"`
	ExpiresAt         time.Time `json:"expiresAt"`
}

// Token is the decoded session token. ID is the store id of the signed-in Author.
type Token struct {
	Subject   string    `json:"sub"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Picture   string    `json:"picture"`
	ID        string    `json:"id"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// Session is the projection of a Token exposed to clients.
type Session struct {
	ID      string    `json:"id"`
	User    User      `json:"user"`
	Expires time.Time `json:"expires"`
}

// Upload is a file received from a form, held in memory.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (u *Upload) Size() int64 {
	if u == nil {
		return 0
	}
	return int64(len(u.Data))
}

// PitchForm is the submitted pitch without its markdown body.
type PitchForm struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	Image          *Upload `json:"-"`
	IdempotencyKey string  `json:"idempotencyKey,omitempty"`
}
