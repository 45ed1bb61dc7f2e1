package domain

import (
	"context"
	"time"
)

type Socials struct {
	Github   string `json:"github" validate:"optional_url"`
	Linkedin string `json:"linkedin" validate:"optional_url"`
	Twitter  string `json:"twitter" validate:"optional_url"`
	Website  string `json:"website" validate:"optional_url"`
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Picture      string    `json:"picture"`
	Resume       string    `json:"resume"`
	Bio          string    `json:"bio"`
	Socials      Socials   `json:"socials"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicProfile is the part of a user shown to anonymous visitors. It never carries the email.
type PublicProfile struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Picture string  `json:"picture"`
	Resume  string  `json:"resume"`
	Bio     string  `json:"bio"`
	Socials Socials `json:"socials"`
}

func (u *User) Public() *PublicProfile {
	return &PublicProfile{
		ID:      u.ID,
		Name:    u.Name,
		Picture: u.Picture,
		Resume:  u.Resume,
		Bio:     u.Bio,
		Socials: u.Socials,
	}
}

type ProfilePatch struct {
	Name    *string  `json:"name" validate:"omitnil,notblank,max=100,valid_name,no_emoji"`
	Picture *string  `json:"picture" validate:"omitnil,optional_url"`
	Resume  *string  `json:"resume" validate:"omitnil,optional_url"`
	Bio     *string  `json:"bio" validate:"omitnil,max=2000"`
	Socials *Socials `json:"socials" validate:"omitnil"`
}

func (p ProfilePatch) Apply(u *User) {
	assign(&u.Name, p.Name)
	assign(&u.Picture, p.Picture)
	assign(&u.Resume, p.Resume)
	assign(&u.Bio, p.Bio)
	assign(&u.Socials, p.Socials)
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100,valid_name,no_emoji"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Passkey  string `json:"passkey" validate:"required,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=128"`
}

// ClientInfo describes the caller of an unauthenticated endpoint for throttling and audit.
type ClientInfo struct {
	IP        string
	UserAgent string
	RequestID string
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*User, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, req *RegisterRequest) (*User, error)
	Login(ctx context.Context, req *LoginRequest, client ClientInfo) (*Session, error)
	GetCurrentUser(ctx context.Context) (*User, error)
	UpdateProfile(ctx context.Context, patch ProfilePatch) (*User, error)
	GetPublicProfile(ctx context.Context, userID string) (*PublicProfile, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
	// Burn spends the same time as Verify so unknown emails are not distinguishable by latency.
	Burn(password string)
}

type TokenIssuer interface {
	Issue(userID, email string) (string, time.Time, error)
}

// LoginThrottle tracks failed logins per email and blocks after too many.
type LoginThrottle interface {
	IsBlocked(ctx context.Context, email, ip string) (bool, error)
	RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, int, error)
	ClearAttempts(ctx context.Context, email, ip string) error
}
