package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nat/todo-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var nationalIDSeq atomic.Uint64

// nextNationalID produces a unique 13-digit national id per call.
func nextNationalID() string {
	n := nationalIDSeq.Add(1)
	return fmt.Sprintf("%013d", 1000000000000+n)
}

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	nationalID string
	password   string
	title      string
	firstName  string
	lastName   string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		nationalID: nextNationalID(),
		password:   "testpassword123",
		title:      "Mr",
		firstName:  "Test",
		lastName:   fmt.Sprintf("User_%s", uuid.New().String()[:8]),
	}
}

// WithNationalID sets the national ID
func (b *UserBuilder) WithNationalID(nationalID string) *UserBuilder {
	b.nationalID = nationalID
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithName sets the title, first and last name
func (b *UserBuilder) WithName(title, firstName, lastName string) *UserBuilder {
	b.title = title
	b.firstName = firstName
	b.lastName = lastName
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		NationalID:   b.nationalID,
		Salt:         string(hashedPassword[:29]),
		PasswordHash: string(hashedPassword),
		Title:        b.title,
		FirstName:    b.firstName,
		LastName:     b.lastName,
		Role:         domain.RoleUser,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// TokenResponse matches the API token response
type TokenResponse struct {
	Token string `json:"token"`
}

// SignUpResponse matches the API signup response
type SignUpResponse struct {
	ID uint `json:"id"`
}

// BuildAndAuthenticate creates a user via the API and returns the user and a bearer token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	signUpBody, _ := json.Marshal(map[string]string{
		"nationalId": b.nationalID,
		"password":   b.password,
		"title":      b.title,
		"firstName":  b.firstName,
		"lastName":   b.lastName,
	})

	resp, err := http.Post(ts.URL("/users"), "application/json", bytes.NewBuffer(signUpBody))
	if err != nil {
		t.Fatalf("failed to sign up user: %v", err)
	}
	defer resp.Body.Close()

	var signUpResp SignUpResponse
	if err := json.NewDecoder(resp.Body).Decode(&signUpResp); err != nil {
		t.Fatalf("failed to decode signup response: %v", err)
	}

	loginBody, _ := json.Marshal(map[string]string{
		"nationalId": b.nationalID,
		"password":   b.password,
	})

	resp, err = http.Post(ts.URL("/tokens"), "application/json", bytes.NewBuffer(loginBody))
	if err != nil {
		t.Fatalf("failed to log in user: %v", err)
	}
	defer resp.Body.Close()

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		t.Fatalf("failed to decode token response: %v", err)
	}

	user := &domain.User{
		ID:         signUpResp.ID,
		NationalID: b.nationalID,
		Title:      b.title,
		FirstName:  b.firstName,
		LastName:   b.lastName,
		Role:       domain.RoleUser,
	}

	return user, tokenResp.Token
}

// ActivityBuilder creates test activities with a builder pattern
type ActivityBuilder struct {
	userID      uint
	name        string
	description string
	deadline    time.Time
	confirmed   bool
}

// NewActivityBuilder creates a new ActivityBuilder with default values
func NewActivityBuilder() *ActivityBuilder {
	return &ActivityBuilder{
		name:        fmt.Sprintf("task_%s", uuid.New().String()[:8]),
		description: "a test activity",
		deadline:    time.Now().Add(24 * time.Hour).Truncate(time.Second),
	}
}

// WithOwner sets the owning user
func (b *ActivityBuilder) WithOwner(userID uint) *ActivityBuilder {
	b.userID = userID
	return b
}

// WithName sets the activity name
func (b *ActivityBuilder) WithName(name string) *ActivityBuilder {
	b.name = name
	return b
}

// WithDeadline sets the deadline
func (b *ActivityBuilder) WithDeadline(deadline time.Time) *ActivityBuilder {
	b.deadline = deadline
	return b
}

// WithConfirmed sets the confirmed flag
func (b *ActivityBuilder) WithConfirmed(confirmed bool) *ActivityBuilder {
	b.confirmed = confirmed
	return b
}

// Build creates the activity in the database
func (b *ActivityBuilder) Build(t *testing.T, db *gorm.DB) *domain.Activity {
	t.Helper()

	if b.userID == 0 {
		user, _ := NewUserBuilder().Build(t, db)
		b.userID = user.ID
	}

	activity := &domain.Activity{
		UserID:      b.userID,
		Name:        b.name,
		Description: b.description,
		Deadline:    b.deadline,
		Confirmed:   b.confirmed,
	}

	if err := db.Create(activity).Error; err != nil {
		t.Fatalf("failed to create activity: %v", err)
	}

	return activity
}
