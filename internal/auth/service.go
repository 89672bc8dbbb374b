// Package auth implements the credential and token lifecycle engine.
//
// Tokens carry no revocation state of their own. A credential's UpdatedAt
// timestamp is the revocation marker: verification rejects any token whose
// issue time predates it, so deleting and re-creating a user (or any future
// credential rotation) invalidates everything issued before the change
// without a revocation list.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/progrestian/izin/internal/common"
	"github.com/progrestian/izin/internal/password"
	"github.com/progrestian/izin/internal/token"
	"github.com/progrestian/izin/internal/users"
)

// TokenTTL is the fixed lifetime of an issued token.
const TokenTTL = 3600 * time.Second

// timeNow is a test seam for time.Now.
var timeNow = time.Now

// Hasher derives and verifies password hashes.
type Hasher interface {
	Hash(plain []byte) (salt []byte, encoded string, err error)
	Verify(encoded string, plain []byte) bool
}

// Service orchestrates the repository, the hasher and the token codec.
// It holds no cross-call state beyond the signing secret, which is
// immutable after construction; every verification re-reads the store so
// credential changes are visible immediately.
type Service struct {
	repo   users.Repository
	hasher Hasher
	secret []byte
}

func NewService(repo users.Repository, hasher Hasher, secret []byte) *Service {
	if hasher == nil {
		hasher = password.Argon2{}
	}
	return &Service{repo: repo, hasher: hasher, secret: secret}
}

// Register creates a credential for username. It returns
// common.ErrorAlreadyExists when the username is taken; the existing
// record is left untouched in that case.
func (s *Service) Register(ctx context.Context, username, pass string) error {

	salt, hash, err := s.hasher.Hash([]byte(pass))
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	c := &users.Credential{
		Username:  username,
		Salt:      salt,
		Hash:      hash,
		UpdatedAt: timeNow().Unix(),
	}

	created, err := s.repo.CreateIfAbsent(ctx, c)
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}

	if !created {
		return common.ErrorAlreadyExists
	}

	return nil
}

// Remove deletes the credential for username, returning
// common.ErrorNotFound when there is nothing to delete.
func (s *Service) Remove(ctx context.Context, username string) error {

	deleted, err := s.repo.Delete(ctx, username)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}

	if !deleted {
		return common.ErrorNotFound
	}

	return nil
}

// List returns all registered usernames in sorted order.
func (s *Service) List(ctx context.Context) ([]string, error) {
	names, err := s.repo.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return names, nil
}

// IssueToken authenticates username/pass and mints a signed token valid
// for TokenTTL. An unknown user and a wrong password both come back as
// common.ErrorInvalidCredentials.
func (s *Service) IssueToken(ctx context.Context, username, pass string) (string, error) {

	c, err := s.repo.Get(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorInvalidCredentials
		}
		return "", fmt.Errorf("error reading user: %w", err)
	}

	if !s.hasher.Verify(c.Hash, []byte(pass)) {
		return "", common.ErrorInvalidCredentials
	}

	now := timeNow().Unix()

	encoded, err := token.Encode(token.Claims{
		Subject: username,
		Issued:  now,
		Expiry:  now + int64(TokenTTL.Seconds()),
	}, s.secret)
	if err != nil {
		return "", fmt.Errorf("error encoding token: %w", err)
	}

	return encoded, nil
}

// VerifyToken checks a presented token against current credential state.
// Decode failure, a deleted subject, expiry and revocation all collapse to
// common.ErrorInvalidToken.
func (s *Service) VerifyToken(ctx context.Context, encoded string) error {

	claims, err := token.Decode(encoded, s.secret)
	if err != nil {
		return common.ErrorInvalidToken
	}

	c, err := s.repo.Get(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorInvalidToken
		}
		return fmt.Errorf("error reading user: %w", err)
	}

	now := timeNow().Unix()

	if now > claims.Expiry {
		return common.ErrorInvalidToken
	}

	// Revocation check: the credential changed after this token was minted.
	if c.UpdatedAt > claims.Issued {
		return common.ErrorInvalidToken
	}

	return nil
}
