package auth

import "time"

type Strategy interface {
	IssueToken(userID int64, admin bool) (string, error)
	ParseToken(token string) (int64, bool, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
