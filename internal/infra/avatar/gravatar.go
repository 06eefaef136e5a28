// Package avatar derives default profile pictures for new accounts.
package avatar

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"

	"contactbook/config"
	"contactbook/internal/domain/service"
	"contactbook/internal/errors"
)

type gravatarResolver struct {
	baseURL string
}

// NewGravatarResolver builds avatar URLs from the Gravatar hash of the email.
func NewGravatarResolver(cfg *config.Config) (service.AvatarResolver, error) {
	base := cfg.Avatar.BaseURL
	if _, err := url.Parse(base); err != nil {
		return nil, errors.Wrapf(err, "invalid avatar base url %q", base)
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return &gravatarResolver{baseURL: base}, nil
}

func (r *gravatarResolver) Resolve(_ context.Context, email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", errors.New("email is required to resolve an avatar")
	}

	sum := md5.Sum([]byte(normalized))

	return r.baseURL + hex.EncodeToString(sum[:]), nil
}
