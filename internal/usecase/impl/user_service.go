// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"contactbook/config"
	deliverycontext "contactbook/internal/delivery/context"
	"contactbook/internal/domain/entity"
	domainerrors "contactbook/internal/domain/errors"
	"contactbook/internal/domain/repository"
	"contactbook/internal/domain/service"
	"contactbook/internal/usecase"
	"contactbook/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	subjectVerifyEmail   = "Confirm your email"
	subjectResetPassword = "Important: Update your account information"
	tokenTypeBearer      = "bearer"
)

var allowedAvatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// userService implements the UserUsecase interface.
type userService struct {
	txManager      repository.TransactionManager
	userRepo       repository.UserRepository
	hasher         service.PasswordHasher
	tokenService   service.TokenService
	identityCache  service.IdentityCache
	avatarResolver service.AvatarResolver
	mailSender     service.MailSender
	fileHost       service.FileHost
	maxAvatarBytes int64
	logger         *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	UserRepo       repository.UserRepository
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	IdentityCache  service.IdentityCache
	AvatarResolver service.AvatarResolver
	MailSender     service.MailSender
	FileHost       service.FileHost
	Config         *config.Config
	Logger         *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	var maxAvatarBytes int64
	if params.Config != nil && params.Config.FileHost != nil {
		maxAvatarBytes = params.Config.FileHost.MaxAvatarBytes
	}

	return &userService{
		txManager:      params.TxManager,
		userRepo:       params.UserRepo,
		hasher:         params.Hasher,
		tokenService:   params.TokenService,
		identityCache:  params.IdentityCache,
		avatarResolver: params.AvatarResolver,
		mailSender:     params.MailSender,
		fileHost:       params.FileHost,
		maxAvatarBytes: maxAvatarBytes,
		logger:         params.Logger,
	}
}

// Register creates an unconfirmed account and mails a verification link.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         entity.RoleUser,
	}

	// A missing avatar never blocks registration.
	if avatarURL, err := srv.avatarResolver.Resolve(ctx, input.Email); err != nil {
		logger.Warn("avatar lookup failed", slog.Any("error", err))
	} else {
		user.AvatarURL = avatarURL
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		if err := ensureUnused(ctx, userRepo.FindByEmail, input.Email, "email"); err != nil {
			return err
		}
		if err := ensureUnused(ctx, userRepo.FindByUsername, input.Username, "username"); err != nil {
			return err
		}

		return userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to register user")
	}
	logger.Info("user registered", slog.String("userID", user.ID.String()))

	srv.sendVerification(ctx, user, input.Host)

	return user, nil
}

func ensureUnused(ctx context.Context, find func(context.Context, string) (*entity.User, error), value, field string) error {
	_, err := find(ctx, value)
	switch {
	case err == nil:
		return domainerrors.ErrUserAlreadyExists.WithDetails("account with this " + field + " already exists")
	case errors.Is(err, repository.ErrUserNotFound):
		return nil
	default:
		return errors.Wrapf(err, "failed to look up user by %s", field)
	}
}

// Login exchanges a username and password for a session token.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown username")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}
	if !user.Confirmed {
		return nil, domainerrors.ErrEmailNotConfirmed
	}

	token, err := srv.tokenService.Issue(&service.TokenClaims{Subject: user.Username}, service.PurposeSession, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	return &usecase.LoginOutput{AccessToken: token, TokenType: tokenTypeBearer}, nil
}

func (srv *userService) ConfirmEmail(ctx context.Context, token string) (bool, error) {
	claims, err := srv.tokenService.Verify(token, service.PurposeEmailVerification)
	if err != nil {
		return false, errors.Wrap(domainerrors.ErrInvalidVerificationToken, err.Error())
	}

	user, err := srv.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, domainerrors.ErrVerificationFailed.WrapMessage("token subject does not exist")
		}

		return false, errors.Wrap(err, "failed to find user")
	}
	if user.Confirmed {
		return true, nil
	}

	if err := srv.userRepo.SetConfirmed(ctx, user.Email); err != nil {
		return false, errors.Wrap(err, "failed to confirm email")
	}
	srv.identityCache.Invalidate(user.Username)

	return false, nil
}

func (srv *userService) RequestEmail(ctx context.Context, email, host string) (bool, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to find user")
	}
	if user.Confirmed {
		return true, nil
	}

	srv.sendVerification(ctx, user, host)

	return false, nil
}

// ResetPassword mails a link that, once followed, replaces the password.
// The new password travels inside the token only as a hash.
func (srv *userService) ResetPassword(ctx context.Context, input usecase.ResetPasswordInput) error {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logger.Debug("password reset for unknown email")

			return nil
		}

		return errors.Wrap(err, "failed to find user")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	token, err := srv.tokenService.Issue(&service.TokenClaims{Subject: user.Email, Password: hash}, service.PurposePasswordReset, 0)
	if err != nil {
		return errors.Wrap(err, "failed to issue reset token")
	}

	srv.sendMail(ctx, &service.MailMessage{
		Template:  service.TemplateResetPassword,
		Recipient: user.Email,
		Subject:   subjectResetPassword,
		Variables: map[string]string{
			"username":   user.Username,
			"reset_link": input.Host + "api/auth/confirm_reset_password/" + token,
		},
	})

	return nil
}

func (srv *userService) ConfirmResetPassword(ctx context.Context, token string) error {
	claims, err := srv.tokenService.Verify(token, service.PurposePasswordReset)
	if err != nil {
		return errors.Wrap(domainerrors.ErrInvalidVerificationToken, err.Error())
	}

	user, err := srv.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrVerificationFailed.WrapMessage("token subject does not exist")
		}

		return errors.Wrap(err, "failed to find user")
	}

	if err := srv.userRepo.SetPasswordHash(ctx, user.Email, claims.Password); err != nil {
		return errors.Wrap(err, "failed to update password")
	}
	srv.identityCache.Invalidate(user.Username)

	return nil
}

// UpdateAvatar uploads a new avatar for the principal and returns the
// updated account.
func (srv *userService) UpdateAvatar(ctx context.Context, principal *entity.User, input usecase.UpdateAvatarInput) (*entity.User, error) {
	if principal == nil {
		return nil, domainerrors.ErrUnauthenticated
	}
	if !allowedAvatarTypes[input.ContentType] {
		return nil, domainerrors.ErrUnsupportedFile.WithDetails("content type " + input.ContentType + " is not allowed")
	}
	if input.Size <= 0 {
		return nil, domainerrors.ErrUnsupportedFile.WithDetails("file is empty")
	}
	if srv.maxAvatarBytes > 0 && input.Size > srv.maxAvatarBytes {
		return nil, domainerrors.ErrUnsupportedFile.WithDetails("file exceeds " + util.FormatBytes(srv.maxAvatarBytes))
	}

	url, err := srv.fileHost.Upload(ctx, input.File, input.Size, input.ContentType, principal.Username)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrUnavailable, err.Error())
	}

	if err := srv.userRepo.SetAvatar(ctx, principal.Email, url); err != nil {
		return nil, errors.Wrap(err, "failed to store avatar url")
	}
	srv.identityCache.Invalidate(principal.Username)

	updated := principal.Clone()
	updated.AvatarURL = url

	return updated, nil
}

func (srv *userService) sendVerification(ctx context.Context, user *entity.User, host string) {
	token, err := srv.tokenService.Issue(&service.TokenClaims{Subject: user.Email}, service.PurposeEmailVerification, 0)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Error("failed to issue verification token", slog.Any("error", err))

		return
	}

	srv.sendMail(ctx, &service.MailMessage{
		Template:  service.TemplateVerifyEmail,
		Recipient: user.Email,
		Subject:   subjectVerifyEmail,
		Variables: map[string]string{
			"host":     host,
			"username": user.Username,
			"token":    token,
		},
	})
}

// sendMail logs delivery failures and never returns them.
func (srv *userService) sendMail(ctx context.Context, msg *service.MailMessage) {
	msg.RequestID = deliverycontext.GetRequestIDFromContext(ctx)

	if err := srv.mailSender.Send(ctx, msg); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Error("failed to send mail",
			slog.String("template", msg.Template),
			slog.Any("error", err),
		)
	}
}
