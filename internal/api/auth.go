package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pribylovaa/nutricare-client/internal/client"
	"github.com/pribylovaa/nutricare-client/internal/models"
	"github.com/pribylovaa/nutricare-client/internal/pkg/log"
	"github.com/pribylovaa/nutricare-client/internal/pkg/redact"
	"github.com/pribylovaa/nutricare-client/internal/session"
)

const (
	pathRegister      = "/users/register/"
	pathLogin         = "/users/login/"
	pathMe            = "/users/me/"
	pathProfile       = "/users/profile/"
	pathProfileUpdate = "/users/profile/update/"
)

// Auth — вход, регистрация, выход и профиль пользователя.
// Пару токенов меняют только Login/Register (Establish) и Logout (Clear).
type Auth struct {
	doer    Doer
	session *session.Session
}

// Register создаёт пользователя и сразу выполняет вход с теми же данными.
func (a *Auth) Register(ctx context.Context, in models.RegisterRequest) (models.User, error) {
	const op = "api/Auth.Register"

	if err := required("email", in.Email); err != nil {
		return models.User{}, err
	}
	if err := required("password", in.Password); err != nil {
		return models.User{}, err
	}
	if in.Password2 == "" {
		in.Password2 = in.Password
	}
	if in.Password != in.Password2 {
		return models.User{}, invalid("password2", "passwords do not match")
	}
	if err := required("first_name", in.FirstName); err != nil {
		return models.User{}, err
	}
	if err := required("last_name", in.LastName); err != nil {
		return models.User{}, err
	}

	req, err := client.NewRequest(http.MethodPost, pathRegister, in)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	req.Anonymous = true

	var out models.RegisterResponse
	if err := send(ctx, a.doer, req, &out); err != nil {
		return models.User{}, err
	}
	log.From(ctx).Info("user registered", slog.String("email", redact.Email(in.Email)))

	return a.Login(ctx, in.Email, in.Password)
}

// Login обменивает e-mail/пароль на пару токенов, сохраняет её и
// возвращает текущего пользователя. 401 здесь — неверные учётные данные.
// Если /users/me/ после входа не отвечает, пара этого входа удаляется:
// Login либо возвращает пользователя, либо не оставляет сессии.
func (a *Auth) Login(ctx context.Context, email, password string) (models.User, error) {
	const op = "api/Auth.Login"

	if err := required("email", email); err != nil {
		return models.User{}, err
	}
	if err := required("password", password); err != nil {
		return models.User{}, err
	}

	req, err := client.NewRequest(http.MethodPost, pathLogin, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	req.Anonymous = true

	var pair models.TokenPair
	if err := send(ctx, a.doer, req, &pair); err != nil {
		return models.User{}, err
	}

	// Дальнейшие записи этого входа (включая http_out) несут e-mail.
	ctx, l := log.With(ctx, slog.String("email", redact.Email(email)))

	creds := session.Credentials{AccessToken: pair.Access, RefreshToken: pair.Refresh}
	if err := a.session.Establish(ctx, creds); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user, err := a.CurrentUser(ctx)
	if err != nil {
		// Пару мог уже сменить параллельный вход, её не трогаем.
		if cerr := a.session.ClearIf(ctx, creds.RefreshToken); cerr != nil && !errors.Is(cerr, session.ErrSessionChanged) {
			l.Warn("drop session after failed login", slog.Any("err", cerr))
		}
		return models.User{}, err
	}
	l.Info("logged in", slog.String("user_id", user.ID))

	return user, nil
}

// Logout удаляет пару токенов. Бэкенд при этом не вызывается.
func (a *Auth) Logout(ctx context.Context) error {
	const op = "api/Auth.Logout"

	if err := a.session.Clear(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Check восстанавливает сохранённую пару и проверяет её запросом /users/me/.
// ok == false — сессии нет или она истекла (пара к этому моменту очищена
// refresh-потоком). Прочие ошибки возвращаются как есть, пара не трогается.
func (a *Auth) Check(ctx context.Context) (user models.User, ok bool, err error) {
	const op = "api/Auth.Check"

	if err := a.session.Restore(ctx); err != nil {
		return models.User{}, false, fmt.Errorf("%s: %w", op, err)
	}
	if !a.session.Authenticated() {
		return models.User{}, false, nil
	}

	user, err = a.CurrentUser(ctx)
	if errors.Is(err, client.ErrSessionExpired) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, err
	}

	return user, true, nil
}

// Status описывает сессию без обращения к бэкенду. Пара перечитывается
// из хранилища: её мог сменить другой процесс. Токены показываются только
// отпечатком; claims читаются без проверки подписи.
func (a *Auth) Status(ctx context.Context, now time.Time) models.SessionStatus {
	creds, err := a.session.Reload(ctx)
	if err != nil {
		log.From(ctx).Warn("session reload failed", slog.Any("err", err))
		creds = a.session.Credentials()
	}

	st := models.SessionStatus{Authenticated: creds.AccessToken != ""}
	st.Access = tokenView(creds.AccessToken, now)
	st.Refresh = tokenView(creds.RefreshToken, now)

	return st
}

func tokenView(token string, now time.Time) *models.TokenView {
	if token == "" {
		return nil
	}

	v := &models.TokenView{Preview: redact.Preview(token)}
	info, err := session.Inspect(token, now)
	if err != nil {
		return v
	}

	v.UserID = info.UserID
	v.TokenType = info.TokenType
	v.Expired = info.Expired
	if !info.ExpiresAt.IsZero() {
		v.ExpiresAt = info.ExpiresAt.Format(time.RFC3339)
	}

	return v
}

func (a *Auth) CurrentUser(ctx context.Context) (models.User, error) {
	var u models.User
	err := call(ctx, a.doer, http.MethodGet, pathMe, nil, &u)
	return u, err
}

func (a *Auth) Profile(ctx context.Context) (models.UserProfile, error) {
	var p models.UserProfile
	err := call(ctx, a.doer, http.MethodGet, pathProfile, nil, &p)
	return p, err
}

// UpdateProfile отправляет частичное обновление профиля.
func (a *Auth) UpdateProfile(ctx context.Context, in models.ProfileUpdate) (models.UserProfile, error) {
	if err := validateProfile(in); err != nil {
		return models.UserProfile{}, err
	}

	var p models.UserProfile
	err := call(ctx, a.doer, http.MethodPatch, pathProfileUpdate, in, &p)
	return p, err
}

func validateProfile(in models.ProfileUpdate) error {
	if in.Empty() {
		return invalid("profile", "nothing to update")
	}
	if in.Age != nil && (*in.Age <= 0 || *in.Age > 150) {
		return invalid("age", "must be between 1 and 150")
	}
	if in.Weight != nil && *in.Weight <= 0 {
		return invalid("weight", "must be positive")
	}
	if in.Height != nil && *in.Height <= 0 {
		return invalid("height", "must be positive")
	}
	if in.Gender != nil {
		if err := oneOf("gender", *in.Gender, Genders); err != nil {
			return err
		}
	}
	if in.ActivityLevel != nil {
		if err := oneOf("activity_level", *in.ActivityLevel, ActivityLevel); err != nil {
			return err
		}
	}
	if in.Goal != nil {
		if err := oneOf("goal", *in.Goal, Goals); err != nil {
			return err
		}
	}

	return nil
}
