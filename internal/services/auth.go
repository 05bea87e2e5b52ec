package services

import (
  "context"
  "errors"
  "fmt"
  "strings"
  "time"
  "gorm.io/gorm"
  "golang.org/x/crypto/bcrypt"
  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "github.com/recipebox/recipebox-backend/internal/logger"
  "github.com/recipebox/recipebox-backend/internal/normalization"
  "github.com/recipebox/recipebox-backend/internal/repos"
  "github.com/recipebox/recipebox-backend/internal/requestdata"
  "github.com/recipebox/recipebox-backend/internal/types"
)

type RegisterInput struct {
  Email     string  `json:"email"`
  Password  string  `json:"password"`
  Name      string  `json:"name"`
}

type TokenPair struct {
  AccessToken   string  `json:"access_token"`
  RefreshToken  string  `json:"refresh_token"`
}

type AuthService interface {
  RegisterUser(ctx context.Context, input RegisterInput) (*types.User, error)
  LoginUser(ctx context.Context, email, password string) (*TokenPair, error)
  RefreshUser(ctx context.Context, refreshToken string) (*TokenPair, error)
  LogoutUser(ctx context.Context) error
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
  GetAccessTTL() time.Duration
}

type authService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  userTokenRepo repos.UserTokenRepo
  jwtSecretKey  string
  accessTTL     time.Duration
  refreshTTL    time.Duration
}

func NewAuthService(
  db *gorm.DB,
  baseLog *logger.Logger,
  userRepo repos.UserRepo,
  userTokenRepo repos.UserTokenRepo,
  jwtSecretKey string,
  accessTTL time.Duration,
  refreshTTL time.Duration,
) AuthService {
  serviceLog := baseLog.With("service", "AuthService")
  return &authService{
    db:            db,
    log:           serviceLog,
    userRepo:      userRepo,
    userTokenRepo: userTokenRepo,
    jwtSecretKey:  jwtSecretKey,
    accessTTL:     accessTTL,
    refreshTTL:    refreshTTL,
  }
}

func (as *authService) GetAccessTTL() time.Duration {
  return as.accessTTL
}

func validateRegisterInput(input *RegisterInput) error {
  vErr := &ValidationError{}
  if !strings.Contains(input.Email, "@") || len(input.Email) < 3 {
    vErr.Add("email", "must be a valid email address")
  }
  if len(input.Password) < 5 {
    vErr.Add("password", "must be at least 5 characters")
  }
  if strings.TrimSpace(input.Name) == "" {
    vErr.Add("name", "must not be blank")
  }
  if len(vErr.Fields) > 0 {
    return vErr
  }
  return nil
}

func (as *authService) RegisterUser(ctx context.Context, input RegisterInput) (*types.User, error) {
  input.Email = normalization.ParseInputString(input.Email)
  input.Name = strings.TrimSpace(input.Name)
  if vErr := validateRegisterInput(&input); vErr != nil {
    return nil, vErr
  }

  exists, err := as.userRepo.EmailExists(ctx, nil, input.Email)
  if err != nil {
    return nil, fmt.Errorf("check email: %w", err)
  }
  if exists {
    return nil, NewValidationError("email", "already registered")
  }

  hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
  if err != nil {
    as.log.Error("Password hashing failed", "error", err)
    return nil, fmt.Errorf("hash password: %w", err)
  }

  now := time.Now().UTC()
  user := &types.User{
    ID:        uuid.New(),
    Email:     input.Email,
    Password:  string(hashed),
    Name:      input.Name,
    CreatedAt: now,
    UpdatedAt: now,
  }
  if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
      if repos.IsUniqueViolation(err) {
        return NewValidationError("email", "already registered")
      }
      return fmt.Errorf("create user: %w", err)
    }
    return nil
  }); err != nil {
    return nil, err
  }
  return user, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (*TokenPair, error) {
  email = normalization.ParseInputString(email)

  users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
  if err != nil {
    return nil, fmt.Errorf("get user by email: %w", err)
  }
  if len(users) == 0 || users[0] == nil {
    return nil, ErrUnauthorized
  }
  user := users[0]
  if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
    return nil, ErrUnauthorized
  }

  var pair *TokenPair
  if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    p, err := as.issueTokens(ctx, tx, user)
    if err != nil {
      return err
    }
    pair = p
    return nil
  }); err != nil {
    return nil, err
  }
  return pair, nil
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (*TokenPair, error) {
  if strings.TrimSpace(refreshToken) == "" {
    return nil, ErrUnauthorized
  }

  var pair *TokenPair
  if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    row, err := as.userTokenRepo.GetByRefreshToken(ctx, tx, refreshToken)
    if err != nil {
      if errors.Is(err, gorm.ErrRecordNotFound) {
        return ErrUnauthorized
      }
      return fmt.Errorf("get refresh token: %w", err)
    }
    if row.ExpiresAt.Before(time.Now()) {
      _ = as.userTokenRepo.DeleteByRefreshToken(ctx, tx, refreshToken)
      return ErrUnauthorized
    }
    users, err := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{row.UserID})
    if err != nil || len(users) == 0 || users[0] == nil {
      return ErrUnauthorized
    }
    p, err := as.issueTokens(ctx, tx, users[0])
    if err != nil {
      return err
    }
    pair = p
    return nil
  }); err != nil {
    return nil, err
  }
  return pair, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return ErrUnauthorized
  }
  return as.userTokenRepo.DeleteByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
}

// issueTokens rotates the user's refresh token and mints a fresh access JWT.
func (as *authService) issueTokens(ctx context.Context, tx *gorm.DB, user *types.User) (*TokenPair, error) {
  if err := as.userTokenRepo.DeleteByUserIDs(ctx, tx, []uuid.UUID{user.ID}); err != nil {
    return nil, fmt.Errorf("rotate refresh token: %w", err)
  }

  now := time.Now().UTC()
  claims := jwt.RegisteredClaims{
    Subject:   user.ID.String(),
    IssuedAt:  jwt.NewNumericDate(now),
    ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
  }
  accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
  if err != nil {
    as.log.Error("Access token signing failed", "error", err)
    return nil, fmt.Errorf("sign access token: %w", err)
  }

  refreshToken := uuid.NewString()
  row := &types.UserToken{
    ID:           uuid.New(),
    UserID:       user.ID,
    RefreshToken: refreshToken,
    ExpiresAt:    now.Add(as.refreshTTL),
    CreatedAt:    now,
    UpdatedAt:    now,
  }
  if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{row}); err != nil {
    return nil, fmt.Errorf("store refresh token: %w", err)
  }

  return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  claims := &jwt.RegisteredClaims{}
  token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
    }
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil || !token.Valid {
    return ctx, ErrUnauthorized
  }
  userID, err := uuid.Parse(claims.Subject)
  if err != nil || userID == uuid.Nil {
    return ctx, ErrUnauthorized
  }
  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      userID,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}
