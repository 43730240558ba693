package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coffeehub/coffeehub/internal/models"
	"github.com/coffeehub/coffeehub/internal/result"
)

// minPasswordLength is the pre-hash minimum for passwords supplied by
// non-admin users.
const minPasswordLength = 8

// PasswordHasher hashes plain passwords and verifies them against
// stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer signs bearer tokens for authenticated admins.
type TokenIssuer interface {
	Issue(userID string, isAdmin bool) (string, error)
}

// UserRequest carries the client-supplied fields for creating or
// updating a user. A blank ID on creation is replaced with a generated
// one.
type UserRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsAdmin  bool   `json:"isAdmin"`
	Password string `json:"password"`
}

// UserService implements user lifecycle, login, and profile images.
type UserService struct {
	repo   UserRepository
	hasher PasswordHasher
	tokens TokenIssuer

	now func() time.Time
}

// NewUserService constructs a UserService using the provided repository,
// password hasher, and token issuer.
func NewUserService(repo UserRepository, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{repo: repo, hasher: hasher, tokens: tokens, now: time.Now}
}

// validateUserRequest enforces the field rules shared by create and
// update: non-blank id and name, a non-blank password for admins, and
// the minimum length for any password a non-admin supplies.
func validateUserRequest(req UserRequest, hasExistingPassword bool) result.Result[UserRequest] {
	switch {
	case strings.TrimSpace(req.ID) == "",
		strings.TrimSpace(req.Name) == "":
		return result.UnprocessableEntity[UserRequest](MsgInvalidUserData)
	case req.IsAdmin && req.Password == "" && !hasExistingPassword:
		return result.UnprocessableEntity[UserRequest](MsgInvalidUserData)
	case req.IsAdmin && strings.TrimSpace(req.Password) == "" && req.Password != "":
		return result.UnprocessableEntity[UserRequest](MsgInvalidUserData)
	case !req.IsAdmin && req.Password != "" &&
		(strings.TrimSpace(req.Password) == "" || len(req.Password) < minPasswordLength):
		return result.UnprocessableEntity[UserRequest](MsgInvalidUserData)
	}
	return result.OK(req)
}

// GetAll returns every user.
func (s *UserService) GetAll(ctx context.Context) result.Result[[]models.User] {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return result.Internal[[]models.User](err.Error())
	}
	return result.OK(users)
}

// GetByID returns the user with the given id including their ledger.
func (s *UserService) GetByID(ctx context.Context, id string) result.Result[models.User] {
	return validateUserExists(ctx, s.repo, id)
}

// CreateUser registers a new user. A blank id in the request is replaced
// with a generated one; the password, when present, is hashed before
// persisting.
func (s *UserService) CreateUser(ctx context.Context, req UserRequest) result.Result[models.User] {
	if strings.TrimSpace(req.ID) == "" {
		req.ID = uuid.NewString()
	}

	free := validateUserDoesNotExist(ctx, s.repo, req.ID)

	validated := result.AndThen(free, func(string) result.Result[UserRequest] {
		return validateUserRequest(req, false)
	})

	hashed := result.AndThen(validated, func(r UserRequest) result.Result[models.User] {
		user := models.User{ID: r.ID, Name: r.Name, IsAdmin: r.IsAdmin}
		if r.Password != "" {
			hash, err := s.hasher.Hash(r.Password)
			if err != nil {
				return result.Internal[models.User](err.Error())
			}
			user.PasswordHash = hash
		}
		return result.Created(user)
	})

	return result.WithSideEffect(hashed, func(u models.User) error {
		return s.repo.Insert(ctx, u)
	})
}

// UpdateUser replaces the user's name, admin flag, and password. An
// empty password in the request keeps the stored hash; promoting a user
// without a password to admin therefore requires supplying one.
func (s *UserService) UpdateUser(ctx context.Context, id string, req UserRequest) result.Result[models.User] {
	req.ID = id

	existing := validateUserExists(ctx, s.repo, id)

	validated := result.AndThen(existing, func(u models.User) result.Result[models.User] {
		return result.Map(validateUserRequest(req, u.PasswordHash != ""), func(UserRequest) models.User {
			return u
		})
	})

	hashed := result.AndThen(validated, func(u models.User) result.Result[models.User] {
		updated := models.User{
			ID:           u.ID,
			Name:         req.Name,
			IsAdmin:      req.IsAdmin,
			PasswordHash: u.PasswordHash,
			Transactions: u.Transactions,
		}
		if req.Password != "" {
			hash, err := s.hasher.Hash(req.Password)
			if err != nil {
				return result.Internal[models.User](err.Error())
			}
			updated.PasswordHash = hash
		}
		return result.OK(updated)
	})

	return result.WithSideEffect(hashed, func(u models.User) error {
		return s.repo.Update(ctx, u.ID, u.Name, u.IsAdmin, u.PasswordHash)
	})
}

// DeleteUserByID removes a user and cascades to their profile image.
func (s *UserService) DeleteUserByID(ctx context.Context, id string) result.Result[string] {
	existing := validateUserExists(ctx, s.repo, id)

	removedImage := result.WithSideEffect(existing, func(u models.User) error {
		return s.repo.RemoveProfileImage(ctx, u.ID)
	})

	removed := result.WithSideEffect(removedImage, func(u models.User) error {
		return s.repo.RemoveByID(ctx, u.ID)
	})

	return result.Map(removed, func(models.User) string { return MsgUserDeleted })
}

// Login verifies the credentials and issues a bearer token for admins.
// A missing user is reported with the same status as a wrong password so
// callers cannot probe for ids; valid non-admin credentials are refused
// with forbidden, which is deliberately distinct.
func (s *UserService) Login(ctx context.Context, id, password string) result.Result[string] {
	found := result.MapFailureStatus(validateUserExists(ctx, s.repo, id), func(status int) int {
		if status == http.StatusNotFound {
			return http.StatusUnauthorized
		}
		return status
	})

	authenticated := result.AndThen(found, func(u models.User) result.Result[models.User] {
		if u.PasswordHash == "" || s.hasher.Compare(u.PasswordHash, password) != nil {
			return result.Unauthorized[models.User](MsgInvalidCredentials)
		}
		if !u.IsAdmin {
			return result.Forbidden[models.User](MsgAdminRequired)
		}
		return result.OK(u)
	})

	return result.AndThen(authenticated, func(u models.User) result.Result[string] {
		tok, err := s.tokens.Issue(u.ID, u.IsAdmin)
		if err != nil {
			return result.Internal[string](err.Error())
		}
		return result.OK(tok)
	})
}

// SetProfileImage stores or replaces the user's profile image.
func (s *UserService) SetProfileImage(ctx context.Context, id, encodedImage string) result.Result[models.ProfileImage] {
	existing := validateUserExists(ctx, s.repo, id)

	img := result.AndThen(existing, func(u models.User) result.Result[models.ProfileImage] {
		if encodedImage == "" {
			return result.UnprocessableEntity[models.ProfileImage](MsgInvalidUserData)
		}
		return result.OK(models.ProfileImage{
			EncodedImage: encodedImage,
			Timestamp:    s.now().UnixMilli(),
		})
	})

	return result.WithSideEffect(img, func(i models.ProfileImage) error {
		return s.repo.AddProfileImage(ctx, id, i)
	})
}

// GetProfileImage returns the user's profile image if one is set.
func (s *UserService) GetProfileImage(ctx context.Context, id string) result.Result[models.ProfileImage] {
	existing := validateUserExists(ctx, s.repo, id)

	return result.AndThen(existing, func(u models.User) result.Result[models.ProfileImage] {
		img, err := s.repo.GetProfileImage(ctx, u.ID)
		if err != nil {
			return result.Internal[models.ProfileImage](err.Error())
		}
		if img == nil {
			return result.NotFound[models.ProfileImage](MsgImageNotFound)
		}
		return result.OK(*img)
	})
}

// RemoveProfileImage deletes the user's profile image.
func (s *UserService) RemoveProfileImage(ctx context.Context, id string) result.Result[string] {
	existing := validateUserExists(ctx, s.repo, id)

	removed := result.WithSideEffect(existing, func(u models.User) error {
		return s.repo.RemoveProfileImage(ctx, u.ID)
	})

	return result.Map(removed, func(models.User) string { return MsgImageDeleted })
}
