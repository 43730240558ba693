package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/coffeehub/coffeehub/internal/models"
)

func newUserService(repo *mockUserRepo) *UserService {
	return NewUserService(repo, plainHasher{}, staticTokens{})
}

func TestCreateUser_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  UserRequest
	}{
		{"blank name", UserRequest{ID: "u1", Name: "  "}},
		{"admin without password", UserRequest{ID: "a1", Name: "Admin", IsAdmin: true}},
		{"admin with blank password", UserRequest{ID: "a1", Name: "Admin", IsAdmin: true, Password: "   "}},
		{"short non-admin password", UserRequest{ID: "u1", Name: "Bob", Password: "short"}},
		{"blank non-admin password", UserRequest{ID: "u1", Name: "Bob", Password: "        "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inserted := false
			repo := &mockUserRepo{
				InsertFunc: func(ctx context.Context, user models.User) error {
					inserted = true
					return nil
				},
			}
			res := newUserService(repo).CreateUser(context.Background(), tt.req)
			if res.Status() != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d (%q); want 422", res.Status(), res.Err())
			}
			if res.Err() != MsgInvalidUserData {
				t.Errorf("error = %q; want %q", res.Err(), MsgInvalidUserData)
			}
			if inserted {
				t.Error("invalid user must not be persisted")
			}
		})
	}
}

func TestCreateUser_Conflict(t *testing.T) {
	repo := &mockUserRepo{
		HasUserWithIDFunc: func(ctx context.Context, id string) (bool, error) {
			return true, nil
		},
	}
	res := newUserService(repo).CreateUser(context.Background(), UserRequest{ID: "taken", Name: "Bob"})
	if res.Status() != http.StatusConflict {
		t.Fatalf("status = %d; want 409", res.Status())
	}
	if res.Err() != MsgUserAlreadyExists {
		t.Errorf("error = %q; want %q", res.Err(), MsgUserAlreadyExists)
	}
}

func TestCreateUser_HashesPassword(t *testing.T) {
	var inserted models.User
	repo := &mockUserRepo{
		InsertFunc: func(ctx context.Context, user models.User) error {
			inserted = user
			return nil
		},
	}
	res := newUserService(repo).CreateUser(context.Background(), UserRequest{
		ID: "admin", Name: "Admin", IsAdmin: true, Password: "adminpw12",
	})
	if res.Status() != http.StatusCreated {
		t.Fatalf("status = %d (%q); want 201", res.Status(), res.Err())
	}
	if inserted.PasswordHash != "hashed:adminpw12" {
		t.Errorf("stored hash = %q; want the hashed password, never the plain one", inserted.PasswordHash)
	}
	if res.Data().ID != "admin" || !res.Data().IsAdmin {
		t.Errorf("created user = %+v; want admin/true", res.Data())
	}
}

func TestCreateUser_GeneratesID(t *testing.T) {
	var inserted models.User
	repo := &mockUserRepo{
		InsertFunc: func(ctx context.Context, user models.User) error {
			inserted = user
			return nil
		},
	}
	res := newUserService(repo).CreateUser(context.Background(), UserRequest{Name: "Bob"})
	if res.Status() != http.StatusCreated {
		t.Fatalf("status = %d (%q); want 201", res.Status(), res.Err())
	}
	if strings.TrimSpace(inserted.ID) == "" {
		t.Error("a blank id must be replaced with a generated one")
	}
}

func TestCreateUser_PasswordOptionalForNonAdmin(t *testing.T) {
	var inserted models.User
	repo := &mockUserRepo{
		InsertFunc: func(ctx context.Context, user models.User) error {
			inserted = user
			return nil
		},
	}
	res := newUserService(repo).CreateUser(context.Background(), UserRequest{ID: "u1", Name: "Bob"})
	if res.Status() != http.StatusCreated {
		t.Fatalf("status = %d (%q); want 201", res.Status(), res.Err())
	}
	if inserted.PasswordHash != "" {
		t.Errorf("hash = %q; want empty for a passwordless user", inserted.PasswordHash)
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	res := newUserService(&mockUserRepo{}).UpdateUser(context.Background(), "ghost", UserRequest{Name: "Bob"})
	if res.Status() != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", res.Status())
	}
}

func TestUpdateUser_KeepsHashWhenPasswordOmitted(t *testing.T) {
	var gotHash string
	repo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return &models.User{ID: "admin", Name: "Admin", IsAdmin: true, PasswordHash: "hashed:old"}, nil
		},
		UpdateFunc: func(ctx context.Context, id, name string, isAdmin bool, passwordHash string) error {
			gotHash = passwordHash
			return nil
		},
	}
	res := newUserService(repo).UpdateUser(context.Background(), "admin", UserRequest{
		Name: "Renamed", IsAdmin: true,
	})
	if !res.IsSuccess() {
		t.Fatalf("result = %d %q; want success", res.Status(), res.Err())
	}
	if gotHash != "hashed:old" {
		t.Errorf("hash = %q; want the existing hash kept", gotHash)
	}
}

func TestUpdateUser_PromotionWithoutPasswordRejected(t *testing.T) {
	repo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return &models.User{ID: "u1", Name: "Bob"}, nil
		},
	}
	res := newUserService(repo).UpdateUser(context.Background(), "u1", UserRequest{
		Name: "Bob", IsAdmin: true,
	})
	if res.Status() != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d; want 422: an admin must end up with a password", res.Status())
	}
}

func TestDeleteUserByID_CascadesToProfileImage(t *testing.T) {
	var calls []string
	repo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return userWith("u1"), nil
		},
		RemoveProfileImageFunc: func(ctx context.Context, id string) error {
			calls = append(calls, "image")
			return nil
		},
		RemoveByIDFunc: func(ctx context.Context, id string) error {
			calls = append(calls, "user")
			return nil
		},
	}
	res := newUserService(repo).DeleteUserByID(context.Background(), "u1")
	if !res.IsSuccess() || res.Data() != MsgUserDeleted {
		t.Fatalf("result = %d %q %q; want 200 USER_DELETED", res.Status(), res.Err(), res.Data())
	}
	if len(calls) != 2 || calls[0] != "image" || calls[1] != "user" {
		t.Errorf("calls = %v; want image removal before user removal", calls)
	}
}

func TestLogin(t *testing.T) {
	repo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			switch id {
			case "admin":
				return &models.User{ID: "admin", Name: "Admin", IsAdmin: true, PasswordHash: "hashed:adminpw12"}, nil
			case "bob":
				return &models.User{ID: "bob", Name: "Bob", PasswordHash: "hashed:bobpw1234"}, nil
			case "nopass":
				return &models.User{ID: "nopass", Name: "NoPass"}, nil
			}
			return nil, nil
		},
	}
	svc := newUserService(repo)

	tests := []struct {
		name       string
		id         string
		password   string
		wantStatus int
	}{
		{"admin correct credentials", "admin", "adminpw12", http.StatusOK},
		{"admin wrong password", "admin", "wrong", http.StatusUnauthorized},
		{"non-admin correct credentials", "bob", "bobpw1234", http.StatusForbidden},
		{"nonexistent id is unauthorized, not not-found", "ghost", "whatever", http.StatusUnauthorized},
		{"user without password", "nopass", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := svc.Login(context.Background(), tt.id, tt.password)
			if res.Status() != tt.wantStatus {
				t.Fatalf("status = %d (%q); want %d", res.Status(), res.Err(), tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && res.Data() != "token-for-admin" {
				t.Errorf("token = %q; want token-for-admin", res.Data())
			}
		})
	}
}

func TestProfileImage_Lifecycle(t *testing.T) {
	var stored *models.ProfileImage
	repo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return userWith("u1"), nil
		},
		AddProfileImageFunc: func(ctx context.Context, id string, img models.ProfileImage) error {
			stored = &img
			return nil
		},
		GetProfileImageFunc: func(ctx context.Context, id string) (*models.ProfileImage, error) {
			return stored, nil
		},
		RemoveProfileImageFunc: func(ctx context.Context, id string) error {
			stored = nil
			return nil
		},
	}
	svc := newUserService(repo)
	ctx := context.Background()

	if res := svc.GetProfileImage(ctx, "u1"); res.Status() != http.StatusNotFound {
		t.Fatalf("get before set: status = %d; want 404", res.Status())
	}

	if res := svc.SetProfileImage(ctx, "u1", "b64data"); !res.IsSuccess() {
		t.Fatalf("set: result = %d %q; want success", res.Status(), res.Err())
	}

	got := svc.GetProfileImage(ctx, "u1")
	if !got.IsSuccess() || got.Data().EncodedImage != "b64data" {
		t.Fatalf("get after set = %d %+v; want the stored image", got.Status(), got.Data())
	}

	if res := svc.RemoveProfileImage(ctx, "u1"); !res.IsSuccess() {
		t.Fatalf("remove: result = %d %q; want success", res.Status(), res.Err())
	}
	if stored != nil {
		t.Error("image must be gone after removal")
	}
}

func TestSetProfileImage_EmptyPayloadRejected(t *testing.T) {
	repo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return userWith("u1"), nil
		},
	}
	res := newUserService(repo).SetProfileImage(context.Background(), "u1", "")
	if res.Status() != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d; want 422", res.Status())
	}
}
