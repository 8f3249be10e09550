package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/skillchain/skillchain-api/internal/constants"
	"github.com/skillchain/skillchain-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserRepositoryTest(t *testing.T) (*GormUserRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewUserRepository(db), db
}

func createRepoUser(t *testing.T, repo *GormUserRepository, role, email string, apparID *string) *models.User {
	t.Helper()
	user := &models.User{
		Role:         role,
		Name:         "Repo User",
		Email:        email,
		PasswordHash: "hash",
		Status:       constants.UserStatusPending,
		ApparID:      apparID,
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestUserRepositoryGetByEmailMissingReturnsNil(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)
	user, err := repo.GetByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("get by email failed: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil for missing user, got: %+v", user)
	}
}

func TestUserRepositoryGetByApparID(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)
	apparID := "APPAR-REPO-1"
	created := createRepoUser(t, repo, constants.RoleStudent, "appar@example.com", &apparID)

	found, err := repo.GetByApparID("APPAR-REPO-1")
	if err != nil {
		t.Fatalf("get by appar id failed: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("expected user %d, got: %+v", created.ID, found)
	}
}

func TestUserRepositoryListFilters(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)
	createRepoUser(t, repo, constants.RoleStudent, "alice@example.com", nil)
	createRepoUser(t, repo, constants.RoleStudent, "bob@example.com", nil)
	createRepoUser(t, repo, constants.RoleInstitute, "institute@example.com", nil)

	users, total, err := repo.List(UserListFilter{Role: constants.RoleStudent})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(users) != 2 {
		t.Fatalf("expected 2 students, got total=%d len=%d", total, len(users))
	}

	users, total, err = repo.List(UserListFilter{Keyword: "alice"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || users[0].Email != "alice@example.com" {
		t.Fatalf("expected keyword match, got total=%d users=%+v", total, users)
	}
}

func TestUserRepositoryListPagination(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)
	for i := 0; i < 5; i++ {
		createRepoUser(t, repo, constants.RoleStudent, fmt.Sprintf("page%d@example.com", i), nil)
	}

	users, total, err := repo.List(UserListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got: %d", total)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users on page 2, got: %d", len(users))
	}
}

func TestUserRepositoryCountByRole(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)
	createRepoUser(t, repo, constants.RoleCompany, "c1@example.com", nil)
	createRepoUser(t, repo, constants.RoleCompany, "c2@example.com", nil)

	count, err := repo.CountByRole(constants.RoleCompany)
	if err != nil {
		t.Fatalf("count by role failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 companies, got: %d", count)
	}
}
