package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/iemarche/inquiry-service/internal/auth"
	"github.com/iemarche/inquiry-service/internal/config"
	"github.com/iemarche/inquiry-service/internal/domain"
	"github.com/iemarche/inquiry-service/internal/service"
)

type memAdminRepo struct {
	nextID int64
	admins map[int64]*domain.Admin
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{nextID: 1, admins: map[int64]*domain.Admin{}}
}

func (r *memAdminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	admin.ID = r.nextID
	r.nextID++
	clone := *admin
	r.admins[admin.ID] = &clone
	return nil
}

func (r *memAdminRepo) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	stored, ok := r.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *memAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	for _, stored := range r.admins {
		if strings.EqualFold(stored.Email, email) {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memMemberRepo struct {
	nextID  int64
	members map[int64]*domain.Member
}

func newMemMemberRepo() *memMemberRepo {
	return &memMemberRepo{nextID: 1, members: map[int64]*domain.Member{}}
}

func (r *memMemberRepo) Create(ctx context.Context, member *domain.Member) error {
	member.ID = r.nextID
	r.nextID++
	clone := *member
	r.members[member.ID] = &clone
	return nil
}

func (r *memMemberRepo) Update(ctx context.Context, member *domain.Member) error {
	if _, ok := r.members[member.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *member
	r.members[member.ID] = &clone
	return nil
}

func (r *memMemberRepo) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	stored, ok := r.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *memMemberRepo) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	for _, stored := range r.members {
		if strings.EqualFold(stored.Email, email) {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memMemberRepo) ListByCompany(ctx context.Context, companyID int64) ([]domain.Member, error) {
	var result []domain.Member
	for _, stored := range r.members {
		if stored.CompanyID == companyID {
			result = append(result, *stored)
		}
	}
	return result, nil
}

type memCustomerRepo struct {
	nextID    int64
	customers map[int64]*domain.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{nextID: 1, customers: map[int64]*domain.Customer{}}
}

func (r *memCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	customer.ID = r.nextID
	r.nextID++
	clone := *customer
	r.customers[customer.ID] = &clone
	return nil
}

func (r *memCustomerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	if _, ok := r.customers[customer.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *customer
	r.customers[customer.ID] = &clone
	return nil
}

func (r *memCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	stored, ok := r.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *memCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	for _, stored := range r.customers {
		if strings.EqualFold(stored.Email, email) {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newAuthFixture(t *testing.T) (*service.AuthService, *memAdminRepo, *memMemberRepo, *memCustomerRepo) {
	t.Helper()
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4, // keep the suite fast
		},
	}
	admins := newMemAdminRepo()
	members := newMemMemberRepo()
	customers := newMemCustomerRepo()
	svc := service.NewAuthService(cfg, service.AuthDependencies{
		AdminRepo:    admins,
		MemberRepo:   members,
		CustomerRepo: customers,
	})
	return svc, admins, members, customers
}

func TestRegisterCustomerIssuesToken(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	customer, token, _, err := svc.RegisterCustomer(context.Background(), "佐藤 花子", "hanako@example.com", "pass-123", nil)
	require.NoError(t, err)
	require.NotZero(t, customer.ID)
	require.NotEmpty(t, customer.PasswordHash)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, customer.ID, claims.AccountID)
	require.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestRegisterCustomerDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, _, _, err := svc.RegisterCustomer(context.Background(), "佐藤 花子", "hanako@example.com", "pass-123", nil)
	require.NoError(t, err)

	_, _, _, err = svc.RegisterCustomer(context.Background(), "別の花子", "hanako@example.com", "pass-456", nil)
	requireDomainError(t, err, "CONFLICT")
}

func TestLoginCustomerHidesAccountExistence(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, _, _, err := svc.RegisterCustomer(context.Background(), "佐藤 花子", "hanako@example.com", "pass-123", nil)
	require.NoError(t, err)

	_, _, _, err = svc.LoginCustomer(context.Background(), "hanako@example.com", "wrong")
	requireDomainError(t, err, "UNAUTHORIZED")

	_, _, _, err = svc.LoginCustomer(context.Background(), "nobody@example.com", "pass-123")
	requireDomainError(t, err, "UNAUTHORIZED")
}

func TestLoginMemberScopesTokenToCompanyAndRejectsDeactivated(t *testing.T) {
	svc, _, members, _ := newAuthFixture(t)

	hash, err := auth.HashPassword("pass-123", 4)
	require.NoError(t, err)
	active := &domain.Member{CompanyID: 3, Name: "山田 次郎", Email: "jiro@example.com", PasswordHash: hash, Active: true}
	dormant := &domain.Member{CompanyID: 3, Name: "退職 済", Email: "old@example.com", PasswordHash: hash, Active: false}
	require.NoError(t, members.Create(context.Background(), active))
	require.NoError(t, members.Create(context.Background(), dormant))

	member, token, _, err := svc.LoginMember(context.Background(), "jiro@example.com", "pass-123")
	require.NoError(t, err)
	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleMember, claims.Role)
	require.NotNil(t, claims.CompanyID)
	require.Equal(t, member.CompanyID, *claims.CompanyID)

	_, _, _, err = svc.LoginMember(context.Background(), "old@example.com", "pass-123")
	requireDomainError(t, err, "UNAUTHORIZED")
}

func TestUpdateCustomerProfile(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	customer, _, _, err := svc.RegisterCustomer(context.Background(), "佐藤 花子", "hanako@example.com", "pass-123", nil)
	require.NoError(t, err)

	phone := "090-0000-0000"
	updated, err := svc.UpdateCustomerProfile(context.Background(), customer.ID, "佐藤 はな子", &phone)
	require.NoError(t, err)
	require.Equal(t, "佐藤 はな子", updated.Name)
	require.NotNil(t, updated.Phone)
	require.Equal(t, "hanako@example.com", updated.Email, "email is not editable")

	_, err = svc.UpdateCustomerProfile(context.Background(), customer.ID, "  ", nil)
	requireDomainError(t, err, "VALIDATION_FAILED")

	_, err = svc.UpdateCustomerProfile(context.Background(), 999, "誰か", nil)
	requireDomainError(t, err, "NOT_FOUND")
}

func TestSetMemberActiveIsAdminOnly(t *testing.T) {
	svc, _, members, _ := newAuthFixture(t)

	hash, err := auth.HashPassword("pass-123", 4)
	require.NoError(t, err)
	member := &domain.Member{CompanyID: 3, Name: "山田 次郎", Email: "jiro@example.com", PasswordHash: hash, Active: true}
	require.NoError(t, members.Create(context.Background(), member))

	_, err = svc.SetMemberActive(context.Background(), memberActor(3), member.ID, false)
	requireDomainError(t, err, "FORBIDDEN")

	deactivated, err := svc.SetMemberActive(context.Background(), adminActor(), member.ID, false)
	require.NoError(t, err)
	require.False(t, deactivated.Active)

	// a deactivated member can no longer log in
	_, _, _, err = svc.LoginMember(context.Background(), "jiro@example.com", "pass-123")
	requireDomainError(t, err, "UNAUTHORIZED")

	listed, err := svc.ListCompanyMembers(context.Background(), adminActor(), 3)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	_, err = svc.ListCompanyMembers(context.Background(), customerActor(7), 3)
	requireDomainError(t, err, "FORBIDDEN")
}

func TestLoginAdmin(t *testing.T) {
	svc, admins, _, _ := newAuthFixture(t)

	hash, err := auth.HashPassword("pass-123", 4)
	require.NoError(t, err)
	require.NoError(t, admins.Create(context.Background(), &domain.Admin{Name: "運営 太郎", Email: "admin@example.com", PasswordHash: hash}))

	_, token, _, err := svc.LoginAdmin(context.Background(), "admin@example.com", "pass-123")
	require.NoError(t, err)
	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, claims.Role)
}
