// Command seed provisions the accounts the API cannot create through its
// own surface: the first platform admin and, optionally, a company with an
// initial member login. Intended for fresh environments and local setups.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/iemarche/inquiry-service/internal/auth"
	"github.com/iemarche/inquiry-service/internal/config"
	"github.com/iemarche/inquiry-service/internal/domain"
	"github.com/iemarche/inquiry-service/internal/observability"
	"github.com/iemarche/inquiry-service/internal/persistence"
	"github.com/iemarche/inquiry-service/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	pool := pg.PoolHandle()
	admins := repository.NewAdminRepository(pool)
	companies := repository.NewCompanyRepository(pool)
	members := repository.NewMemberRepository(pool)

	if err := seedAdmin(ctx, cfg, admins, logger); err != nil {
		logger.Fatal("seed admin", zap.Error(err))
	}
	if err := seedCompany(ctx, cfg, companies, members, logger); err != nil {
		logger.Fatal("seed company", zap.Error(err))
	}
}

func seedAdmin(ctx context.Context, cfg *config.Config, admins repository.AdminRepository, logger *zap.Logger) error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Info("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD not set; skipping admin")
		return nil
	}

	if _, err := admins.GetByEmail(ctx, email); err == nil {
		logger.Info("admin already exists", zap.String("email", email))
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	admin := &domain.Admin{
		Name:         getEnvDefault("SEED_ADMIN_NAME", "platform admin"),
		Email:        email,
		PasswordHash: hash,
	}
	if err := admins.Create(ctx, admin); err != nil {
		return err
	}
	logger.Info("admin created", zap.Int64("id", admin.ID), zap.String("email", email))
	return nil
}

func seedCompany(ctx context.Context, cfg *config.Config, companies repository.CompanyRepository, members repository.MemberRepository, logger *zap.Logger) error {
	name := os.Getenv("SEED_COMPANY_NAME")
	memberEmail := os.Getenv("SEED_MEMBER_EMAIL")
	memberPassword := os.Getenv("SEED_MEMBER_PASSWORD")
	if name == "" || memberEmail == "" || memberPassword == "" {
		logger.Info("SEED_COMPANY_* / SEED_MEMBER_* not set; skipping company")
		return nil
	}

	if _, err := members.GetByEmail(ctx, memberEmail); err == nil {
		logger.Info("member already exists", zap.String("email", memberEmail))
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	company := &domain.Company{
		Name:       name,
		Prefecture: getEnvDefault("SEED_COMPANY_PREFECTURE", "東京都"),
		Profile:    os.Getenv("SEED_COMPANY_PROFILE"),
		IsActive:   true,
	}
	if err := companies.Create(ctx, company); err != nil {
		return err
	}

	hash, err := auth.HashPassword(memberPassword, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	member := &domain.Member{
		CompanyID:    company.ID,
		Name:         getEnvDefault("SEED_MEMBER_NAME", name+" staff"),
		Email:        memberEmail,
		PasswordHash: hash,
		Active:       true,
	}
	if err := members.Create(ctx, member); err != nil {
		return err
	}
	logger.Info("company and member created",
		zap.Int64("company_id", company.ID),
		zap.Int64("member_id", member.ID))
	return nil
}

func getEnvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
