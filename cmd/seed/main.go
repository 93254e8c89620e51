package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"himti/internal/auth"
	"himti/internal/config"
	"himti/internal/db"
	apperr "himti/internal/errors"
	"himti/internal/logger"
	"himti/internal/model"
	"himti/internal/repository"
	"himti/internal/service"
)

const seedTimeout = 5 * time.Minute

// SeedFile is the layout of the JSON passed with -file.
type SeedFile struct {
	Accounts    []service.CreateUserInput `json:"accounts"`
	Departments []SeedDepartment          `json:"departments"`
}

type SeedDepartment struct {
	Department string         `json:"department"`
	Divisions  []SeedDivision `json:"divisions"`
}

type SeedDivision struct {
	Division string                `json:"division"`
	Members  []service.MemberInput `json:"members"`
}

type seeder struct {
	users       service.UserService
	departments service.DepartmentService
	divisions   service.DivisionService
	members     service.MemberService
	deptRepo    repository.DepartmentRepository
	divRepo     repository.DivisionRepository
	db          *gorm.DB
	log         *zap.Logger
}

func main() {
	file := flag.String("file", "", "path to a JSON seed file")
	adminEmail := flag.String("super-admin-email", "", "create a SUPER_ADMIN with this email")
	adminPassword := flag.String("super-admin-password", "", "password for the SUPER_ADMIN")
	adminName := flag.String("super-admin-name", "Super Admin", "display name for the SUPER_ADMIN")
	backfill := flag.Bool("backfill-slugs", false, "recompute department and division slugs")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL, false)
	if err != nil {
		zl.Fatal("connect database", zap.Error(err))
	}
	defer db.Close(gormDB)

	s := newSeeder(gormDB, zl)
	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	if *adminEmail != "" {
		if err := s.superAdmin(ctx, *adminEmail, *adminPassword, *adminName); err != nil {
			zl.Fatal("create super admin", zap.Error(err))
		}
	}
	if *file != "" {
		data, err := loadSeedFile(*file)
		if err != nil {
			zl.Fatal("read seed file", zap.Error(err))
		}
		if err := s.run(ctx, data); err != nil {
			zl.Fatal("seed", zap.Error(err))
		}
	}
	if *backfill {
		if err := s.backfillSlugs(ctx); err != nil {
			zl.Fatal("backfill slugs", zap.Error(err))
		}
	}
	zl.Info("seed completed")
}

func newSeeder(gormDB *gorm.DB, log *zap.Logger) *seeder {
	// the seeder writes straight to the database, so the org cache runs without redis
	orgCache := service.NewOrgCache(nil, log)
	accounts := repository.NewAccountRepository(gormDB)
	departments := repository.NewDepartmentRepository(gormDB)
	divisions := repository.NewDivisionRepository(gormDB)
	members := repository.NewMemberRepository(gormDB)
	return &seeder{
		users:       service.NewUserService(accounts, auth.NewBcryptHasher(auth.BcryptCost)),
		departments: service.NewDepartmentService(departments, orgCache),
		divisions:   service.NewDivisionService(divisions, departments, orgCache),
		members:     service.NewMemberService(members, divisions, orgCache),
		deptRepo:    departments,
		divRepo:     divisions,
		db:          gormDB,
		log:         log,
	}
}

func loadSeedFile(path string) (*SeedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data SeedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &data, nil
}

func (s *seeder) superAdmin(ctx context.Context, email, password, name string) error {
	if password == "" {
		return fmt.Errorf("-super-admin-password is required")
	}
	account, err := s.users.CreateSuperAdmin(ctx, service.CreateUserInput{Email: email, Password: password, Name: name})
	if isConflict(err) {
		s.log.Info("super admin already exists", zap.String("email", email))
		return nil
	}
	if err != nil {
		return err
	}
	s.log.Info("super admin created", zap.String("id", account.ID.String()), zap.String("email", email))
	return nil
}

func (s *seeder) run(ctx context.Context, data *SeedFile) error {
	created := 0
	for _, in := range data.Accounts {
		_, err := s.users.Create(ctx, in)
		if isConflict(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("account %s: %w", in.Email, err)
		}
		created++
	}
	s.log.Info("accounts seeded", zap.Int("created", created), zap.Int("total", len(data.Accounts)))

	for _, d := range data.Departments {
		department, err := s.department(ctx, d.Department)
		if err != nil {
			return err
		}
		for _, v := range d.Divisions {
			division, err := s.division(ctx, v.Division, department.ID)
			if err != nil {
				return err
			}
			for _, m := range v.Members {
				id := division.ID
				m.DivisionID = &id
				if _, err := s.members.Create(ctx, m); err != nil {
					return fmt.Errorf("member %s: %w", m.Name, err)
				}
			}
		}
	}
	s.log.Info("organization seeded", zap.Int("departments", len(data.Departments)))
	return nil
}

// department returns the department with name's slug, creating it when missing.
func (s *seeder) department(ctx context.Context, name string) (*model.Department, error) {
	if existing, err := s.deptRepo.FindBySlug(ctx, model.Slugify(name)); err == nil {
		return existing, nil
	}
	department, err := s.departments.Create(ctx, service.DepartmentInput{Department: name})
	if err != nil {
		return nil, fmt.Errorf("department %s: %w", name, err)
	}
	return department, nil
}

func (s *seeder) division(ctx context.Context, name string, departmentID uuid.UUID) (*model.Division, error) {
	if existing, err := s.divRepo.FindBySlug(ctx, model.Slugify(name)); err == nil {
		return existing, nil
	}
	division, err := s.divisions.Create(ctx, service.DivisionInput{Division: name, DepartmentID: departmentID})
	if err != nil {
		return nil, fmt.Errorf("division %s: %w", name, err)
	}
	return division, nil
}

// backfillSlugs rewrites every department and division slug from its current name.
func (s *seeder) backfillSlugs(ctx context.Context) error {
	departments, err := s.deptRepo.All(ctx)
	if err != nil {
		return fmt.Errorf("list departments: %w", err)
	}
	for _, d := range departments {
		if err := repository.UpdateSlug[model.Department](ctx, s.db, d.ID, model.Slugify(d.Department)); err != nil {
			return fmt.Errorf("department %s: %w", d.ID, err)
		}
	}
	divisions, err := s.divRepo.All(ctx)
	if err != nil {
		return fmt.Errorf("list divisions: %w", err)
	}
	for _, d := range divisions {
		if err := repository.UpdateSlug[model.Division](ctx, s.db, d.ID, model.Slugify(d.Division)); err != nil {
			return fmt.Errorf("division %s: %w", d.ID, err)
		}
	}
	s.log.Info("slugs backfilled", zap.Int("departments", len(departments)), zap.Int("divisions", len(divisions)))
	return nil
}

func isConflict(err error) bool {
	return errors.Is(err, apperr.ErrConflict)
}
