package config

import (
	"context"
	"errors"
	"log"

	"bu-ethesis/internal/adapters/persistence/models"
	"bu-ethesis/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db    *gorm.DB
	admin AdminConfig
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, admin AdminConfig) *Seeder {
	return &Seeder{db: db, admin: admin}
}

// Run executes all seeders. Seeding is idempotent.
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(ctx); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser creates the default account only when no credential exists yet,
// so a changed password is never reset on restart
func (s *Seeder) seedAdminUser(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if s.admin.Username == "" {
		return errors.New("admin username is empty")
	}

	hashedPassword, err := password.Hash(s.admin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: s.admin.Username,
		Password: hashedPassword,
	}
	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}
