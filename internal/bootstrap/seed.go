package bootstrap

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/j-h-711/MongMongVillage-BE/internal/model"
)

const (
	adminEmail    = "admin@mongmong.com"
	adminNickname = "admin"
	adminPassword = "admin1234"
)

// SeedAdminUser creates the development admin account if it does not
// exist yet. Intended for development only; production admins are
// provisioned out of band.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", adminEmail).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        adminEmail,
		Nickname:     adminNickname,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded admin user %s", adminEmail)
	return nil
}
