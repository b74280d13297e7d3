package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/brandingpioneers/hr-management/internal/auth"
	"github.com/brandingpioneers/hr-management/internal/employee"
)

const (
	seedAdminEmail    = "admin@brandingpioneers.com"
	seedAdminPassword = "SuperAdmin2024!"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the super admin and sample data",
	Long:  `Seed the database with the bootstrap super admin account and a few sample employees for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, _, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			fmt.Println("Clearing existing data...")
			for _, table := range []string{"tasks", "employees", "audit_logs", "user_invitations", "password_resets", "email_verifications", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
		}

		var count int64
		if err := db.Model(&auth.User{}).Where("email = ?", seedAdminEmail).Count(&count).Error; err != nil {
			log.Fatalf("failed to check admin user: %v", err)
		}

		if count == 0 {
			hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), cfg.Security.BCryptCost)
			if err != nil {
				log.Fatalf("failed to hash admin password: %v", err)
			}

			now := time.Now().UTC()
			admin := &auth.User{
				ID:            uuid.NewString(),
				Email:         seedAdminEmail,
				Name:          "Super Admin",
				PasswordHash:  string(hash),
				Role:          auth.RoleSuperAdmin,
				EmailVerified: true,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := db.Create(admin).Error; err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded super admin:", seedAdminEmail)
		} else {
			fmt.Println("Super admin already exists, skipping")
		}

		samples := []employee.Employee{
			{
				Name: "Asha Verma", EmployeeCode: "BP001", Email: "asha.verma@brandingpioneers.com",
				Department: "Engineering", Position: "Backend Developer", Manager: "Rahul Mehta",
				StartDate: time.Now().AddDate(-1, -2, 0), Status: employee.StatusActive,
			},
			{
				Name: "Nikhil Rao", EmployeeCode: "BP002", Email: "nikhil.rao@brandingpioneers.com",
				Department: "Marketing", Position: "SEO Analyst", Manager: "Priya Shah",
				StartDate: time.Now().AddDate(0, 0, -10), Status: employee.StatusOnboarding,
			},
			{
				Name: "Meera Iyer", EmployeeCode: "BP003", Email: "meera.iyer@brandingpioneers.com",
				Department: "Design", Position: "UI Designer", Manager: "Priya Shah",
				StartDate: time.Now().AddDate(-2, 0, 0), Status: employee.StatusActive,
			},
		}

		for i := range samples {
			emp := &samples[i]

			var existing int64
			if err := db.Model(&employee.Employee{}).Where("employee_code = ?", emp.EmployeeCode).Count(&existing).Error; err != nil {
				log.Fatalf("failed to check employee %s: %v", emp.EmployeeCode, err)
			}
			if existing > 0 {
				continue
			}

			emp.ID = uuid.NewString()
			emp.CreatedAt = time.Now().UTC()
			emp.UpdatedAt = emp.CreatedAt
			if err := db.Create(emp).Error; err != nil {
				log.Fatalf("failed to insert employee %s: %v", emp.EmployeeCode, err)
			}
			fmt.Println("Seeded employee:", emp.EmployeeCode, emp.Name)
		}

		fmt.Println("Seeding complete")
	},
}
