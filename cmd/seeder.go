package cmd

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/frahmantamala/office-management/internal/core/common/date"
	employeeDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/employee"
	taskDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/task"
	userDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/user"
	"github.com/frahmantamala/office-management/internal/database"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

const (
	demoEmail    = "demo@acme.test"
	demoPassword = "password123"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a demo account and sample employees and tasks for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		conn, err := database.Open(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer conn.Close()
		db := conn.Gorm

		if clearData {
			// files, employees and tasks go with their owner
			if err := db.Exec("DELETE FROM users WHERE email = ?", demoEmail).Error; err != nil {
				log.Fatalf("failed to clear demo data: %v", err)
			}
			fmt.Println("Cleared demo account and its data; run `storage prune` to drop its blobs")
		}

		var existing userDatamodel.User
		if err := db.Where("email = ?", demoEmail).Limit(1).Find(&existing).Error; err != nil {
			log.Fatalf("failed to look up demo user: %v", err)
		}
		if existing.ID != 0 {
			fmt.Println("demo user already exists; nothing to seed:", demoEmail)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}

		demo := userDatamodel.User{
			FullName:         "Demo Admin",
			OrganizationName: "Acme Corp",
			Email:            demoEmail,
			PhoneNo:          "+15550100",
			PasswordHash:     string(hash),
		}
		if err := db.Create(&demo).Error; err != nil {
			log.Fatalf("failed to insert demo user: %v", err)
		}
		fmt.Println("Seeded demo user:", demoEmail)

		employees := []struct {
			Name, Position, Department, Type, Status string
			Joined                                   date.Date
		}{
			{"Alice Johnson", "Software Engineer", "Engineering", "Full-time", "Active", date.New(2022, time.March, 14)},
			{"Bob Smith", "Product Manager", "Product", "Full-time", "Active", date.New(2021, time.July, 1)},
			{"Carol White", "Designer", "Design", "Contract", "On Leave", date.New(2023, time.January, 9)},
			{"Dan Brown", "Support Intern", "Customer Success", "Intern", "Active", date.New(2024, time.June, 3)},
		}
		for _, e := range employees {
			row := employeeDatamodel.Employee{
				UserID:         demo.ID,
				FullName:       e.Name,
				Email:          strings.ToLower(strings.ReplaceAll(e.Name, " ", ".")) + "@acme.test",
				Position:       e.Position,
				Department:     e.Department,
				EmploymentType: e.Type,
				JoinDate:       e.Joined,
				Status:         e.Status,
			}
			if err := db.Create(&row).Error; err != nil {
				log.Fatalf("failed to insert employee %s: %v", e.Name, err)
			}
		}
		fmt.Printf("Seeded %d employees\n", len(employees))

		tasks := []struct {
			Title, Status, Priority string
			Due                     date.Date
		}{
			{"Prepare quarterly report", "In Progress", "High", date.New(2025, time.March, 31)},
			{"Onboard new intern", "Pending", "Medium", date.Date{}},
			{"Renew office lease", "Completed", "Low", date.New(2025, time.January, 15)},
		}
		for _, t := range tasks {
			row := taskDatamodel.Task{
				UserID:   demo.ID,
				Title:    t.Title,
				Status:   t.Status,
				Priority: t.Priority,
				DueDate:  t.Due,
			}
			if err := db.Create(&row).Error; err != nil {
				log.Fatalf("failed to insert task %s: %v", t.Title, err)
			}
		}
		fmt.Printf("Seeded %d tasks\n", len(tasks))
	},
}
