// cmd/beatbookctl/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/beatbookhq/beatbook/internal/auth"
	"github.com/beatbookhq/beatbook/internal/config"
	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	seedAdminCmd.Flags().String("email", "", "Admin email")
	seedAdminCmd.Flags().String("password", "", "Admin password")
	seedAdminCmd.Flags().String("name", "", "Admin full name")
	seedAdminCmd.Flags().String("org", "", "Organization name")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedAdminCmd)
	rootCmd.AddCommand(expireInvitationsCmd)
}

var rootCmd = &cobra.Command{
	Use:   "beatbookctl",
	Short: "Beatbookctl manages a Beatbook deployment",
	Long:  `Beatbookctl runs schema migrations and seeds the first organization for a Beatbook deployment.`,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Run: func(cmd *cobra.Command, args []string) {
		db := mustOpenDB()

		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS citext").Error; err != nil {
			log.Fatalf("Failed to enable citext: %v", err)
		}
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
			log.Fatalf("Failed to enable pgcrypto: %v", err)
		}

		if err := db.AutoMigrate(
			&model.Organization{},
			&model.Identity{},
			&model.Credential{},
			&model.User{},
			&model.Event{},
			&model.Tag{},
			&model.Invitation{},
			&model.AuditLog{},
		); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}

		// AutoMigrate cannot express a partial unique index; this one backs
		// the single-pending-invitation rule.
		if err := db.Exec(
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_invitations_pending_once
			 ON invitations (organization_id, email)
			 WHERE status = 'pending'`).Error; err != nil {
			log.Fatalf("Failed to create pending invitation index: %v", err)
		}

		fmt.Println("Schema is up to date")
	},
}

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create an organization with its first admin",
	Run: func(cmd *cobra.Command, args []string) {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		name, _ := cmd.Flags().GetString("name")
		orgName, _ := cmd.Flags().GetString("org")
		if email == "" || password == "" || name == "" || orgName == "" {
			log.Fatal("email, password, name, and org are all required")
		}
		email = strings.ToLower(strings.TrimSpace(email))

		db := mustOpenDB()
		hasher := auth.NewPasswordHasher()

		hashed, err := hasher.Hash(password)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			identity := &model.Identity{
				ID:     uuid.New(),
				Email:  email,
				Status: model.IdentityActive,
			}
			if err := tx.Create(identity).Error; err != nil {
				return fmt.Errorf("creating identity: %w", err)
			}

			credential := &model.Credential{
				IdentityID: identity.ID,
				Kind:       model.CredentialHashpass,
				Material:   hashed,
				IsActive:   true,
			}
			if err := tx.Create(credential).Error; err != nil {
				return fmt.Errorf("creating credential: %w", err)
			}

			org := &model.Organization{Name: orgName}
			if err := tx.Create(org).Error; err != nil {
				return fmt.Errorf("creating organization: %w", err)
			}

			user := &model.User{
				ID:             identity.ID,
				OrganizationID: org.ID,
				Email:          email,
				FullName:       name,
				Role:           model.RoleAdmin,
				Theme:          model.ThemeLight,
			}
			if err := tx.Create(user).Error; err != nil {
				return fmt.Errorf("creating user: %w", err)
			}

			fmt.Printf("Created admin %s in organization %s (%s)\n", email, orgName, org.ID)
			return nil
		})
		if err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	},
}

var expireInvitationsCmd = &cobra.Command{
	Use:   "expire-invitations",
	Short: "Expire pending invitations past their deadline",
	Run: func(cmd *cobra.Command, args []string) {
		db := mustOpenDB()

		result := db.WithContext(context.Background()).Model(&model.Invitation{}).
			Where("status = ? AND expires_at < ?", model.InvitationPending, time.Now()).
			Update("status", model.InvitationExpired)
		if result.Error != nil {
			log.Fatalf("Expiry sweep failed: %v", result.Error)
		}

		fmt.Printf("Expired %d invitations\n", result.RowsAffected)
	},
}

func mustOpenDB() *gorm.DB {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
		cfg.Database.SearchPath,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
