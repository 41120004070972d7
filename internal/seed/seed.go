package seed

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Simplici0/vitrea/internal/project"
	"github.com/Simplici0/vitrea/internal/quote"
	"github.com/Simplici0/vitrea/internal/store"
)

// DemoQuoteName is the name the example quote is stored under.
const DemoQuoteName = "Example: two-storey villa"

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
	// DemoQuote stores an example quote when no quote exists yet.
	DemoQuote bool
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, db *sql.DB, quotes *store.Store, svc *quote.Service, cfg Config) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := seedAdmin(ctx, tx, quotes, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	// Saved after commit: the store opens its own transaction.
	if cfg.DemoQuote {
		if err := ensureDemoQuote(ctx, quotes, svc, &stats); err != nil {
			return Stats{}, err
		}
	}

	return stats, nil
}

func seedAdmin(ctx context.Context, tx *sql.Tx, quotes *store.Store, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, quotes.Rebind(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`), email).Scan(&exists); err != nil {
		return fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := tx.ExecContext(ctx, quotes.Rebind(`INSERT INTO users (email, password_hash) VALUES (?, ?)`), email, string(hash)); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureDemoQuote(ctx context.Context, quotes *store.Store, svc *quote.Service, stats *Stats) error {
	existing, err := quotes.Versions(ctx, DemoQuoteName)
	if err != nil {
		return fmt.Errorf("check demo quote existence: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	p := demoProject()
	if _, err := quotes.Save(ctx, DemoQuoteName, "Seeded example", p, svc.Estimate(p)); err != nil {
		return fmt.Errorf("insert demo quote: %w", err)
	}
	stats.Inserts++
	return nil
}

func demoProject() project.Project {
	return project.Project{
		Frame:                 project.ExistingTimber,
		Glazing:               project.DoubleGlazed,
		InstallationRequested: true,
		Rooms: []project.Room{
			{Name: "Living", Openings: []project.Opening{
				{Width: 2400, Height: 2100, StyleCode: "S-F-S"},
				{Width: 1200, Height: 1500, StyleCode: "A/F"},
			}},
			{Name: "Bedroom 1", Openings: []project.Opening{
				{Width: 900, Height: 1200, StyleCode: "A-F/F-F"},
			}},
		},
	}
}
