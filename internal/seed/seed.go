// Package seed populates a fresh register with the system accounts and a
// set of demo rows so the UI has something to show out of the box.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/mkcore/itam-api/internal/models"
)

// Run seeds system accounts and demo data. Every block is guarded by an
// existence check so the seeder can run on every start.
func Run(ctx context.Context, db *sqlx.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := seedSystemAccounts(ctx, db); err != nil {
		return err
	}
	if err := seedSampleUsers(ctx, db); err != nil {
		return err
	}
	if err := seedDepartments(ctx, db); err != nil {
		return err
	}
	if err := seedGroups(ctx, db); err != nil {
		return err
	}
	if err := seedAssets(ctx, db); err != nil {
		return err
	}
	if err := seedAuditHistory(ctx, db); err != nil {
		return err
	}

	logger.Info("seed complete")
	return nil
}

const insertUser = `INSERT INTO users
(first_name, last_name, user_status, account_type, account, domain, upn, email, password, job_title, company, description, manager_name, department, role)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

func seedSystemAccounts(ctx context.Context, db *sqlx.DB) error {
	accounts := []struct {
		first, last, account, password, jobTitle, description string
		role                                                  models.Role
	}{
		{"System", "Administrator", "admin", "admin", "System Admin", "Super Administrator", models.RoleAdmin},
		{"System", "Technician", "tech", "password", "Technician", "System Technician", models.RoleTechnician},
	}

	for _, a := range accounts {
		exists, err := rowExists(ctx, db, `SELECT EXISTS (SELECT 1 FROM users WHERE account = $1)`, a.account)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		_, err = db.ExecContext(ctx, insertUser,
			a.first, a.last, models.UserStatusActive, models.AccountTypeSystem,
			a.account, "system.local", a.account+"@system.local", a.account+"@system.local",
			a.password, a.jobTitle, "MK CORE", a.description, "", "IT", a.role)
		if err != nil {
			return fmt.Errorf("seed system account %s: %w", a.account, err)
		}
	}
	return nil
}

func seedSampleUsers(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count >= 5 {
		return nil
	}

	departments := []string{"IT", "HR", "Sales", "Marketing", "Accounting", "Operation"}
	companies := []string{"MyCompany", "PartnerCorp"}
	domains := []string{"company.com", "test.com"}

	for i := 1; i <= 22; i++ {
		firstName := fmt.Sprintf("User%d", i)
		domain := domains[i%2]
		account := fmt.Sprintf("user%d.test", i)

		status := models.UserStatusActive
		if i%5 == 0 {
			status = models.UserStatusDisabled
		}
		accountType := models.AccountTypeUser
		if i%3 == 0 {
			accountType = models.AccountTypeService
		}
		manager := ""
		if i > 1 {
			manager = "User1 Test"
		}

		_, err := db.ExecContext(ctx, insertUser,
			firstName, "Test", status, accountType,
			account, domain, account+"@"+domain, account+"@"+domain,
			"Password123!", "Employee", companies[i%2],
			fmt.Sprintf("Auto-generated user %d", i), manager,
			departments[i%len(departments)], models.RoleUser)
		if err != nil {
			return fmt.Errorf("seed sample user %d: %w", i, err)
		}
	}
	return nil
}

func seedDepartments(ctx context.Context, db *sqlx.DB) error {
	exists, err := rowExists(ctx, db, `SELECT EXISTS (SELECT 1 FROM departments)`)
	if err != nil || exists {
		return err
	}

	names := []string{
		"IT", "HR", "Sales", "Marketing", "Accounting", "Operation",
		"Customer Service", "Global", "Research", "Legal", "Quality Assurance", "Product",
	}
	for _, name := range names {
		if _, err := db.ExecContext(ctx, `INSERT INTO departments (name, description) VALUES ($1, $2)`, name, name+" Department"); err != nil {
			return fmt.Errorf("seed department %s: %w", name, err)
		}
	}
	return nil
}

func seedGroups(ctx context.Context, db *sqlx.DB) error {
	exists, err := rowExists(ctx, db, `SELECT EXISTS (SELECT 1 FROM groups)`)
	if err != nil || exists {
		return err
	}

	var userIDs []int64
	if err := db.SelectContext(ctx, &userIDs, `SELECT id FROM users ORDER BY id`); err != nil {
		return fmt.Errorf("load user ids: %w", err)
	}

	groups := []struct{ name, dept string }{
		{"IT Security Group", "IT"},
		{"HR Global Team", "HR"},
		{"Sales Force One", "Sales"},
		{"Marketing Creative", "Marketing"},
		{"Accounting Audit", "Accounting"},
		{"Operation Support", "Operation"},
		{"Cloud Infrastructure", "IT"},
		{"Recruitment Taskforce", "HR"},
		{"Key Account Managers", "Sales"},
		{"Product Launch 2026", "Marketing"},
		{"Internal Control", "Accounting"},
		{"Quality Assurance", "Operation"},
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, g := range groups {
		groupType := models.GroupTypeSecurity
		if rng.Intn(2) == 1 {
			groupType = models.GroupTypeDistribution
		}

		var groupID int64
		err := db.QueryRowxContext(ctx, `INSERT INTO groups (group_name, type, department) VALUES ($1, $2, $3) RETURNING id`,
			g.name, groupType, g.dept).Scan(&groupID)
		if err != nil {
			return fmt.Errorf("seed group %s: %w", g.name, err)
		}

		for _, userID := range pickSome(rng, userIDs, 3+rng.Intn(5)) {
			if _, err := db.ExecContext(ctx, `INSERT INTO user_groups (user_id, group_id) VALUES ($1, $2)`, userID, groupID); err != nil {
				return fmt.Errorf("seed group member: %w", err)
			}
		}
	}
	return nil
}

func seedAssets(ctx context.Context, db *sqlx.DB) error {
	exists, err := rowExists(ctx, db, `SELECT EXISTS (SELECT 1 FROM assets)`)
	if err != nil || exists {
		return err
	}

	var userIDs []int64
	if err := db.SelectContext(ctx, &userIDs, `SELECT id FROM users ORDER BY id`); err != nil {
		return fmt.Errorf("load user ids: %w", err)
	}

	categories := []string{"PC/Laptop", "PC/Laptop", "Monitor/TV", "Phone/Tablet", "Accessories", "Switch/Network", "Printer", "Docking Station", "Headset", "UPS", "Server/Storage"}
	locations := []string{"HQ", "Canada", "USA", "France"}
	companies := []string{"NC", "KP", "RD"}
	manufacturers := []string{"Apple", "Dell", "Lenovo", "HP", "Cisco", "Samsung", "Logitech", "APC"}
	vendors := []string{"Amazon", "Direct", "CDW", "Verizon", "Best Buy", "Internal"}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	for i := 1; i <= 35; i++ {
		cat := categories[i%len(categories)]
		manuf := manufacturers[i%len(manufacturers)]
		product := productFor(cat, manuf)

		status := models.AssetStatusInUse
		var assignedTo *int64
		if i%5 == 0 {
			status = models.AssetStatusSpare
		} else if len(userIDs) > 0 {
			id := userIDs[rng.Intn(len(userIDs))]
			assignedTo = &id
		}

		vendor := vendors[i%len(vendors)]
		orderNo := fmt.Sprintf("PO-%d", 2024000+i)
		price := fmt.Sprintf("%d.00", 100+rng.Intn(2900))
		deployed := now.AddDate(0, 0, -(1 + rng.Intn(400)))
		purchased := now.AddDate(0, 0, -(400 + rng.Intn(400)))
		warranty := now.AddDate(0, 0, 100+rng.Intn(400))

		var cpu, ram, hdd *string
		if cat == "PC/Laptop" {
			c, r, h := "i7-12700H", "16GB", "512GB SSD"
			if manuf == "Apple" {
				c = "M2"
			}
			cpu, ram, hdd = &c, &r, &h
		}

		_, err := db.ExecContext(ctx, `INSERT INTO assets
		(category, product, location, company, serial_number, status, assigned_to_user_id, department_id, deployment_date, vendor, manufacturer, purchase_date, order_no, price, order_status, warranty_end_date, cpu, ram, hdd)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULL, $8, $9, $10, $11, $12, $13, NULL, $14, $15, $16, $17)`,
			cat, product, locations[i%len(locations)], companies[i%len(companies)],
			fmt.Sprintf("SN-%s-%d", cat[:2], 1000+i), status, assignedTo,
			deployed, vendor, manuf, purchased, orderNo, price, warranty, cpu, ram, hdd)
		if err != nil {
			return fmt.Errorf("seed asset %d: %w", i, err)
		}
	}
	return nil
}

func seedAuditHistory(ctx context.Context, db *sqlx.DB) error {
	exists, err := rowExists(ctx, db, `SELECT EXISTS (SELECT 1 FROM audit_logs)`)
	if err != nil || exists {
		return err
	}

	now := time.Now().UTC()
	rows := []struct {
		age      time.Duration
		actor    string
		action   string
		entity   string
		targetID string
		summary  string
	}{
		{48 * time.Hour, "admin", models.AuditActionCreate, "Department", "", "Created 'IT' department"},
		{47 * time.Hour, "admin", models.AuditActionCreate, "User", "tech", "Created system technician account"},
		{46 * time.Hour, "admin", models.AuditActionCreate, "Group", "", "Created 'IT Security Group' with initial members"},
		{24 * time.Hour, "tech", models.AuditActionCreate, "Asset", "SN-PC-1001", "Registered new MacBook Pro 14"},
		{22 * time.Hour, "tech", models.AuditActionUpdate, "Asset", "SN-PC-1001", "Assigned asset to System Administrator"},
		{5 * time.Hour, "admin", models.AuditActionUpdate, "User", "user1.test", "Changed status to Disabled"},
	}

	for _, r := range rows {
		var targetID *string
		if r.targetID != "" {
			targetID = &r.targetID
		}
		_, err := db.ExecContext(ctx, `INSERT INTO audit_logs (timestamp, performed_by, action, target_entity, target_id, change_summary)
		VALUES ($1, $2, $3, $4, $5, $6)`,
			now.Add(-r.age), r.actor, r.action, r.entity, targetID, r.summary)
		if err != nil {
			return fmt.Errorf("seed audit history: %w", err)
		}
	}
	return nil
}

func productFor(category, manufacturer string) string {
	switch category {
	case "PC/Laptop":
		switch manufacturer {
		case "Apple":
			return "MacBook Pro 14"
		case "Lenovo":
			return "ThinkPad X1"
		default:
			return "EliteBook 840"
		}
	case "Monitor/TV":
		return manufacturer + " UltraSharp 27"
	case "Phone/Tablet":
		if manufacturer == "Apple" {
			return "iPhone 15"
		}
		return "Galaxy S23"
	case "Accessories":
		return manufacturer + " Wireless Mouse"
	case "Switch/Network":
		return "Catalyst 9300"
	case "Printer":
		return "LaserJet Pro"
	case "Server/Storage":
		return "PowerEdge R750"
	default:
		return manufacturer + " Generic " + category
	}
}

func pickSome(rng *rand.Rand, ids []int64, n int) []int64 {
	if n > len(ids) {
		n = len(ids)
	}
	shuffled := make([]int64, len(ids))
	copy(shuffled, ids)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return shuffled[:n]
}

func rowExists(ctx context.Context, db *sqlx.DB, query string, args ...interface{}) (bool, error) {
	var exists bool
	if err := db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("existence check: %w", err)
	}
	return exists, nil
}
