// Package seed populates first-run default data. Bootstrap is an explicit
// step invoked by the application entry point; each collection is guarded by
// an existence check so existing data is never overwritten.
package seed

import (
	"capitalfit/membership-app/internal/domain"
	"capitalfit/membership-app/internal/repository"
	"context"
	"log"
	"time"
)

type starterPlan struct {
	name         string
	price        float64
	durationDays int
}

// The starter catalog: the recurring plans plus the one-time enrollment fee
// (durationDays 0, pays nothing into membership time).
var starterPlans = []starterPlan{
	{"Mensualidad", 500, 30},
	{"Trimestre", 1350, 90},
	{"Anualidad", 4800, 365},
	{"Visita", 50, 1},
	{"Inscripción", 300, 0},
}

type starterClient struct {
	name           string
	phone          string
	birthDate      string
	expirationDays int // Relative to now; spans all three status buckets.
	lastPaidDays   int
}

// One future expiration, one expiring soon, one 5 days overdue (risk), one
// 20 days overdue (expired).
var starterClients = []starterClient{
	{"Juan Pérez", "5512345678", "1990-05-15", 15, 0},
	{"María García", "5587654321", "1995-10-20", 2, -28},
	{"Carlos López", "5511223344", "1988-03-10", -5, -35},
	{"Ana Torres", "5555666777", "2000-01-01", -20, -50},
}

// Bootstrap seeds the plan catalog and client registry, each only when its
// collection is entirely empty. Payments, costs and biometrics always start
// empty.
func Bootstrap(ctx context.Context, plans repository.PlanRepository, clients repository.ClientRepository) error {
	if err := seedPlans(ctx, plans); err != nil {
		return err
	}
	return seedClients(ctx, plans, clients)
}

func seedPlans(ctx context.Context, plans repository.PlanRepository) error {
	count, err := plans.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, p := range starterPlans {
		plan := &domain.Plan{Name: p.name, Price: p.price, DurationDays: p.durationDays}
		if _, err := plans.Create(ctx, plan); err != nil {
			return err
		}
	}
	log.Printf("Seeded %d starter plans", len(starterPlans))
	return nil
}

func seedClients(ctx context.Context, plans repository.PlanRepository, clients repository.ClientRepository) error {
	count, err := clients.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	// Starter clients reference the monthly plan when one exists.
	catalog, err := plans.List(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, c := range starterClients {
		expiration := now.AddDate(0, 0, c.expirationDays)
		lastPayment := now.AddDate(0, 0, c.lastPaidDays)

		client := &domain.Client{
			Name:            c.name,
			Phone:           c.phone,
			BirthDate:       c.birthDate,
			ExpirationDate:  &expiration,
			LastPaymentDate: &lastPayment,
		}
		for i := range catalog {
			if catalog[i].Name == "Mensualidad" {
				client.ActivePlanID = &catalog[i].ID
				break
			}
		}

		if _, err := clients.Create(ctx, client); err != nil {
			return err
		}
	}
	log.Printf("Seeded %d starter clients", len(starterClients))
	return nil
}
