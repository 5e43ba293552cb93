package workflow

import (
	"context"

	"pet-adoption/internal/domain/applications"
)

// browsePets lista las mascotas disponibles; elegir una crea una solicitud Pending.
func (e *Engine) browsePets(ctx context.Context, s *session) error {
	e.printf("\n=== AVAILABLE PETS ===\n")

	avail, err := e.pets.Available(ctx)
	if err != nil {
		return err
	}
	if len(avail) == 0 {
		e.printf("No pets available for adoption.\n")
		return nil
	}
	for i, p := range avail {
		e.printf("%d. %s (%s), Age: %d, Vaccinated: %s\n", i+1, p.Name, p.Breed, p.Age, yesNo(p.Vaccinated))
	}
	e.printf("\n0. Back\n")

	pick := e.in.AcquireInt("Select pet to apply for adoption (0 to cancel): ", 0, len(avail))
	if err := pick.Err(); err != nil || pick.Value == 0 {
		return err
	}
	p := avail[pick.Value-1]

	a, err := e.apps.Apply(ctx, s.user.Username, p.Name)
	if err != nil {
		return err
	}
	e.printf("Application submitted for %s!\n", p.Name)
	s.log.Info("application submitted", map[string]any{"application_id": a.ID, "pet": p.Name})
	return nil
}

func (e *Engine) checkStatus(ctx context.Context, s *session) error {
	e.printf("\n=== APPLICATION STATUS ===\n")
	mine, err := e.apps.ByApplicant(ctx, s.user.Username)
	if err != nil {
		return err
	}
	if len(mine) == 0 {
		e.printf("No applications found.\n")
		return nil
	}
	e.printApplications(mine)
	return nil
}

func (e *Engine) viewHistory(ctx context.Context, s *session) error {
	e.printf("\n=== ADOPTION HISTORY ===\n")
	decided, err := e.apps.History(ctx, s.user.Username)
	if err != nil {
		return err
	}
	if len(decided) == 0 {
		e.printf("No adoption history found.\n")
		return nil
	}
	e.printApplications(decided)
	return nil
}

func (e *Engine) printApplications(items []applications.Application) {
	for _, a := range items {
		e.printf("ID: %d, Pet: %s, Status: %s\n", a.ID, a.PetName, a.Status)
	}
}
