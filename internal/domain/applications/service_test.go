package applications

import (
	"context"
	"errors"
	"testing"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/apperr"
)

// -------------------------
// Test repo (in-memory, con mascotas para el acoplamiento de aprobación)
// -------------------------

type testRepo struct {
	nextID int
	items  []Application
	pets   []pets.Pet
}

func newTestRepo(p ...pets.Pet) *testRepo {
	return &testRepo{nextID: 1, pets: p}
}

func (r *testRepo) Create(ctx context.Context, username, petName string) (Application, error) {
	a := Application{ID: r.nextID, ApplicantUsername: username, PetName: petName, Status: StatusPending}
	r.nextID++
	r.items = append(r.items, a)
	return a, nil
}

func (r *testRepo) GetByID(ctx context.Context, id int) (Application, error) {
	for _, a := range r.items {
		if a.ID == id {
			return a, nil
		}
	}
	return Application{}, apperr.ErrNotFound
}

func (r *testRepo) List(ctx context.Context) ([]Application, error) {
	return append([]Application(nil), r.items...), nil
}

func (r *testRepo) Decide(ctx context.Context, id int, approve bool) (Decision, error) {
	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}
		d := Decision{}
		if approve {
			r.items[i].Status = StatusApproved
			for j := range r.pets {
				if r.pets[j].Name == r.items[i].PetName {
					r.pets[j].Adopted = true
					d.PetMarked = true
					break
				}
			}
		} else {
			r.items[i].Status = StatusRejected
		}
		d.Application = r.items[i]
		return d, nil
	}
	return Decision{}, apperr.ErrNotFound
}

type lookup struct{ repo *testRepo }

func (l lookup) AvailableByName(ctx context.Context, name string) (pets.Pet, error) {
	for _, p := range l.repo.pets {
		if p.Name == name {
			if p.Adopted {
				return pets.Pet{}, pets.ErrAlreadyAdopted
			}
			return p, nil
		}
	}
	return pets.Pet{}, apperr.ErrNotFound
}

func newSvc(p ...pets.Pet) (*Service, *testRepo) {
	repo := newTestRepo(p...)
	return NewService(repo, lookup{repo: repo}), repo
}

// -------------------------
// Tests
// -------------------------

func TestService_Apply_RequiresAvailablePet(t *testing.T) {
	svc, _ := newSvc(pets.Pet{Name: "Rex"}, pets.Pet{Name: "Old", Adopted: true})
	ctx := context.Background()

	a, err := svc.Apply(ctx, "alice", "Rex")
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if a.ID != 1 || a.Status != StatusPending {
		t.Fatalf("expected pending application id=1, got %+v", a)
	}
	if _, err := svc.Apply(ctx, "alice", "Rex"); !errors.Is(err, ErrDuplicatePending) {
		t.Fatalf("expected duplicate pending, got %v", err)
	}
	if _, err := svc.Apply(ctx, "bob", "Old"); !errors.Is(err, pets.ErrAlreadyAdopted) {
		t.Fatalf("expected already adopted, got %v", err)
	}
	if _, err := svc.Apply(ctx, "bob", "Ghost"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_Process_ApproveMarksPetAdopted(t *testing.T) {
	svc, repo := newSvc(pets.Pet{Name: "Whiskers"}, pets.Pet{Name: "Rex"})
	ctx := context.Background()

	a, _ := svc.Apply(ctx, "alice", "Rex")
	d, err := svc.Process(ctx, a.ID, true)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if d.Application.Status != StatusApproved || !d.PetMarked {
		t.Fatalf("expected approved + pet marked, got %+v", d)
	}
	if !repo.pets[1].Adopted || repo.pets[0].Adopted {
		t.Fatalf("only Rex must be adopted: %+v", repo.pets)
	}

	// Una vía: no se puede volver a decidir.
	if _, err := svc.Process(ctx, a.ID, false); !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("expected already decided, got %v", err)
	}
}

func TestService_Process_RejectLeavesPets(t *testing.T) {
	svc, repo := newSvc(pets.Pet{Name: "Rex"})
	ctx := context.Background()

	a, _ := svc.Apply(ctx, "alice", "Rex")
	d, err := svc.Process(ctx, a.ID, false)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if d.Application.Status != StatusRejected || d.PetMarked {
		t.Fatalf("expected rejected without pet change, got %+v", d)
	}
	if repo.pets[0].Adopted {
		t.Fatalf("reject must not adopt")
	}
	if _, err := svc.Process(ctx, 99, true); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_Listings(t *testing.T) {
	svc, _ := newSvc(pets.Pet{Name: "Rex"}, pets.Pet{Name: "Milo"}, pets.Pet{Name: "Luna"})
	ctx := context.Background()

	a1, _ := svc.Apply(ctx, "alice", "Rex")
	_, _ = svc.Apply(ctx, "alice", "Milo")
	_, _ = svc.Apply(ctx, "bobby", "Luna")
	_, _ = svc.Process(ctx, a1.ID, false)

	pending, _ := svc.Pending(ctx)
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(pending))
	}
	mine, _ := svc.ByApplicant(ctx, "alice")
	if len(mine) != 2 {
		t.Fatalf("expected 2 applications for alice, got %d", len(mine))
	}
	hist, _ := svc.History(ctx, "alice")
	if len(hist) != 1 || hist[0].ID != a1.ID {
		t.Fatalf("expected history with the rejected application, got %+v", hist)
	}
}
