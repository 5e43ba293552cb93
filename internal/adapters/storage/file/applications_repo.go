package file

import (
	"context"
	"slices"

	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/platform/apperr"
)

type applicationRepo struct {
	s *Store
}

func (r *applicationRepo) index(id int) int {
	for i, a := range r.s.apps {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (r *applicationRepo) Create(ctx context.Context, username, petName string) (applications.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if username == "" || petName == "" {
		return applications.Application{}, apperr.ErrInvalidInput
	}

	a := applications.Application{
		ID:                r.s.nextID,
		ApplicantUsername: username,
		PetName:           petName,
		Status:            applications.StatusPending,
	}

	prevApps, prevNext := slices.Clone(r.s.apps), r.s.nextID
	r.s.apps = append(r.s.apps, a)
	r.s.nextID++
	if err := r.s.saveApplications(); err != nil {
		r.s.apps, r.s.nextID = prevApps, prevNext
		return applications.Application{}, err
	}
	return a, nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id int) (applications.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return applications.Application{}, apperr.ErrNotFound
	}
	return r.s.apps[i], nil
}

func (r *applicationRepo) List(ctx context.Context) ([]applications.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return slices.Clone(r.s.apps), nil
}

// Decide mueve la solicitud y la mascota juntas. Si approve, la primera mascota
// cuyo nombre coincide queda adoptada; si no hay ninguna (referencia colgante)
// solo cambia el estado. Ante un error de escritura se revierte memoria y disco.
func (r *applicationRepo) Decide(ctx context.Context, id int, approve bool) (applications.Decision, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return applications.Decision{}, apperr.ErrNotFound
	}
	if !r.s.apps[i].Pending() {
		return applications.Decision{}, apperr.ErrBadState
	}

	prevApp := r.s.apps[i]
	d := applications.Decision{}

	if !approve {
		r.s.apps[i].Status = applications.StatusRejected
		if err := r.s.saveApplications(); err != nil {
			r.s.apps[i] = prevApp
			return applications.Decision{}, err
		}
		d.Application = r.s.apps[i]
		return d, nil
	}

	r.s.apps[i].Status = applications.StatusApproved
	p := r.s.firstPetByName(prevApp.PetName)
	changed := false
	if p >= 0 {
		d.PetMarked = true
		if !r.s.pets[p].Adopted {
			r.s.pets[p].Adopted = true
			changed = true
			if err := r.s.savePets(); err != nil {
				r.s.pets[p].Adopted = false
				r.s.apps[i] = prevApp
				return applications.Decision{}, err
			}
		}
	}

	if err := r.s.saveApplications(); err != nil {
		r.s.apps[i] = prevApp
		if changed {
			r.s.pets[p].Adopted = false
			if rerr := r.s.savePets(); rerr != nil {
				r.s.log.Error("rollback of pets file failed", map[string]any{"error": rerr.Error()})
			}
		}
		return applications.Decision{}, err
	}

	d.Application = r.s.apps[i]
	return d, nil
}
