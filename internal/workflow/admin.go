package workflow

import (
	"context"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/validation"
)

func (e *Engine) addAdmin(ctx context.Context, s *session) error {
	e.printf("\n=== ADD NEW ADMIN ===\n")

	name := e.in.Acquire("Admin username (4-20 chars, case-sensitive): ", validation.IsValidUsername, "Invalid username format")
	if err := name.Err(); err != nil {
		return err
	}
	taken, err := e.users.Exists(ctx, name.Value)
	if err != nil {
		return err
	}
	if taken {
		e.printf("Username exists!\n")
		return nil
	}

	pwd := e.in.AcquireSecret("Password: ", validation.IsValidPassword, "Invalid password")
	if err := pwd.Err(); err != nil {
		return err
	}

	u, err := e.users.CreateAdmin(ctx, name.Value, pwd.Value)
	if err != nil {
		return err
	}
	e.printf("Admin added!\n")
	s.log.Info("admin created", map[string]any{"new_admin": u.Username})
	return nil
}

func (e *Engine) manageUsers(ctx context.Context, s *session) error {
	e.printf("\n=== MANAGE USER ACCOUNTS ===\n")

	all, err := e.users.List(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		e.printf("No users found.\n")
		return nil
	}
	for i, u := range all {
		e.printf("%d. %s (%s)\n", i+1, u.Username, u.Role)
	}
	e.printf("0. Back\n")

	pick := e.in.AcquireInt("Select user to Edit/Delete (0 to cancel): ", 0, len(all))
	if err := pick.Err(); err != nil || pick.Value == 0 {
		return err
	}
	target := all[pick.Value-1]

	e.printf("1. Edit Username\n2. Edit Password\n3. Delete User\n0. Back\n")
	c := e.in.AcquireInt("Enter choice: ", 0, 3)
	if err := c.Err(); err != nil || c.Value == 0 {
		return err
	}

	switch c.Value {
	case 1:
		name := e.in.Acquire("New username: ", validation.IsValidUsername, "Invalid username")
		if err := name.Err(); err != nil {
			return err
		}
		u, err := e.users.Rename(ctx, target.Username, name.Value)
		if err != nil {
			return err
		}
		if target.Username == s.user.Username {
			s.user.Username = u.Username
		}
		e.printf("Username updated!\n")
		s.log.Info("user renamed", map[string]any{"from": target.Username, "to": u.Username})
	case 2:
		pwd := e.in.AcquireSecret("New password: ", validation.IsValidPassword, "Invalid password")
		if err := pwd.Err(); err != nil {
			return err
		}
		if _, err := e.users.ChangePassword(ctx, target.Username, pwd.Value); err != nil {
			return err
		}
		e.printf("Password updated!\n")
		s.log.Info("password changed", map[string]any{"target": target.Username})
	case 3:
		if err := e.users.Delete(ctx, s.user.Username, target.Username); err != nil {
			return err
		}
		e.printf("User deleted!\n")
		s.log.Info("user deleted", map[string]any{"target": target.Username})
	}
	return nil
}

func (e *Engine) managePets(ctx context.Context, s *session) error {
	e.printf("\n=== MANAGE PETS ===\n")
	e.printf("1. Add Pet\n2. Edit Pet\n3. Delete Pet\n4. View All Pets\n0. Back\n")

	c := e.in.AcquireInt("Enter choice: ", 0, 4)
	if err := c.Err(); err != nil {
		return err
	}
	switch c.Value {
	case 1:
		return e.addPet(ctx, s)
	case 2:
		return e.editPet(ctx, s)
	case 3:
		return e.deletePet(ctx, s)
	case 4:
		return e.listPets(ctx)
	}
	return nil
}

func (e *Engine) addPet(ctx context.Context, s *session) error {
	e.printf("\n=== ADD NEW PET ===\n")

	name := e.in.Acquire("Pet name: ", validation.IsValidName, "Invalid name")
	if err := name.Err(); err != nil {
		return err
	}
	breed := e.in.Acquire("Breed: ", validation.IsValidBreed, "Invalid breed")
	if err := breed.Err(); err != nil {
		return err
	}
	age := e.in.AcquireAge("Age: ")
	if err := age.Err(); err != nil {
		return err
	}
	vax := e.in.AcquireInt("Vaccinated? (1=Yes, 0=No): ", 0, 1)
	if err := vax.Err(); err != nil {
		return err
	}

	p, err := e.pets.Add(ctx, pets.CreateInput{
		Name:       name.Value,
		Breed:      breed.Value,
		Age:        age.Value,
		Vaccinated: vax.Value == 1,
	})
	if err != nil {
		return err
	}
	e.printf("Pet added successfully!\n")
	s.log.Info("pet added", map[string]any{"pet": p.Name})
	return nil
}

// pickPet lista las mascotas y pide una posición. Devuelve índice 0-based, o -1
// si no hay mascotas o el usuario eligió 0.
func (e *Engine) pickPet(ctx context.Context, header, empty, prompt string) ([]pets.Pet, int, error) {
	e.printf("\n=== %s ===\n", header)
	items, err := e.pets.List(ctx)
	if err != nil {
		return nil, -1, err
	}
	if len(items) == 0 {
		e.printf("%s\n", empty)
		return nil, -1, nil
	}
	for i, p := range items {
		e.printf("%d. %s (%s)\n", i+1, p.Name, p.Breed)
	}

	r := e.in.AcquireInt(prompt, 0, len(items))
	if err := r.Err(); err != nil {
		return nil, -1, err
	}
	return items, r.Value - 1, nil
}

func (e *Engine) editPet(ctx context.Context, s *session) error {
	items, idx, err := e.pickPet(ctx, "EDIT PET", "No pets available to edit.", "Select pet to edit (0 to cancel): ")
	if err != nil || idx < 0 {
		return err
	}
	p := items[idx]

	e.printf("1. Name: %s\n2. Breed: %s\n3. Age: %d\n4. Vaccinated: %s\n0. Back\n",
		p.Name, p.Breed, p.Age, yesNo(p.Vaccinated))
	field := e.in.AcquireInt("Select field to edit: ", 0, 4)
	if err := field.Err(); err != nil || field.Value == 0 {
		return err
	}

	var in pets.EditInput
	switch field.Value {
	case 1:
		r := e.in.Acquire("New name: ", validation.IsValidName, "Invalid name")
		if err := r.Err(); err != nil {
			return err
		}
		in.Name = &r.Value
	case 2:
		r := e.in.Acquire("New breed: ", validation.IsValidBreed, "Invalid breed")
		if err := r.Err(); err != nil {
			return err
		}
		in.Breed = &r.Value
	case 3:
		r := e.in.AcquireAge("New age: ")
		if err := r.Err(); err != nil {
			return err
		}
		// 0 deja la edad actual.
		if r.Value == 0 {
			e.printf("Age unchanged.\n")
			return nil
		}
		in.Age = &r.Value
	case 4:
		r := e.in.AcquireInt("Vaccinated? (1=Yes, 0=No): ", 0, 1)
		if err := r.Err(); err != nil {
			return err
		}
		v := r.Value == 1
		in.Vaccinated = &v
	}

	updated, err := e.pets.Edit(ctx, idx, in)
	if err != nil {
		return err
	}
	e.printf("Pet updated successfully!\n")
	s.log.Info("pet updated", map[string]any{"pet": updated.Name, "position": idx + 1})
	return nil
}

func (e *Engine) deletePet(ctx context.Context, s *session) error {
	_, idx, err := e.pickPet(ctx, "DELETE PET", "No pets available to delete.", "Select pet to delete (0 to cancel): ")
	if err != nil || idx < 0 {
		return err
	}
	p, err := e.pets.Delete(ctx, idx)
	if err != nil {
		return err
	}
	e.printf("Pet deleted successfully!\n")
	s.log.Info("pet deleted", map[string]any{"pet": p.Name})
	return nil
}

func (e *Engine) listPets(ctx context.Context) error {
	e.printf("\n=== ALL PETS ===\n")
	items, err := e.pets.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		e.printf("No pets in the system.\n")
		return nil
	}
	e.printPets(items)
	return nil
}

func (e *Engine) printPets(items []pets.Pet) {
	for i, p := range items {
		e.printf("%d. %s\n", i+1, p)
	}
}

func (e *Engine) processApplications(ctx context.Context, s *session) error {
	e.printf("\n=== PROCESS APPLICATIONS ===\n")

	pending, err := e.apps.Pending(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		e.printf("No applications to process.\n")
		return nil
	}
	for i, a := range pending {
		e.printf("%d. ID: %d, User: %s, Pet: %s\n", i+1, a.ID, a.ApplicantUsername, a.PetName)
	}

	pick := e.in.AcquireInt("Select application to process (0 to cancel): ", 0, len(pending))
	if err := pick.Err(); err != nil || pick.Value == 0 {
		return err
	}
	a := pending[pick.Value-1]

	e.printf("1. Approve\n2. Reject\n0. Back\n")
	act := e.in.AcquireInt("Enter action: ", 0, 2)
	if err := act.Err(); err != nil || act.Value == 0 {
		return err
	}

	approve := act.Value == 1
	d, err := e.apps.Process(ctx, a.ID, approve)
	if err != nil {
		return err
	}
	if approve {
		e.printf("Application approved!\n")
		if !d.PetMarked {
			e.printf("Note: no pet named %s is on record; only the application was updated.\n", a.PetName)
		}
	} else {
		e.printf("Application rejected.\n")
	}
	s.log.Info("application processed", map[string]any{
		"application_id": a.ID,
		"status":         string(d.Application.Status),
		"pet_marked":     d.PetMarked,
	})
	return nil
}

func (e *Engine) searchPets(ctx context.Context, _ *session) error {
	e.printf("\n=== SEARCH PETS ===\n")
	e.printf("1. By Name\n2. By Breed\n3. By Age Range\n0. Back\n")

	c := e.in.AcquireInt("Enter choice: ", 0, 3)
	if err := c.Err(); err != nil || c.Value == 0 {
		return err
	}

	items, err := e.pets.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		e.printf("No pets in the system.\n")
		return nil
	}

	var f pets.Filter
	switch c.Value {
	case 1:
		r := e.in.Acquire("Enter pet name to search: ", validation.IsValidName, "Invalid name")
		if err := r.Err(); err != nil {
			return err
		}
		f = pets.ByName(r.Value)
	case 2:
		r := e.in.Acquire("Enter breed to search: ", validation.IsValidBreed, "Invalid breed")
		if err := r.Err(); err != nil {
			return err
		}
		f = pets.ByBreed(r.Value)
	case 3:
		lo := e.in.AcquireInt("Enter minimum age: ", 0, pets.MaxAge)
		if err := lo.Err(); err != nil {
			return err
		}
		hi := e.in.AcquireInt("Enter maximum age: ", lo.Value, pets.MaxAge)
		if err := hi.Err(); err != nil {
			return err
		}
		f = pets.ByAgeRange(lo.Value, hi.Value)
	}

	results := pets.Search(items, f)
	if len(results) == 0 {
		e.printf("No matching pets found.\n")
		return nil
	}
	e.printf("\n=== SEARCH RESULTS ===\n")
	e.printPets(results)
	return nil
}
