package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/platform/apperr"
)

func open(t *testing.T, dir string, seed bool) *Store {
	t.Helper()
	s, err := Open(Options{Dir: dir, SeedDemoPets: seed})
	require.NoError(t, err)
	return s
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestOpen_EmptyDir_SeedsBootstrapAdmin(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s := open(t, dir, false)

	all, err := s.Users().List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, users.User{Username: "admin", Password: "admin123", Role: users.RoleAdmin}, all[0])
	assert.Equal(t, "admin,admin123,0\n", readFile(t, filepath.Join(dir, DefaultUsersFile)))

	p, err := s.Pets().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, p)
	_, err = os.Stat(filepath.Join(dir, DefaultPetsFile))
	assert.True(t, os.IsNotExist(err), "pets file must not be created without mutation")
}

func TestOpen_SeedDemoPets_OnlyWhenFileMissing(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s := open(t, dir, true)
	items, _ := s.Pets().List(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, "Whiskers,Siamese,2,1,0\nRex,Labrador,3,1,0\n", readFile(t, filepath.Join(dir, DefaultPetsFile)))

	require.NoError(t, s.Pets().Delete(ctx, 0))
	require.NoError(t, s.Pets().Delete(ctx, 0))

	// Un archivo vacío existente no se vuelve a sembrar.
	s = open(t, dir, true)
	items, _ = s.Pets().List(ctx)
	assert.Empty(t, items)
}

func TestOpen_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	writeFile(t, filepath.Join(dir, DefaultPetsFile), "Rex,Labrador,3,1,0\nbroken line\n")
	writeFile(t, filepath.Join(dir, DefaultUsersFile), "alice,pw,1\nalice,dup,1\nbad\nboss1,root,0\n")

	s := open(t, dir, true)

	items, _ := s.Pets().List(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, "Rex", items[0].Name)

	all, _ := s.Users().List(ctx)
	require.Len(t, all, 2, "duplicate and malformed user lines are skipped")
	assert.Equal(t, "pw", all[0].Password)
	_, err := s.Users().GetByUsername(ctx, "admin")
	assert.ErrorIs(t, err, apperr.ErrNotFound, "no bootstrap seeding when users were loaded")
}

func TestApplications_IDCounterSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s := open(t, dir, true)
	a1, err := s.Applications().Create(ctx, "alice", "Rex")
	require.NoError(t, err)
	a2, err := s.Applications().Create(ctx, "bobby", "Whiskers")
	require.NoError(t, err)
	assert.Equal(t, 1, a1.ID)
	assert.Equal(t, 2, a2.ID)
	assert.Equal(t, "NEXT_ID:3\n1,alice,Rex,Pending\n2,bobby,Whiskers,Pending\n",
		readFile(t, filepath.Join(dir, DefaultApplicationsFile)))

	s = open(t, dir, true)
	a3, err := s.Applications().Create(ctx, "alice", "Whiskers")
	require.NoError(t, err)
	assert.Equal(t, 3, a3.ID)
}

func TestApplications_CounterNeverBelowMaxID(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	writeFile(t, filepath.Join(dir, DefaultApplicationsFile), "NEXT_ID:2\n5,alice,Rex,Pending\n")

	s := open(t, dir, false)
	a, err := s.Applications().Create(ctx, "alice", "Rex")
	require.NoError(t, err)
	assert.Equal(t, 6, a.ID)

	// Sin header también se recalcula.
	dir = t.TempDir()
	writeFile(t, filepath.Join(dir, DefaultApplicationsFile), "3,alice,Rex,Approved\n")
	s = open(t, dir, false)
	a, err = s.Applications().Create(ctx, "alice", "Rex")
	require.NoError(t, err)
	assert.Equal(t, 4, a.ID)
}

func TestDecide_ApproveMarksFirstMatchingPet(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	writeFile(t, filepath.Join(dir, DefaultPetsFile), "Rex,Labrador,3,1,0\nRex,Poodle,1,0,0\nLuna,Mixed,2,0,0\n")

	s := open(t, dir, false)
	a, err := s.Applications().Create(ctx, "alice", "Rex")
	require.NoError(t, err)

	d, err := s.Applications().Decide(ctx, a.ID, true)
	require.NoError(t, err)
	assert.Equal(t, applications.StatusApproved, d.Application.Status)
	assert.True(t, d.PetMarked)

	items, _ := s.Pets().List(ctx)
	assert.True(t, items[0].Adopted, "first Rex is adopted")
	assert.False(t, items[1].Adopted, "second Rex is untouched")

	// Ambos archivos persistidos.
	s = open(t, dir, false)
	items, _ = s.Pets().List(ctx)
	assert.True(t, items[0].Adopted)
	got, err := s.Applications().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, applications.StatusApproved, got.Status)

	_, err = s.Applications().Decide(ctx, a.ID, false)
	assert.ErrorIs(t, err, apperr.ErrBadState)
}

func TestDecide_RejectLeavesPetsUnchanged(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s := open(t, dir, true)
	before, _ := s.Pets().List(ctx)
	a, _ := s.Applications().Create(ctx, "alice", "Rex")

	d, err := s.Applications().Decide(ctx, a.ID, false)
	require.NoError(t, err)
	assert.Equal(t, applications.StatusRejected, d.Application.Status)
	assert.False(t, d.PetMarked)

	after, _ := s.Pets().List(ctx)
	assert.Equal(t, before, after)
}

func TestDecide_DanglingApplicationOnlyUpdatesStatus(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s := open(t, dir, true)
	a, _ := s.Applications().Create(ctx, "alice", "Rex")
	require.NoError(t, s.Pets().Delete(ctx, 1)) // Rex

	all, _ := s.Applications().List(ctx)
	require.Len(t, all, 1, "deleting a pet does not cascade")

	d, err := s.Applications().Decide(ctx, a.ID, true)
	require.NoError(t, err)
	assert.Equal(t, applications.StatusApproved, d.Application.Status)
	assert.False(t, d.PetMarked)

	items, _ := s.Pets().List(ctx)
	require.Len(t, items, 1)
	assert.False(t, items[0].Adopted)

	_, err = s.Applications().Decide(ctx, 42, true)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUsers_CRUD(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	s := open(t, dir, false)
	repo := s.Users()

	require.NoError(t, repo.Create(ctx, users.User{Username: "alice", Password: "pw", Role: users.RoleRegularUser}))
	assert.ErrorIs(t, repo.Create(ctx, users.User{Username: "alice", Password: "x"}), apperr.ErrConflict)

	_, err := repo.Update(ctx, "alice", "admin", "pw")
	assert.ErrorIs(t, err, apperr.ErrConflict)
	u, err := repo.Update(ctx, "alice", "alice2", "new")
	require.NoError(t, err)
	assert.Equal(t, "alice2", u.Username)
	_, err = repo.Update(ctx, "ghost", "x", "y")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "alice2"))
	assert.ErrorIs(t, repo.Delete(ctx, "alice2"), apperr.ErrNotFound)
	assert.Equal(t, "admin,admin123,0\n", readFile(t, filepath.Join(dir, DefaultUsersFile)))
}

func TestPets_IndexBounds(t *testing.T) {
	ctx := context.Background()
	s := open(t, t.TempDir(), true)
	repo := s.Pets()

	_, err := repo.Get(ctx, 2)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, -1, pets.Pet{}), apperr.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 9), apperr.ErrNotFound)

	_, idx, err := repo.FirstByName(ctx, "Rex")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestPersistenceFailure_RollsBackMemory(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	// Un directorio en lugar del archivo: la carga degrada a vacío y toda escritura falla.
	require.NoError(t, os.Mkdir(filepath.Join(dir, DefaultPetsFile), 0o755))

	s := open(t, dir, true)
	items, _ := s.Pets().List(ctx)
	assert.Empty(t, items, "unreadable pets file degrades to empty and is not seeded")

	err := s.Pets().Create(ctx, pets.Pet{Name: "Rex", Breed: "Lab", Age: 1})
	require.Error(t, err)
	assert.True(t, apperr.IsPersistence(err))

	items, _ = s.Pets().List(ctx)
	assert.Empty(t, items, "failed write must not leave the record in memory")

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp-"), "temp file left behind: %s", e.Name())
	}
}

func TestOpen_FailsWhenBootstrapCannotPersist(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, DefaultUsersFile), 0o755))

	_, err := Open(Options{Dir: dir})
	require.Error(t, err)
	assert.True(t, apperr.IsPersistence(err))
}
