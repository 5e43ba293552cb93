// Package file implementa el record store en archivos planos: una colección en
// memoria por entidad, reescrita completa en su archivo en cada mutación.
package file

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/platform/logger"
)

const (
	DefaultUsersFile        = "users.dat"
	DefaultPetsFile         = "pets.dat"
	DefaultApplicationsFile = "applications.dat"
)

type Options struct {
	Dir              string
	UsersFile        string
	PetsFile         string
	ApplicationsFile string

	// SeedDemoPets carga Whiskers y Rex si el archivo de mascotas no existe.
	SeedDemoPets bool

	Logger logger.Logger
}

// Store es el dueño de las tres colecciones y del contador de IDs de solicitudes.
// Asume acceso exclusivo de un solo proceso a sus archivos.
type Store struct {
	mu  sync.Mutex
	log logger.Logger

	usersPath string
	petsPath  string
	appsPath  string

	users  []users.User
	pets   []pets.Pet
	apps   []applications.Application
	nextID int
}

func demoPets() []pets.Pet {
	return []pets.Pet{
		{Name: "Whiskers", Breed: "Siamese", Age: 2, Vaccinated: true},
		{Name: "Rex", Breed: "Labrador", Age: 3, Vaccinated: true},
	}
}

// Open carga el store desde disco. Archivos faltantes o ilegibles degradan a
// colección vacía; líneas corruptas se saltean con warning. Solo falla si el
// directorio no se puede crear o si no se puede persistir el admin de bootstrap.
func Open(opts Options) (*Store, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &apperr.PersistenceError{Op: "open", Path: dir, Err: err}
	}

	s := &Store{
		log:       log.With(map[string]any{"component": "store"}),
		usersPath: filepath.Join(dir, orDefault(opts.UsersFile, DefaultUsersFile)),
		petsPath:  filepath.Join(dir, orDefault(opts.PetsFile, DefaultPetsFile)),
		appsPath:  filepath.Join(dir, orDefault(opts.ApplicationsFile, DefaultApplicationsFile)),
		nextID:    1,
	}

	s.loadUsers()
	petsExisted := s.loadPets()
	s.loadApplications()

	if len(s.users) == 0 {
		s.users = []users.User{{
			Username: users.BootstrapUsername,
			Password: users.BootstrapPassword,
			Role:     users.RoleAdmin,
		}}
		if err := s.saveUsers(); err != nil {
			return nil, err
		}
		s.log.Info("seeded bootstrap admin", map[string]any{"username": users.BootstrapUsername})
	}

	if !petsExisted && opts.SeedDemoPets {
		s.pets = demoPets()
		if err := s.savePets(); err != nil {
			return nil, err
		}
		s.log.Info("seeded demo pets", map[string]any{"count": len(s.pets)})
	}

	s.log.Debug("store loaded", map[string]any{
		"users":        len(s.users),
		"pets":         len(s.pets),
		"applications": len(s.apps),
		"next_id":      s.nextID,
	})
	return s, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// -------------------------
// Load
// -------------------------

// readLines devuelve las líneas no vacías del archivo. exists=false si no existe.
func (s *Store) readLines(path string) (lines []string, exists bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false
		}
		s.log.Error("data file unreadable, starting empty", map[string]any{
			"path":  path,
			"error": (&apperr.PersistenceError{Op: "load", Path: path, Err: err}).Error(),
		})
		return nil, true
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		s.log.Warn("data file truncated while scanning", map[string]any{"path": path, "error": err.Error()})
	}
	return lines, true
}

func (s *Store) skip(path string, lineNo int, err error) {
	s.log.Warn("skipping malformed line", map[string]any{
		"path":  path,
		"line":  lineNo,
		"error": err.Error(),
	})
}

func (s *Store) loadUsers() {
	lines, _ := s.readLines(s.usersPath)
	seen := map[string]struct{}{}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		u, err := decodeUser(line)
		if err != nil {
			s.skip(s.usersPath, i+1, err)
			continue
		}
		if _, dup := seen[u.Username]; dup {
			s.skip(s.usersPath, i+1, errors.New("duplicate username"))
			continue
		}
		seen[u.Username] = struct{}{}
		s.users = append(s.users, u)
	}
}

func (s *Store) loadPets() bool {
	lines, exists := s.readLines(s.petsPath)
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, err := decodePet(line)
		if err != nil {
			s.skip(s.petsPath, i+1, err)
			continue
		}
		s.pets = append(s.pets, p)
	}
	return exists
}

func (s *Store) loadApplications() {
	lines, _ := s.readLines(s.appsPath)
	seen := map[int]struct{}{}
	maxID := 0
	header := false

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if n, ok, err := decodeNextID(line); ok {
			if err != nil {
				s.skip(s.appsPath, i+1, err)
				continue
			}
			if !header {
				s.nextID = n
				header = true
			}
			continue
		}

		a, err := decodeApplication(line)
		if err != nil {
			s.skip(s.appsPath, i+1, err)
			continue
		}
		if _, dup := seen[a.ID]; dup {
			s.skip(s.appsPath, i+1, errors.New("duplicate application id"))
			continue
		}
		seen[a.ID] = struct{}{}
		if a.ID > maxID {
			maxID = a.ID
		}
		s.apps = append(s.apps, a)
	}

	if len(s.apps) > 0 && !header {
		s.log.Warn("applications file without NEXT_ID header, recomputing", map[string]any{"path": s.appsPath})
	}
	// El contador nunca reutiliza un ID existente.
	if s.nextID <= maxID {
		s.nextID = maxID + 1
	}
}

// -------------------------
// Save
// -------------------------

func (s *Store) saveUsers() error {
	lines := make([]string, 0, len(s.users))
	for _, u := range s.users {
		lines = append(lines, encodeUser(u))
	}
	return s.write(s.usersPath, lines)
}

func (s *Store) savePets() error {
	lines := make([]string, 0, len(s.pets))
	for _, p := range s.pets {
		lines = append(lines, encodePet(p))
	}
	return s.write(s.petsPath, lines)
}

func (s *Store) saveApplications() error {
	lines := make([]string, 0, len(s.apps)+1)
	lines = append(lines, encodeNextID(s.nextID))
	for _, a := range s.apps {
		lines = append(lines, encodeApplication(a))
	}
	return s.write(s.appsPath, lines)
}

// write reescribe el archivo completo vía temp + rename en el mismo directorio.
func (s *Store) write(path string, lines []string) error {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}

	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		perr := &apperr.PersistenceError{Op: "save", Path: path, Err: err}
		s.log.Error("persist failed", map[string]any{"path": path, "error": err.Error()})
		return perr
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// -------------------------
// Accessors por entidad
// -------------------------

func (s *Store) Users() users.Repository               { return &userRepo{s: s} }
func (s *Store) Pets() pets.Repository                 { return &petRepo{s: s} }
func (s *Store) Applications() applications.Repository { return &applicationRepo{s: s} }

// Paths expone las rutas de los archivos (logs y diagnósticos).
func (s *Store) Paths() (usersPath, petsPath, appsPath string) {
	return s.usersPath, s.petsPath, s.appsPath
}
