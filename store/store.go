package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"successspace/errs"
	"successspace/models"
)

// Collection names. Each one is a single JSON file under the data directory.
const (
	Orders        = "orders"
	Bookings      = "bookings"
	Users         = "users"
	Sessions      = "sessions"
	Events        = "events"
	Inventory     = "inventory"
	Branding      = "branding"
	Menu          = "menu"
	Workspaces    = "workspaces"
	Alerts        = "alerts"
	Notifications = "notifications"
)

// Store persists whole collections as indented JSON files. Every
// read-modify-write runs under that collection's mutex, so two concurrent
// writers to the same collection are serialized instead of last-write-wins.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errs.Storage("data dir", err)
	}
	s := &Store{dir: dir, locks: make(map[string]*sync.Mutex)}
	if err := s.seed(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) lock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *Store) readFile(collection string, v any) error {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		return errs.Storage(collection, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errs.Storage(collection, err)
	}
	return nil
}

func (s *Store) writeFile(collection string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errs.Storage(collection, err)
	}
	tmp := s.path(collection) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errs.Storage(collection, err)
	}
	if err := os.Rename(tmp, s.path(collection)); err != nil {
		return errs.Storage(collection, err)
	}
	return nil
}

// List reads a whole array collection.
func List[T any](s *Store, collection string) ([]T, error) {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()
	var items []T
	if err := s.readFile(collection, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Replace overwrites a whole array collection.
func Replace[T any](s *Store, collection string, items []T) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()
	if items == nil {
		items = []T{}
	}
	return s.writeFile(collection, items)
}

// Update applies fn to an array collection under its lock and persists the
// result. fn returning an error leaves the file untouched.
func Update[T any](s *Store, collection string, fn func([]T) ([]T, error)) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()
	var items []T
	if err := s.readFile(collection, &items); err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	if next == nil {
		next = []T{}
	}
	return s.writeFile(collection, next)
}

// Append adds one record to an array collection.
func Append[T any](s *Store, collection string, item T) error {
	return Update(s, collection, func(items []T) ([]T, error) {
		return append(items, item), nil
	})
}

// Object reads a single-object collection (sessions, branding).
func Object[T any](s *Store, collection string) (T, error) {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()
	var v T
	if err := s.readFile(collection, &v); err != nil {
		return v, err
	}
	return v, nil
}

// UpdateObject applies fn to a single-object collection under its lock.
func UpdateObject[T any](s *Store, collection string, fn func(T) (T, error)) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()
	var v T
	if err := s.readFile(collection, &v); err != nil {
		return err
	}
	next, err := fn(v)
	if err != nil {
		return err
	}
	return s.writeFile(collection, next)
}

// seed creates any missing collection file with its default contents,
// mirroring the site's first-run state. Users are seeded separately by the
// auth package because their passwords need hashing.
func (s *Store) seed() error {
	empty := []string{Orders, Bookings, Events, Alerts, Notifications}
	for _, c := range empty {
		if err := s.seedIfMissing(c, []any{}); err != nil {
			return err
		}
	}
	if err := s.seedIfMissing(Sessions, map[string]models.Session{}); err != nil {
		return err
	}
	if err := s.seedIfMissing(Inventory, []models.InventoryItem{
		{ID: "drip", Name: "Drip Coffee Beans (lb)", Qty: 20},
		{ID: "milk", Name: "Milk (gallons)", Qty: 10},
		{ID: "oat", Name: "Oat Milk (cartons)", Qty: 8},
		{ID: "cups12", Name: "12oz Cups", Qty: 200},
	}); err != nil {
		return err
	}
	if err := s.seedIfMissing(Menu, []models.MenuItem{
		{ID: "drip", Name: "Drip Coffee", Price: 3.00, Description: "Freshly brewed single-origin coffee."},
		{ID: "latte", Name: "Latte", Price: 4.50, Description: "Espresso with steamed milk."},
		{ID: "muffin", Name: "Blueberry Muffin", Price: 2.75, Description: "Fresh-baked, lightly sweet."},
	}); err != nil {
		return err
	}
	if err := s.seedIfMissing(Workspaces, []models.Workspace{
		{ID: "open-desk", Name: "Hot Desk", Type: "open-desk", Capacity: 1, Description: "Flexible seating in open area."},
		{ID: "private-office", Name: "Private Office", Type: "private-office", Capacity: 4, Description: "Quiet office for teams."},
		{ID: "conference", Name: "Conference Room", Type: "conference", Capacity: 8, Description: "AV-equipped meeting room."},
	}); err != nil {
		return err
	}
	return s.seedIfMissing(Branding, models.Branding{
		SiteName:     "SUCCESS Space",
		PrimaryColor: "#0ea5e9",
		MenuImages:   map[string]string{},
	})
}

func (s *Store) seedIfMissing(collection string, v any) error {
	if _, err := os.Stat(s.path(collection)); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errs.Storage(collection, err)
	}
	return s.writeFile(collection, v)
}

// Exists reports whether a collection file is already on disk.
func (s *Store) Exists(collection string) bool {
	_, err := os.Stat(s.path(collection))
	return err == nil
}
