package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/date-spark/api-go/models"
)

// Storage persists the three record families: memories, favorites and the
// preferences singleton. Persistence is best-effort: reads on a broken
// store yield empty results plus a log line rather than failing the
// caller's action.
type Storage interface {
	Memories() []models.Memory
	AddMemory(m models.Memory) (models.Memory, error)
	Favorites() []models.Favorite
	AddFavorite(f models.Favorite) (models.Favorite, error)
	// Preferences returns nil when the user never saved any.
	Preferences() *models.Preference
	// SavePreferences overwrites the singleton wholesale.
	SavePreferences(p models.Preference) error
}

// GormStorage is the database-backed implementation used in live mode.
type GormStorage struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewGormStorage(db *gorm.DB, log *zap.Logger) *GormStorage {
	return &GormStorage{db: db, log: log}
}

func (s *GormStorage) Memories() []models.Memory {
	memories := make([]models.Memory, 0)
	if err := s.db.Order("date DESC").Find(&memories).Error; err != nil {
		s.log.Error("reading memories", zap.Error(err))
		return []models.Memory{}
	}
	return memories
}

func (s *GormStorage) AddMemory(m models.Memory) (models.Memory, error) {
	fillMemoryDefaults(&m)
	if err := s.db.Create(&m).Error; err != nil {
		s.log.Error("saving memory", zap.Error(err))
		return m, err
	}
	return m, nil
}

func (s *GormStorage) Favorites() []models.Favorite {
	favorites := make([]models.Favorite, 0)
	if err := s.db.Order("saved_at DESC").Find(&favorites).Error; err != nil {
		s.log.Error("reading favorites", zap.Error(err))
		return []models.Favorite{}
	}
	return favorites
}

func (s *GormStorage) AddFavorite(f models.Favorite) (models.Favorite, error) {
	fillFavoriteDefaults(&f)
	if err := s.db.Create(&f).Error; err != nil {
		s.log.Error("saving favorite", zap.Error(err))
		return f, err
	}
	return f, nil
}

func (s *GormStorage) Preferences() *models.Preference {
	var p models.Preference
	if err := s.db.First(&p, preferenceRowID).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			s.log.Error("reading preferences", zap.Error(err))
		}
		return nil
	}
	return &p
}

func (s *GormStorage) SavePreferences(p models.Preference) error {
	p.ID = preferenceRowID
	if err := s.db.Save(&p).Error; err != nil {
		s.log.Error("saving preferences", zap.Error(err))
		return err
	}
	return nil
}

// The preferences record is a singleton per device; one fixed row.
const preferenceRowID = 1

// MemoryStorage keeps everything in process memory. Used in mock mode and
// by tests; mirrors the newest-first prepend semantics of the database
// implementation.
type MemoryStorage struct {
	mu        sync.RWMutex
	memories  []models.Memory
	favorites []models.Favorite
	prefs     *models.Preference
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Memories() []models.Memory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Memory, len(s.memories))
	copy(out, s.memories)
	return out
}

func (s *MemoryStorage) AddMemory(m models.Memory) (models.Memory, error) {
	fillMemoryDefaults(&m)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memories = append([]models.Memory{m}, s.memories...)
	return m, nil
}

func (s *MemoryStorage) Favorites() []models.Favorite {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Favorite, len(s.favorites))
	copy(out, s.favorites)
	return out
}

func (s *MemoryStorage) AddFavorite(f models.Favorite) (models.Favorite, error) {
	fillFavoriteDefaults(&f)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites = append([]models.Favorite{f}, s.favorites...)
	return f, nil
}

func (s *MemoryStorage) Preferences() *models.Preference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.prefs == nil {
		return nil
	}
	p := *s.prefs
	return &p
}

func (s *MemoryStorage) SavePreferences(p models.Preference) error {
	p.ID = preferenceRowID
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = &p
	return nil
}

func fillMemoryDefaults(m *models.Memory) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Date.IsZero() {
		m.Date = time.Now().UTC()
	}
}

func fillFavoriteDefaults(f *models.Favorite) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.SavedAt.IsZero() {
		f.SavedAt = time.Now().UTC()
	}
}
