package watchlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Store owns persistence for users and watchlist entries. Callers never
// touch the tables directly; uniqueness of (user_id, symbol) is enforced by
// the database index, not by in-process locking.
type Store struct {
	db *gorm.DB
}

// NewStore opens a Postgres-backed store.
func NewStore(connStr string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an existing gorm connection. Used by tests.
func NewStoreWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate automatically migrates the database schema using GORM models.
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(&User{}, &Entry{}); err != nil {
		return fmt.Errorf("failed to auto migrate schema: %w", err)
	}
	return nil
}

// Add inserts a watchlist entry for the identified user. The symbol is
// normalized to uppercase before storage; Company is stored verbatim.
// Returns ErrInvalidSymbol, ErrConflict on a duplicate (user, symbol), or
// ErrNotFound when the user row is missing and cannot be auto-created.
func (s *Store) Add(ctx context.Context, ident Identity, symbol, company string) error {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return err
	}

	if err := s.EnsureUser(ctx, ident); err != nil {
		return err
	}

	entry := Entry{
		UserID:  ident.UserID,
		Symbol:  sym,
		Company: company,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return fmt.Errorf("failed to add watchlist entry: %w", err)
	}

	slog.Info("Watchlist entry added", "user_id", ident.UserID, "symbol", sym)
	return nil
}

// Remove deletes an entry. Removing a symbol that is not on the list is a
// no-op success, so retried clicks never surface spurious failures.
func (s *Store) Remove(ctx context.Context, userID, symbol string) error {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, sym).
		Delete(&Entry{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove watchlist entry: %w", res.Error)
	}

	if res.RowsAffected > 0 {
		slog.Info("Watchlist entry removed", "user_id", userID, "symbol", sym)
	}
	return nil
}

// List returns the user's entries, newest-added first. The id tie-break
// keeps two adds within the same timestamp in a deterministic order.
func (s *Store) List(ctx context.Context, userID string) ([]Entry, error) {
	var entries []Entry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	return entries, nil
}

// Contains reports whether the symbol is already on the user's watchlist.
// Used to pre-populate button state in the UI.
func (s *Store) Contains(ctx context.Context, userID, symbol string) (bool, error) {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return false, err
	}

	var count int64
	err = s.db.WithContext(ctx).Model(&Entry{}).
		Where("user_id = ? AND symbol = ?", userID, sym).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check watchlist: %w", err)
	}
	return count > 0, nil
}

// EnsureUser creates a minimal profile row when none exists yet. This covers
// provisioning lag between sign-up and the first watchlist add; the repair
// path is logged distinctly because it masks a gap in the sign-up pipeline.
func (s *Store) EnsureUser(ctx context.Context, ident Identity) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", ident.UserID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if count > 0 {
		return nil
	}

	if ident.Email == "" {
		return ErrNotFound
	}

	name := ident.Name
	if name == "" {
		name = strings.SplitN(ident.Email, "@", 2)[0]
	}
	id := ident.UserID
	if id == "" {
		id = uuid.NewString()
	}

	user := User{
		ID:                 id,
		Email:              ident.Email,
		Name:               name,
		EmailNotifications: true,
		DarkMode:           true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with the provisioning pipeline. The row exists now,
			// which is all Add needs.
			return nil
		}
		return fmt.Errorf("failed to create user record: %w", err)
	}

	slog.Warn("Auto-repaired missing user record", "user_id", id, "email", ident.Email)
	return nil
}

// UsersForDigest returns users who opted into the periodic briefing email.
func (s *Store) UsersForDigest(ctx context.Context) ([]User, error) {
	var users []User
	err := s.db.WithContext(ctx).
		Where("email_notifications = ?", true).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query digest recipients: %w", err)
	}
	return users, nil
}

// AllSymbols returns the distinct symbols tracked across every watchlist,
// used to build the live stream subscription set.
func (s *Store) AllSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	err := s.db.WithContext(ctx).Model(&Entry{}).
		Distinct("symbol").
		Order("symbol").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query tracked symbols: %w", err)
	}
	return symbols, nil
}

// SymbolsByEmail returns the symbols tracked by the user with the given
// email, or an empty list when the user is unknown.
func (s *Store) SymbolsByEmail(ctx context.Context, email string) ([]string, error) {
	var user User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	entries, err := s.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(entries))
	for _, e := range entries {
		symbols = append(symbols, e.Symbol)
	}
	return symbols, nil
}
