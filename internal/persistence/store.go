// Package persistence is the durable storage layer: a PostgreSQL store
// (pgxpool connection, QueryRow/Scan repositories, goose migrations), a
// Redis read cache, and the bounded-channel pipeline that isolates both
// from the tick loop.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/embervale/coreserver/internal/model"
	"github.com/embervale/coreserver/internal/persistence/migrations"
)

// Store wraps a pgx connection pool and implements every durable query
// the game server needs: account lookup/creation and full character
// load/save, via a query-then-Scan repository style.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a Store handle.
func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

var gooseOnce sync.Once

// Migrate runs every pending goose migration against dsn.
func Migrate(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("opening sql connection for migrations: %w", err)
	}
	defer sqlDB.Close()

	var dialectErr error
	gooseOnce.Do(func() {
		goose.SetBaseFS(migrations.FS)
		dialectErr = goose.SetDialect("postgres")
	})
	if dialectErr != nil {
		return fmt.Errorf("setting goose dialect: %w", dialectErr)
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// GetAccountByUsername returns nil, nil if the account does not exist.
func (s *Store) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	username = strings.ToLower(username)
	var acc model.Account
	err := s.pool.QueryRow(ctx,
		`SELECT account_id, username, password_hash, is_admin, last_login
		 FROM accounts WHERE username = $1`, username,
	).Scan(&acc.AccountID, &acc.Username, &acc.PasswordHash, &acc.IsAdmin, &acc.LastLogin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying account %q: %w", username, err)
	}
	return &acc, nil
}

// CreateAccount inserts a new account with the given bcrypt password
// hash and returns the account it created.
func (s *Store) CreateAccount(ctx context.Context, username, passwordHash string) (*model.Account, error) {
	username = strings.ToLower(username)
	var accountID int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO accounts (username, password_hash, last_login)
		 VALUES ($1, $2, $3) RETURNING account_id`,
		username, passwordHash, time.Now(),
	).Scan(&accountID)
	if err != nil {
		return nil, fmt.Errorf("creating account %q: %w", username, err)
	}
	return &model.Account{AccountID: accountID, Username: username, PasswordHash: passwordHash, LastLogin: time.Now()}, nil
}

// UpdateLastLogin stamps last_login to now for accountID.
func (s *Store) UpdateLastLogin(ctx context.Context, accountID int64) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE accounts SET last_login = $1 WHERE account_id = $2`,
		time.Now(), accountID,
	)
	if err != nil {
		return fmt.Errorf("updating last login for account %d: %w", accountID, err)
	}
	return nil
}

// ListCharacters returns every character belonging to accountID, ordered
// by creation so character-select slots stay stable across logins.
func (s *Store) ListCharacters(ctx context.Context, accountID int64) ([]model.Character, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT character_id, account_id, name, class, gender, empire, level, created_at
		 FROM characters WHERE account_id = $1 ORDER BY created_at ASC`, accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing characters for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var out []model.Character
	for rows.Next() {
		var c model.Character
		if err := rows.Scan(&c.CharacterID, &c.AccountID, &c.Name, &c.Class, &c.Gender, &c.Empire, &c.Level, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning character row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CharacterBundle is a character's full persisted footprint: identity,
// mutable state, inventory and equipment, loaded/saved as one unit.
type CharacterBundle struct {
	Character model.Character
	State     model.PersistedState
	Inventory model.Inventory
	Equipment model.Equipment
}

// CreateCharacter inserts a brand-new character plus its starting state,
// inventory and equipment, inside a single transaction.
func (s *Store) CreateCharacter(ctx context.Context, accountID int64, name string, class model.Class, gender model.Gender, empire model.Empire, state model.PersistedState, inv model.Inventory, equip model.Equipment) (CharacterBundle, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return CharacterBundle{}, fmt.Errorf("beginning create-character transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var characterID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO characters (account_id, name, class, gender, empire, level, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING character_id`,
		accountID, name, class, gender, empire, state.Level, time.Now(),
	).Scan(&characterID)
	if err != nil {
		return CharacterBundle{}, fmt.Errorf("inserting character %q: %w", name, err)
	}

	if err := insertPersistedState(ctx, tx, characterID, state); err != nil {
		return CharacterBundle{}, err
	}
	if err := replaceInventory(ctx, tx, characterID, inv); err != nil {
		return CharacterBundle{}, err
	}
	if err := upsertEquipment(ctx, tx, characterID, equip); err != nil {
		return CharacterBundle{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return CharacterBundle{}, fmt.Errorf("committing create-character transaction: %w", err)
	}

	return CharacterBundle{
		Character: model.Character{CharacterID: characterID, AccountID: accountID, Name: name, Class: class, Gender: gender, Empire: empire, Level: state.Level, CreatedAt: time.Now()},
		State:     state,
		Inventory: inv,
		Equipment: equip,
	}, nil
}

// LoadCharacter returns the full bundle for characterID, or (zero, false,
// nil) if the character does not exist.
func (s *Store) LoadCharacter(ctx context.Context, characterID int64) (CharacterBundle, bool, error) {
	var bundle CharacterBundle
	var c model.Character
	err := s.pool.QueryRow(ctx,
		`SELECT character_id, account_id, name, class, gender, empire, level, created_at
		 FROM characters WHERE character_id = $1`, characterID,
	).Scan(&c.CharacterID, &c.AccountID, &c.Name, &c.Class, &c.Gender, &c.Empire, &c.Level, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CharacterBundle{}, false, nil
		}
		return CharacterBundle{}, false, fmt.Errorf("querying character %d: %w", characterID, err)
	}
	bundle.Character = c

	state, err := loadPersistedState(ctx, s.pool, characterID)
	if err != nil {
		return CharacterBundle{}, false, err
	}
	bundle.State = state

	inv, err := loadInventory(ctx, s.pool, characterID)
	if err != nil {
		return CharacterBundle{}, false, err
	}
	bundle.Inventory = inv

	equip, err := loadEquipment(ctx, s.pool, characterID)
	if err != nil {
		return CharacterBundle{}, false, err
	}
	bundle.Equipment = equip

	return bundle, true, nil
}

// DeleteCharacter removes a character and, via ON DELETE CASCADE, its
// persisted state, inventory and equipment rows.
func (s *Store) DeleteCharacter(ctx context.Context, characterID int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM characters WHERE character_id = $1`, characterID)
	if err != nil {
		return fmt.Errorf("deleting character %d: %w", characterID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting character %d: %w", characterID, pgx.ErrNoRows)
	}
	return nil
}

// SaveCharacter persists the full bundle, overwriting state, inventory
// and equipment and refreshing characters.level, all inside one
// transaction so a crash mid-save never leaves a half-written character.
func (s *Store) SaveCharacter(ctx context.Context, bundle CharacterBundle) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning save-character transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE characters SET level = $1 WHERE character_id = $2`, bundle.State.Level, bundle.Character.CharacterID); err != nil {
		return fmt.Errorf("updating character level: %w", err)
	}
	if err := upsertPersistedState(ctx, tx, bundle.Character.CharacterID, bundle.State); err != nil {
		return err
	}
	if err := replaceInventory(ctx, tx, bundle.Character.CharacterID, bundle.Inventory); err != nil {
		return err
	}
	if err := upsertEquipment(ctx, tx, bundle.Character.CharacterID, bundle.Equipment); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing save-character transaction: %w", err)
	}
	return nil
}

func insertPersistedState(ctx context.Context, tx pgx.Tx, characterID int64, st model.PersistedState) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO persisted_state (character_id, zone_id, pos_x, pos_y, pos_z, rotation, health, max_health, mana, max_mana, level, experience, attack, defense, gold)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		characterID, st.ZoneID, st.Position.X, st.Position.Y, st.Position.Z, st.Rotation,
		st.Health, st.MaxHealth, st.Mana, st.MaxMana, st.Level, st.Experience, st.Attack, st.Defense, st.Gold,
	)
	if err != nil {
		return fmt.Errorf("inserting persisted state for character %d: %w", characterID, err)
	}
	return nil
}

func upsertPersistedState(ctx context.Context, tx pgx.Tx, characterID int64, st model.PersistedState) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO persisted_state (character_id, zone_id, pos_x, pos_y, pos_z, rotation, health, max_health, mana, max_mana, level, experience, attack, defense, gold)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		 ON CONFLICT (character_id) DO UPDATE SET
		   zone_id = EXCLUDED.zone_id, pos_x = EXCLUDED.pos_x, pos_y = EXCLUDED.pos_y, pos_z = EXCLUDED.pos_z,
		   rotation = EXCLUDED.rotation, health = EXCLUDED.health, max_health = EXCLUDED.max_health,
		   mana = EXCLUDED.mana, max_mana = EXCLUDED.max_mana, level = EXCLUDED.level,
		   experience = EXCLUDED.experience, attack = EXCLUDED.attack, defense = EXCLUDED.defense, gold = EXCLUDED.gold`,
		characterID, st.ZoneID, st.Position.X, st.Position.Y, st.Position.Z, st.Rotation,
		st.Health, st.MaxHealth, st.Mana, st.MaxMana, st.Level, st.Experience, st.Attack, st.Defense, st.Gold,
	)
	if err != nil {
		return fmt.Errorf("upserting persisted state for character %d: %w", characterID, err)
	}
	return nil
}

func loadPersistedState(ctx context.Context, pool *pgxpool.Pool, characterID int64) (model.PersistedState, error) {
	var st model.PersistedState
	err := pool.QueryRow(ctx,
		`SELECT zone_id, pos_x, pos_y, pos_z, rotation, health, max_health, mana, max_mana, level, experience, attack, defense, gold
		 FROM persisted_state WHERE character_id = $1`, characterID,
	).Scan(&st.ZoneID, &st.Position.X, &st.Position.Y, &st.Position.Z, &st.Rotation,
		&st.Health, &st.MaxHealth, &st.Mana, &st.MaxMana, &st.Level, &st.Experience, &st.Attack, &st.Defense, &st.Gold)
	if err != nil {
		return model.PersistedState{}, fmt.Errorf("querying persisted state for character %d: %w", characterID, err)
	}
	return st, nil
}

func replaceInventory(ctx context.Context, tx pgx.Tx, characterID int64, inv model.Inventory) error {
	if _, err := tx.Exec(ctx, `DELETE FROM inventory_slots WHERE character_id = $1`, characterID); err != nil {
		return fmt.Errorf("clearing inventory for character %d: %w", characterID, err)
	}
	for i, slot := range inv.Slots {
		if slot.Empty() {
			continue
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO inventory_slots (character_id, slot_index, item_id, quantity) VALUES ($1,$2,$3,$4)`,
			characterID, i, slot.ItemID, slot.Quantity,
		); err != nil {
			return fmt.Errorf("inserting inventory slot %d for character %d: %w", i, characterID, err)
		}
	}
	return nil
}

func loadInventory(ctx context.Context, pool *pgxpool.Pool, characterID int64) (model.Inventory, error) {
	rows, err := pool.Query(ctx,
		`SELECT slot_index, item_id, quantity FROM inventory_slots WHERE character_id = $1`, characterID)
	if err != nil {
		return model.Inventory{}, fmt.Errorf("querying inventory for character %d: %w", characterID, err)
	}
	defer rows.Close()

	var inv model.Inventory
	for rows.Next() {
		var idx int
		var slot model.InventorySlot
		if err := rows.Scan(&idx, &slot.ItemID, &slot.Quantity); err != nil {
			return model.Inventory{}, fmt.Errorf("scanning inventory row for character %d: %w", characterID, err)
		}
		if idx < 0 || idx >= model.InventorySize {
			continue
		}
		inv.Slots[idx] = slot
	}
	return inv, rows.Err()
}

func upsertEquipment(ctx context.Context, tx pgx.Tx, characterID int64, equip model.Equipment) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO equipment (character_id, weapon_id, armor_id) VALUES ($1,$2,$3)
		 ON CONFLICT (character_id) DO UPDATE SET weapon_id = EXCLUDED.weapon_id, armor_id = EXCLUDED.armor_id`,
		characterID, equip.WeaponID, equip.ArmorID,
	)
	if err != nil {
		return fmt.Errorf("upserting equipment for character %d: %w", characterID, err)
	}
	return nil
}

func loadEquipment(ctx context.Context, pool *pgxpool.Pool, characterID int64) (model.Equipment, error) {
	var equip model.Equipment
	err := pool.QueryRow(ctx,
		`SELECT weapon_id, armor_id FROM equipment WHERE character_id = $1`, characterID,
	).Scan(&equip.WeaponID, &equip.ArmorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Equipment{}, nil
		}
		return model.Equipment{}, fmt.Errorf("querying equipment for character %d: %w", characterID, err)
	}
	return equip, nil
}
