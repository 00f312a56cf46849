package db

import "gorm.io/gorm"

// Store wraps the database and hands out repositories, either bound to the
// shared connection or to a single transaction.
type Store struct {
	database *gorm.DB
}

func NewStore(database *gorm.DB) *Store {
	return &Store{database: database}
}

func (store *Store) Repositories() *Repositories {
	return NewRepositories(store.database)
}

// Transaction runs fn against repositories bound to one transaction; any
// error rolls back every write made inside fn.
func (store *Store) Transaction(fn func(repos *Repositories) error) error {
	return store.database.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

type Repositories struct {
	Users  *UserRepository
	Tasks  *TaskRepository
	Badges *BadgeRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:  NewUserRepository(database),
		Tasks:  NewTaskRepository(database),
		Badges: NewBadgeRepository(database),
	}
}
