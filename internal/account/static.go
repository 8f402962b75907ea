package account

import (
	"context"
	"fmt"
	"sync"
)

// StaticDirectory is a deterministic, in-process account directory.
// Accounts without configured users or limits behave like a failed remote lookup.
type StaticDirectory struct {
	mu            sync.RWMutex
	users         map[int][]string
	maxAssets     map[int]int
	maxCategories map[int]int
	userLookups   int
}

// NewStaticDirectory creates an empty directory
func NewStaticDirectory() *StaticDirectory {
	return &StaticDirectory{
		users:         make(map[int][]string),
		maxAssets:     make(map[int]int),
		maxCategories: make(map[int]int),
	}
}

// SetUsers replaces the users associated with an account
func (d *StaticDirectory) SetUsers(accountID int, userIDs ...string) *StaticDirectory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[accountID] = append([]string{}, userIDs...)
	return d
}

// SetPlan sets the plan limits of an account
func (d *StaticDirectory) SetPlan(accountID, maxAssets, maxCategories int) *StaticDirectory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.maxAssets[accountID] = maxAssets
	d.maxCategories[accountID] = maxCategories
	return d
}

// Forget removes everything known about an account
func (d *StaticDirectory) Forget(accountID int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.users, accountID)
	delete(d.maxAssets, accountID)
	delete(d.maxCategories, accountID)
}

// UserLookups returns how many times UsersForAccount has been called
func (d *StaticDirectory) UserLookups() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.userLookups
}

func (d *StaticDirectory) UsersForAccount(ctx context.Context, accountID int) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.userLookups++

	users, ok := d.users[accountID]
	if !ok {
		return nil, fmt.Errorf("users of account %d: %w", accountID, ErrNoValue)
	}
	return append([]string{}, users...), nil
}

func (d *StaticDirectory) MaxAssets(ctx context.Context, accountID int) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	limit, ok := d.maxAssets[accountID]
	if !ok {
		return 0, fmt.Errorf("asset limit of account %d: %w", accountID, ErrNoValue)
	}
	return limit, nil
}

func (d *StaticDirectory) MaxCategories(ctx context.Context, accountID int) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	limit, ok := d.maxCategories[accountID]
	if !ok {
		return 0, fmt.Errorf("category limit of account %d: %w", accountID, ErrNoValue)
	}
	return limit, nil
}
