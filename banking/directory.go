package banking

import (
	"fmt"
	"strconv"
	"sync"
)

// SeedCountry is the country whose banks arrive pre-populated from the seed
// rows; banks of any other country are created on first reference.
const SeedCountry = "LT"

// Directory is the per-(country, code) registry of banks. It exclusively
// owns every Bank instance it hands out.
type Directory struct {
	mu    sync.RWMutex
	banks map[string]map[int]*Bank
}

// NewDirectory seeds a directory from [name, address, bic, code] rows, all
// belonging to SeedCountry.
func NewDirectory(rows [][]string) (*Directory, error) {
	seed := make(map[int]*Bank, len(rows))
	for _, row := range rows {
		if len(row) < 4 {
			return nil, fmt.Errorf("bank seed row needs 4 fields, got %d", len(row))
		}
		code, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("bank seed code %q: %w", row[3], err)
		}
		seed[code] = &Bank{
			Country: SeedCountry,
			Code:    code,
			BIC:     row[2],
			Name:    row[0],
			Address: row[1],
		}
	}
	return &Directory{
		banks: map[string]map[int]*Bank{SeedCountry: seed},
	}, nil
}

// Bank returns the registered bank for (country, code).
func (d *Directory) Bank(country string, code int) (*Bank, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lookup(country, code)
}

func (d *Directory) lookup(country string, code int) (*Bank, error) {
	space, ok := d.banks[country]
	if !ok {
		return nil, &BankNotFoundError{Country: country, Code: code}
	}
	bank, ok := space[code]
	if !ok {
		return nil, &BankNotFoundError{Country: country, Code: code}
	}
	return bank, nil
}

// BankOrCreate returns the registered bank for (country, code), creating and
// registering a bare record on first reference.
func (d *Directory) BankOrCreate(country string, code int) *Bank {
	d.mu.Lock()
	defer d.mu.Unlock()

	if bank, err := d.lookup(country, code); err == nil {
		return bank
	}
	bank := &Bank{Country: country, Code: code}
	if d.banks[country] == nil {
		d.banks[country] = make(map[int]*Bank)
	}
	d.banks[country][code] = bank
	return bank
}

// Banks returns a snapshot of the directory. Both map levels are copies, so
// mutating the result never affects the directory.
func (d *Directory) Banks() map[string]map[int]*Bank {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snapshot := make(map[string]map[int]*Bank, len(d.banks))
	for country, space := range d.banks {
		inner := make(map[int]*Bank, len(space))
		for code, bank := range space {
			inner[code] = bank
		}
		snapshot[country] = inner
	}
	return snapshot
}
