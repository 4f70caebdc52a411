// ABOUTME: Remembers recently viewed seller profiles
// ABOUTME: Stores a short most-recent-first list in the config directory

package recent

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// MaxSellers is the maximum number of sellers to remember
const MaxSellers = 5

// Seller is one remembered profile
type Seller struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Path returns the profile path the resolver understands
func (s Seller) Path() string {
	return "/sellers/" + s.ID
}

// Sellers manages the recently viewed list
type Sellers struct {
	configDir string
	sellers   []Seller
}

type recentData struct {
	Sellers []Seller `json:"sellers"`
}

// New creates a manager storing its list under configDir
func New(configDir string) *Sellers {
	return &Sellers{configDir: configDir}
}

func (rs *Sellers) configFile() string {
	return filepath.Join(rs.configDir, "recent.json")
}

// Load reads the list from disk. A missing or unreadable list starts empty.
func (rs *Sellers) Load() ([]Seller, error) {
	data, err := os.ReadFile(rs.configFile())
	if os.IsNotExist(err) {
		rs.sellers = []Seller{}
		return rs.sellers, nil
	}
	if err != nil {
		return nil, err
	}

	var recent recentData
	if err := json.Unmarshal(data, &recent); err != nil {
		rs.sellers = []Seller{}
		return rs.sellers, nil
	}

	rs.sellers = make([]Seller, 0, len(recent.Sellers))
	for _, s := range recent.Sellers {
		if s.ID != "" {
			rs.sellers = append(rs.sellers, s)
		}
	}
	return rs.sellers, nil
}

// Save writes the list, trimmed to MaxSellers
func (rs *Sellers) Save(sellers []Seller) error {
	if err := os.MkdirAll(rs.configDir, 0700); err != nil {
		return err
	}

	if len(sellers) > MaxSellers {
		sellers = sellers[:MaxSellers]
	}
	rs.sellers = sellers

	data, err := json.MarshalIndent(recentData{Sellers: sellers}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(rs.configFile(), data, 0600)
}

// Add moves the seller to the front, refreshing its name
func (rs *Sellers) Add(id, name string) error {
	if rs.sellers == nil {
		if _, err := rs.Load(); err != nil {
			rs.sellers = []Seller{}
		}
	}

	updated := make([]Seller, 0, len(rs.sellers)+1)
	updated = append(updated, Seller{ID: id, Name: name})
	for _, s := range rs.sellers {
		if s.ID != id {
			updated = append(updated, s)
		}
	}
	return rs.Save(updated)
}

// List returns the current list, loading it on first use
func (rs *Sellers) List() []Seller {
	if rs.sellers == nil {
		rs.Load()
	}
	return rs.sellers
}
