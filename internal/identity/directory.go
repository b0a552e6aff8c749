package identity

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/sgshs/eventportal/internal/models"
)

// Repository loads allow-list entries from a backing data source.
type Repository interface {
	// LoadEntries returns every allow-list entry. Phone numbers may be
	// raw; Load normalizes them.
	LoadEntries(ctx context.Context) ([]models.Identity, error)
}

// Directory is the in-memory allow-list, loaded once at startup and
// read-only for the life of the process.
type Directory struct {
	// entries maps normalized phone number to display name.
	entries map[string]string
}

// Load builds a Directory from the given repository. If the backing
// data cannot be read the directory is empty and nobody can log in;
// the failure is logged but never returned (fail-closed).
func Load(ctx context.Context, repo Repository, log *zap.Logger) *Directory {
	d := &Directory{entries: make(map[string]string)}

	list, err := repo.LoadEntries(ctx)
	if err != nil {
		log.Warn("identity directory unreadable, allow-list is empty", zap.Error(err))
		return d
	}

	for _, e := range list {
		phone := Normalize(e.Phone)
		if phone == "" {
			continue
		}
		d.entries[phone] = e.Name
	}
	log.Info("identity directory loaded", zap.Int("entries", len(d.entries)))
	return d
}

// Contains reports whether the phone number, after normalization, is on
// the allow-list.
func (d *Directory) Contains(phone string) bool {
	_, ok := d.entries[Normalize(phone)]
	return ok
}

// Name returns the display name for the phone number, after
// normalization, and whether the number is on the allow-list.
func (d *Directory) Name(phone string) (string, bool) {
	name, ok := d.entries[Normalize(phone)]
	return name, ok
}

// Len returns the number of allow-list entries.
func (d *Directory) Len() int {
	return len(d.entries)
}

// CSVRepository reads allow-list entries from a two-column CSV file
// with a `mobile_number,name` header.
type CSVRepository struct {
	// Path is the location of the allow-list file.
	Path string
}

// LoadEntries reads and parses the allow-list file. The header row is
// skipped; rows with fewer than two fields are ignored.
func (r *CSVRepository) LoadEntries(_ context.Context) ([]models.Identity, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return nil, fmt.Errorf("open allow-list: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse allow-list: %w", err)
	}

	var list []models.Identity
	for i, rec := range records {
		if i == 0 {
			// header row
			continue
		}
		if len(rec) < 2 {
			continue
		}
		list = append(list, models.Identity{Phone: rec[0], Name: rec[1]})
	}
	return list, nil
}
