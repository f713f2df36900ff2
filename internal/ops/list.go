package ops

import (
	"github.com/tsukumogami/pienv/internal/metadata"
)

// List returns the metadata record for every managed venv, skipping any
// whose metadata file is missing or unreadable and any bare venv made by
// Create, whose record carries no installed version.
func List(d *Deps) ([]*metadata.Record, error) {
	names, err := listInstalledNames(d)
	if err != nil {
		return nil, err
	}

	var records []*metadata.Record
	for _, name := range names {
		rec, err := loadRecord(d, name)
		if err != nil || rec.InstalledVersion == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
