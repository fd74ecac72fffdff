// Package samplestore enumerates and loads acquisition samples from a
// directory of CSV dumps, the stand-in sample-listing service the engine
// proper (deconv, chrom) has no opinion about. It walks a root directory the
// way aep.findFile walks a surrogate directory, matching files by extension
// rather than by exact name.
package samplestore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spelveris/lcms-go/chrom"
	"github.com/spelveris/lcms-go/reader"
	"github.com/spelveris/lcms-go/reader/csvreader"
)

// Store enumerates *.csv sample files beneath Root.
type Store struct {
	Root string
}

// New returns a Store rooted at dir.
func New(dir string) *Store {
	return &Store{Root: dir}
}

// List returns the sample names (file paths relative to Root, without the
// .csv extension) available in the store, sorted lexically.
func (s *Store) List() ([]string, error) {
	var names []string
	err := filepath.Walk(s.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) != ".csv" {
			return nil
		}
		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return err
		}
		names = append(names, strings.TrimSuffix(rel, filepath.Ext(rel)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("samplestore: listing %s: %w", s.Root, err)
	}
	sort.Strings(names)
	return names, nil
}

// Load reads and validates the named sample (as returned by List) via the
// CSV reader adapter.
func (s *Store) Load(name string) (chrom.Sample, error) {
	path := filepath.Join(s.Root, name+".csv")
	f, err := os.Open(path)
	if err != nil {
		return chrom.Sample{}, fmt.Errorf("samplestore: opening %s: %w", path, err)
	}
	defer f.Close()

	sample, err := csvreader.Read(f)
	if err != nil {
		return chrom.Sample{}, fmt.Errorf("samplestore: reading %s: %w", path, err)
	}
	if err := reader.Validate(sample); err != nil {
		return chrom.Sample{}, fmt.Errorf("samplestore: validating %s: %w", path, err)
	}
	return sample, nil
}
