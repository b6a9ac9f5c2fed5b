// This file is part of Gopherfc.
//
// Gopherfc is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopherfc is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopherfc.  If not, see <https://www.gnu.org/licenses/>.

// Package prefs facilitates the persistence of preference values. Values are
// one of the types in this package (Bool, Int, Float, String) and are added to
// a Disk instance under a unique key.
//
//	var deferred prefs.Bool
//	dsk, err := prefs.NewDisk(pth)
//	err = dsk.Add("hardware.deferredwrites", &deferred)
//	err = dsk.Load(true)
//
// The prefs file is shared by every Disk that uses the same path. Saving from
// one Disk does not discard the entries belonging to another.
//
// Values can be overridden for a single run of the program with
// PushCommandLineStack(). Overridden values are applied on Load().
package prefs

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/gopherfc/gopherfc/curated"
)

// Sentinal error patterns.
const (
	NoPrefsFile = "prefs: no prefs file (%s)"
	PrefsError  = "prefs: %v"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is inserted at the beginning of a preferences file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// separates the key and value in a line of the prefs file.
const separator = " :: "

// Disk represents preference values as stored on disk.
type Disk struct {
	crit    sync.Mutex
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, curated.Errorf(PrefsError, "empty path")
	}
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add preference value to list of values to store/load from Disk. The key
// must be unique to the Disk.
func (dsk *Disk) Add(key string, p pref) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	if strings.Contains(key, separator) || strings.ContainsAny(key, "\n ") {
		return curated.Errorf(PrefsError, fmt.Sprintf("illegal key (%s)", key))
	}
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf(PrefsError, fmt.Sprintf("key already added (%s)", key))
	}
	dsk.entries[key] = p

	return nil
}

// Reset all preferences to the default value for the type.
func (dsk *Disk) Reset() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	for _, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return curated.Errorf(PrefsError, err)
		}
	}
	return nil
}

// readFile returns the key/value pairs in the prefs file.
func (dsk *Disk) readFile() (map[string]string, error) {
	f, err := os.Open(dsk.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data := make(map[string]string)

	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanLines)

	// skip boilerplate
	if !scanner.Scan() {
		return data, scanner.Err()
	}
	if scanner.Text() != WarningBoilerPlate {
		return nil, fmt.Errorf("not a valid prefs file (%s)", dsk.path)
	}

	for scanner.Scan() {
		k, v, ok := strings.Cut(scanner.Text(), separator)
		if !ok {
			continue
		}
		data[k] = v
	}

	return data, scanner.Err()
}

// Save current preference values to disk.
func (dsk *Disk) Save() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	// entries belonging to other Disk instances are preserved
	data, err := dsk.readFile()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return curated.Errorf(PrefsError, err)
		}
		data = make(map[string]string)
	}

	for k, p := range dsk.entries {
		data[k] = p.String()
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(k)
		s.WriteString(separator)
		s.WriteString(data[k])
		s.WriteString("\n")
	}

	err = os.WriteFile(dsk.path, []byte(s.String()), 0o600)
	if err != nil {
		return curated.Errorf(PrefsError, err)
	}

	return nil
}

// Load preference values from disk. If saveOnFail is true then a missing
// prefs file is created with the current values and no error is returned.
//
// Values on the command line stack take precedence over values in the file.
func (dsk *Disk) Load(saveOnFail bool) error {
	data, err := func() (map[string]string, error) {
		dsk.crit.Lock()
		defer dsk.crit.Unlock()
		return dsk.readFile()
	}()

	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return curated.Errorf(PrefsError, err)
		}
		if !saveOnFail {
			return curated.Errorf(NoPrefsFile, dsk.path)
		}
		if err := dsk.Save(); err != nil {
			return err
		}
		data = make(map[string]string)
	}

	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	for k, p := range dsk.entries {
		if ok, v := GetCommandLinePref(k); ok {
			if err := p.Set(v); err != nil {
				return curated.Errorf(PrefsError, err)
			}
			continue
		}
		if v, ok := data[k]; ok {
			if err := p.Set(v); err != nil {
				return curated.Errorf(PrefsError, err)
			}
		}
	}

	return nil
}
