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

package statsview

import (
	"fmt"
	"strings"

	"github.com/gopherfc/gopherfc/curated"
	"github.com/gopherfc/gopherfc/paths"
	"github.com/gopherfc/gopherfc/prefs"
)

// Themes supported by the viewer.
var Themes = []string{"westeros", "macarons"}

// Preferences for the stats server. Values are persisted in the shared
// preferences file under the "statsview." prefix.
type Preferences struct {
	dsk *prefs.Disk

	// host and port of the server
	Address prefs.String

	// colour scheme of the graphs
	Theme prefs.String

	// milliseconds between samples
	Interval prefs.Int

	// number of samples shown on each graph
	MaxPoints prefs.Int
}

func (p *Preferences) String() string {
	return fmt.Sprintf("address: %s, theme: %s, interval: %sms, points: %s",
		p.Address.String(), p.Theme.String(), p.Interval.String(), p.MaxPoints.String())
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return NewPreferencesFromFile(pth)
}

// NewPreferencesFromFile is the same as NewPreferences() except that the
// location of the preferences file is specified.
func NewPreferencesFromFile(pth string) (*Preferences, error) {
	p := &Preferences{}

	p.Address.SetHookPre(func(v prefs.Value) error {
		s := v.(string)
		if i := strings.LastIndex(s, ":"); i < 0 || i == len(s)-1 {
			return fmt.Errorf("statsview: address must include a port (%s)", s)
		}
		return nil
	})
	p.Theme.SetHookPre(func(v prefs.Value) error {
		for _, t := range Themes {
			if v.(string) == t {
				return nil
			}
		}
		return fmt.Errorf("statsview: unknown theme (%s)", v)
	})
	p.Interval.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 100 {
			return fmt.Errorf("statsview: interval must be at least 100ms (%d)", v)
		}
		return nil
	})
	p.MaxPoints.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 1 {
			return fmt.Errorf("statsview: number of points must be positive (%d)", v)
		}
		return nil
	})

	p.SetDefaults()

	var err error

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("statsview.address", &p.Address)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("statsview.theme", &p.Theme)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("statsview.interval", &p.Interval)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("statsview.maxpoints", &p.MaxPoints)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all statsview preferences to the default values.
func (p *Preferences) SetDefaults() {
	p.Address.Set("localhost:12650")
	p.Theme.Set("westeros")
	p.Interval.Set(2000)
	p.MaxPoints.Set(30)
}

// Save current statsview preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// URL of the statistics page for the current address.
func (p *Preferences) URL() string {
	return fmt.Sprintf("http://%s/debug/statsview", p.Address.String())
}
