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

//go:build statsview

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Server is a running stats server.
type Server struct {
	mgr *statsview.ViewManager
}

// Launch the stats server in a new goroutine. The server is configured by the
// preferences at the moment of launch.
func Launch(output io.Writer, prefs *Preferences) *Server {
	viewer.SetConfiguration(
		viewer.WithAddr(prefs.Address.String()),
		viewer.WithTheme(viewer.Theme(prefs.Theme.String())),
		viewer.WithInterval(prefs.Interval.Get().(int)),
		viewer.WithMaxPoints(prefs.MaxPoints.Get().(int)),
	)

	srv := &Server{mgr: statsview.New()}
	go func() {
		err := srv.mgr.Start()
		if err != nil {
			fmt.Fprintf(output, "stats server: %v\n", err)
		}
	}()

	fmt.Fprintf(output, "stats server available at %s\n", prefs.URL())

	return srv
}

// Stop the server.
func (srv *Server) Stop() {
	srv.mgr.Stop()
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return true
}
