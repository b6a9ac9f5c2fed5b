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

//go:build !statsview

package statsview

import (
	"fmt"
	"io"
)

// Server is a running stats server. In this build there is never a server.
type Server struct{}

// Launch is a stub function in this build. Rebuild with the statsview build
// tag for a working server.
func Launch(output io.Writer, _ *Preferences) *Server {
	fmt.Fprintln(output, "stats server not available in this build")
	return &Server{}
}

// Stop the server.
func (srv *Server) Stop() {
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return false
}
