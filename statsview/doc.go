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

// Package statsview is an optional package that will built only when the
// statsview build constraint is present.
//
// It provides a HTTP server running locally offering runtime statistics.
// Underlying funcionality provided by "github.com/go-echarts/statsview"
//
// The address, theme and sampling of the server are set by the statsview
// preferences. With the default preferences, graphical statistics will be
// viewable at:
//
//	localhost:12650/debug/statsview
//
// And standard Go pprof statistics available at:
//
//	localhost:12650/debug/pprof/
//
// The preferences are available in all builds so that they can be edited
// whether or not the server is.
package statsview
